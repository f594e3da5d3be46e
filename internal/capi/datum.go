package capi

// DatumKind identifies the fundamental SQLite storage class of a column
// value.
//
// https://www.sqlite.org/c3ref/c_blob.html
type DatumKind int

const (
	DatumNull DatumKind = iota
	DatumInteger
	DatumFloat
	DatumText
	DatumBlob
)

// Datum is a self-contained snapshot of one column value, copied out of
// the engine's row buffer into Go-owned memory. It stays valid after the
// statement advances, resets, or is finalized.
type Datum struct {
	Kind  DatumKind
	Int   int64
	Float float64
	// Bytes holds the payload for text and blob values.
	Bytes []byte
	// Handle is the cgo handle of a Go payload bound through BindPointer,
	// or zero when the value does not carry one.
	Handle uintptr
}
