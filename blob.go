package sqwrap

// Blob is a non-owning view over raw bytes, used to pass binary input to
// parameter binding and to read binary output from a Value. A Blob
// returned by Value.Blob aliases the Value's snapshot and must not be
// mutated or outlive it; binding a Blob is safe with any backing buffer
// because the engine takes its own copy before the call returns.
type Blob []byte

// Size returns the byte length of the view.
func (b Blob) Size() int {
	return len(b)
}

// Pointer wraps an arbitrary Go payload for pointer binding. SQL sees the
// bound parameter as NULL; the payload travels out of band and is only
// recoverable through Value.Pointer on values that originate from the
// binding.
//
// https://www.sqlite.org/bindptr.html
type Pointer struct {
	V any
}
