package sqwrap

// Row is one fetched record: a mapping from engine-reported column name
// (case-sensitive) to the Value snapshot fetched for it. A Row passed to
// Statement.Fetch is cleared and repopulated on every call, so callers
// that want to retain rows across fetches must copy them (see Clone).
type Row map[string]Value

// Get returns the Value for the named column. Missing columns read as a
// NULL Value, keeping the accessor contract error-free.
func (r Row) Get(name string) Value {
	return r[name]
}

// Has reports whether the row carries the named column.
func (r Row) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Clone returns an independent copy of the row with every Value cloned.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for name, value := range r {
		out[name] = value.Clone()
	}
	return out
}
