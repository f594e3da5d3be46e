package sqwrap

import (
	"fmt"

	"github.com/sqwrap/sqwrap/internal/capi"
)

// Statement wraps one compiled query. It is created exclusively by
// Database.Prepare and keeps a non-owning reference to the Database it was
// compiled against; it must not be used after that Database is closed.
//
// A Statement whose compilation failed is inert: Valid reports false and
// every operation is a no-op returning failure. Callers are expected to
// check Valid after Prepare.
type Statement struct {
	stmt    *capi.Stmt
	db      *Database
	stepErr error
	// done latches at exhaustion so Fetch keeps returning false instead
	// of silently restarting on the engine's step-after-done auto-reset.
	done bool
}

// Valid reports whether the statement holds a compiled resource. It stays
// true across iteration and exhaustion; only a failed Prepare or a Close
// makes it false.
func (s *Statement) Valid() bool {
	return s.stmt != nil
}

// Bind rebinds the 1-based parameter slot i to the given value. Accepted
// types are nil, bool, int, int32, int64, float64, string, []byte, Blob,
// and Pointer; anything else fails. The engine copies the bound data
// before Bind returns, so the caller's buffer need not stay alive.
//
// Binding is only meaningful on a statement that is not mid-iteration;
// rebind after Reset to change parameters between passes.
func (s *Statement) Bind(i int, value any) bool {
	if s.stmt == nil {
		return false
	}

	var err error
	switch v := value.(type) {
	case nil:
		err = s.stmt.BindNull(i)
	case bool:
		n := int64(0)
		if v {
			n = 1
		}
		err = s.stmt.BindInt64(i, n)
	case int:
		err = s.stmt.BindInt64(i, int64(v))
	case int32:
		err = s.stmt.BindInt(i, v)
	case int64:
		err = s.stmt.BindInt64(i, v)
	case float64:
		err = s.stmt.BindFloat64(i, v)
	case string:
		err = s.stmt.BindText(i, v)
	case Blob:
		err = s.stmt.BindBlob(i, v)
	case []byte:
		err = s.stmt.BindBlob(i, v)
	case Pointer:
		err = s.stmt.BindPointer(i, capi.NewPointerHandle(v.V))
	default:
		s.db.report("bind", fmt.Sprintf("unsupported parameter type %T at index %d", value, i))
		return false
	}
	if err != nil {
		s.db.report("bind", err.Error())
		return false
	}
	return true
}

// BindPointer binds an arbitrary Go payload at the 1-based parameter slot
// i. Equivalent to Bind(i, Pointer{V: value}).
func (s *Statement) BindPointer(i int, value any) bool {
	return s.Bind(i, Pointer{V: value})
}

// Execute binds the full ordered parameter list at positions 1..N and
// advances the statement once. It returns true only if the advance
// reports unambiguous completion with no result row; a produced row or a
// step failure reports a diagnostic and returns false. Appropriate for
// INSERT/UPDATE/DELETE/DDL, not SELECT.
func (s *Statement) Execute(args ...any) bool {
	if s.stmt == nil {
		return false
	}

	for i, arg := range args {
		if !s.Bind(i+1, arg) {
			s.db.report("execute", fmt.Sprintf("failed to bind parameter %d of %q", i+1, s.QueryString()))
			return false
		}
	}

	hasRow, err := s.stmt.Step()
	if err != nil {
		s.noteStepFailure(err)
		s.db.report("execute", err.Error())
		return false
	}
	if hasRow {
		s.db.report("execute", fmt.Sprintf("statement %q produced a result row; use Fetch for queries", s.QueryString()))
		return false
	}
	return true
}

// Fetch advances the statement one step. If a row is produced, the given
// Row is cleared and repopulated with one Value snapshot per column and
// Fetch returns true. At exhaustion (or on a step failure, observable via
// Err) it returns false and leaves the Row cleared. Repeated calls after
// exhaustion keep returning false until Reset.
func (s *Statement) Fetch(row *Row) bool {
	if s.stmt == nil || row == nil {
		return false
	}

	if *row == nil {
		*row = make(Row)
	} else {
		clear(*row)
	}

	if s.done {
		return false
	}

	hasRow, err := s.stmt.Step()
	if err != nil {
		s.done = true
		s.noteStepFailure(err)
		s.db.report("fetch", err.Error())
		return false
	}
	if !hasRow {
		s.done = true
		return false
	}

	for i := 0; i < s.stmt.ColumnCount(); i++ {
		(*row)[s.stmt.ColumnName(i)] = newValue(s.stmt.ColumnDatum(i))
	}
	return true
}

// FetchAll fetches every remaining row into a fresh Row each, returning
// the ordered sequence. Zero matching rows yield an empty slice, never a
// failure.
func (s *Statement) FetchAll() []Row {
	rows := make([]Row, 0)
	if s.stmt == nil {
		return rows
	}

	for {
		row := Row{}
		if !s.Fetch(&row) {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

// Reset returns the statement to its pre-iteration position, preserving
// the currently bound parameter values, so it can be iterated or executed
// again without re-binding. It also clears any recorded step failure.
func (s *Statement) Reset() {
	if s.stmt == nil {
		return
	}
	s.stepErr = nil
	s.done = false
	_ = s.stmt.Reset()
}

// Err returns the step failure recorded by the most recent Fetch or
// Execute, or nil. It distinguishes "no more rows" from "iteration broke"
// after a Fetch loop ends. Reset clears it.
func (s *Statement) Err() error {
	return s.stepErr
}

// ColCount returns the number of columns the statement produces.
func (s *Statement) ColCount() int {
	if s.stmt == nil {
		return 0
	}
	return s.stmt.ColumnCount()
}

// ColName returns the engine-reported label of the 0-based column i.
func (s *Statement) ColName(i int) string {
	if s.stmt == nil {
		return ""
	}
	return s.stmt.ColumnName(i)
}

// ColValue duplicates the 0-based column i of the most recently fetched
// row into a Value snapshot. On an inert statement it returns a NULL
// Value.
func (s *Statement) ColValue(i int) Value {
	if s.stmt == nil {
		return Value{}
	}
	return newValue(s.stmt.ColumnDatum(i))
}

// ColSize returns the byte length of the 0-based column i of the most
// recently fetched row.
func (s *Statement) ColSize(i int) int {
	if s.stmt == nil {
		return 0
	}
	return s.stmt.ColumnBytes(i)
}

// QueryString returns the SQL text the statement was compiled from.
func (s *Statement) QueryString() string {
	if s.stmt == nil {
		return ""
	}
	return s.stmt.SQL()
}

// Close releases the compiled resource. It is idempotent; after Close the
// statement is inert.
func (s *Statement) Close() error {
	if s.stmt == nil {
		return nil
	}
	err := s.stmt.Finalize()
	s.stmt = nil
	return err
}

func (s *Statement) noteStepFailure(err error) {
	s.stepErr = err
	s.db.noteStepFailure()
}
