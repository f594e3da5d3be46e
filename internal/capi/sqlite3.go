package capi

/*
#cgo LDFLAGS: -lsqlite3
#cgo CFLAGS: -DSQLITE_THREADSAFE=1

#include <sqlite3.h>
#include <stdint.h>
#include <stdlib.h>

// cgo cannot express the SQLITE_TRANSIENT destructor constant, so binds
// that need the engine to take its own copy go through these helpers.
static int sqwrap_bind_text(sqlite3_stmt *stmt, int idx, const char *data, int n) {
	return sqlite3_bind_text(stmt, idx, data, n, SQLITE_TRANSIENT);
}

static int sqwrap_bind_blob(sqlite3_stmt *stmt, int idx, const void *data, int n) {
	if (n == 0) {
		return sqlite3_bind_zeroblob(stmt, idx, 0);
	}
	return sqlite3_bind_blob(stmt, idx, data, n, SQLITE_TRANSIENT);
}

// Implemented in pointer.go; releases the cgo handle behind a bound
// Go pointer payload when the engine discards the binding.
void sqwrapHandleDestroy(void *p);

static int sqwrap_bind_pointer(sqlite3_stmt *stmt, int idx, uintptr_t handle, const char *type) {
	return sqlite3_bind_pointer(stmt, idx, (void *)handle, type, sqwrapHandleDestroy);
}

static uintptr_t sqwrap_column_pointer(sqlite3_stmt *stmt, int idx, const char *type) {
	return (uintptr_t)sqlite3_value_pointer(sqlite3_column_value(stmt, idx), type);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"unsafe"
)

// Conn represents a connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB *C.sqlite3
}

// Stmt represents a prepared statement. It keeps a reference to the
// connection it was compiled against so step failures can report the
// connection-level error text.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt *C.sqlite3_stmt
}

// pointerType tags Go values bound through BindPointer. SQLite compares
// the tag by address, so it must live for the whole process.
//
// https://www.sqlite.org/bindptr.html
var pointerType = C.CString("sqwrap.any")

// LastError returns the last error message recorded on the connection.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) LastError() error {
	if conn.cDB == nil {
		return errors.New("failed to get last error: database connection is nil")
	}
	return errors.New(C.GoString(C.sqlite3_errmsg(conn.cDB)))
}

// Open opens a new SQLite database connection using the given path. The
// path may be a filename, ":memory:", or a file: URI.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, error) {
	cFilePath := C.CString(filePath)
	defer C.free(unsafe.Pointer(cFilePath))

	var db *C.sqlite3
	resCode := C.sqlite3_open(cFilePath, &db)
	if resCode != SQLITE_OK {
		errMsg := (&Conn{cDB: db}).LastError()
		_ = C.sqlite3_close(db)
		return nil, fmt.Errorf("failed to open database: %s: %s", getResCodeStr(int(resCode)), errMsg)
	}

	return &Conn{cDB: db}, nil
}

// Close finalizes the connection to the SQLite database. It is a no-op on
// an already closed connection.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == nil {
		return nil
	}

	// close_v2 defers the actual close until outstanding statements are
	// finalized, which suits a garbage-collected host language.
	resCode := C.sqlite3_close_v2(conn.cDB)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to close database: %s: %s", getResCodeStr(int(resCode)), conn.LastError())
	}
	conn.cDB = nil

	return nil
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// on this connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	return int64(C.sqlite3_last_insert_rowid(conn.cDB))
}

// Changes returns the number of rows modified, inserted, or deleted by the
// most recent successful INSERT, UPDATE, or DELETE on this connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) Changes() int64 {
	return int64(C.sqlite3_changes(conn.cDB))
}

// Exec runs one or more semicolon-separated SQL statements from start to
// finish, discarding any result rows.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(query string) error {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var errMsg *C.char
	resCode := C.sqlite3_exec(conn.cDB, cQuery, nil, nil, &errMsg)
	if resCode != SQLITE_OK {
		defer C.sqlite3_free(unsafe.Pointer(errMsg))
		return fmt.Errorf("failed to execute query: %s: %s", getResCodeStr(int(resCode)), C.GoString(errMsg))
	}

	return nil
}

// Prepare compiles the given SQL query into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil)
	if resCode != SQLITE_OK {
		return nil, fmt.Errorf("failed to prepare statement: %s: %s", getResCodeStr(int(resCode)), conn.LastError())
	}
	return &Stmt{conn: conn, cStmt: cStmt}, nil
}

// ReadOnly returns true if the statement makes no direct changes to the
// database.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	return C.sqlite3_stmt_readonly(stmt.cStmt) != 0
}

// SQL returns the SQL text the statement was compiled from.
//
// https://www.sqlite.org/c3ref/expanded_sql.html
func (stmt *Stmt) SQL() string {
	if stmt.cStmt == nil {
		return ""
	}
	return C.GoString(C.sqlite3_sql(stmt.cStmt))
}

// BindInt binds an int32 parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt(index int, value int32) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int(stmt.cStmt, C.int(index), C.int(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind int: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindInt64 binds an int64 parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_int64(stmt.cStmt, C.int(index), C.sqlite3_int64(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind int64: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_double(stmt.cStmt, C.int(index), C.double(value))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind float64: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindText binds a string parameter at the given 1-based index. The engine
// takes its own copy, so the caller's string need not outlive the call.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	cStr := C.CString(value)
	defer C.free(unsafe.Pointer(cStr))

	resCode := C.sqwrap_bind_text(stmt.cStmt, C.int(index), cStr, C.int(len(value)))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind text: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindBlob binds a byte slice parameter at the given 1-based index. The
// engine takes its own copy; an empty slice binds a zero-length blob.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}
	resCode := C.sqwrap_bind_blob(stmt.cStmt, C.int(index), dataPtr, C.int(len(data)))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind blob: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindNull binds a NULL value at the given 1-based index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqlite3_bind_null(stmt.cStmt, C.int(index))
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind null: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// BindPointer binds an opaque Go payload handle at the given 1-based
// index. SQL sees the parameter as NULL; the payload is only recoverable
// through value introspection. The handle is released by the engine when
// the binding is discarded.
//
// https://www.sqlite.org/bindptr.html
func (stmt *Stmt) BindPointer(index int, handle uintptr) error {
	if stmt.cStmt == nil {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := C.sqwrap_bind_pointer(stmt.cStmt, C.int(index), C.uintptr_t(handle), pointerType)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to bind pointer: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// ClearBindings resets all parameters on the statement to NULL.
//
// https://www.sqlite.org/c3ref/clear_bindings.html
func (stmt *Stmt) ClearBindings() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_clear_bindings(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to clear bindings: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// Step advances the statement to the next row of data, returning true if a
// new row is available and false if the statement is done. On failure the
// connection-level error text is included.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	resCode := C.sqlite3_step(stmt.cStmt)

	if resCode == SQLITE_DONE {
		return false, nil
	}

	if resCode == SQLITE_ROW {
		return true, nil
	}

	return false, fmt.Errorf("failed to step statement: %s: %s", getResCodeStr(int(resCode)), stmt.conn.LastError())
}

// Reset returns the statement to the state it was in before the first
// Step, keeping all current parameter bindings.
//
// https://www.sqlite.org/c3ref/reset.html
func (stmt *Stmt) Reset() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_reset(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to reset statement: %s", getResCodeStr(int(resCode)))
	}
	return nil
}

// ColumnCount returns the number of columns in the result set.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the engine-reported name of the column at the given
// 0-based index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return C.GoString(C.sqlite3_column_name(stmt.cStmt, C.int(colIndex)))
}

// ColumnBytes returns the byte length of the column value at the given
// 0-based index in its current representation.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBytes(colIndex int) int {
	return int(C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex)))
}

// ColumnDatum duplicates the column value at the given 0-based index into
// a self-contained Datum. The copy is taken immediately, so the snapshot
// does not depend on the statement staying on the current row.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnDatum(colIndex int) Datum {
	idx := C.int(colIndex)

	switch C.sqlite3_column_type(stmt.cStmt, idx) {
	case C.SQLITE_INTEGER:
		return Datum{Kind: DatumInteger, Int: int64(C.sqlite3_column_int64(stmt.cStmt, idx))}
	case C.SQLITE_FLOAT:
		return Datum{Kind: DatumFloat, Float: float64(C.sqlite3_column_double(stmt.cStmt, idx))}
	case C.SQLITE_TEXT:
		text := unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, idx))
		length := C.sqlite3_column_bytes(stmt.cStmt, idx)
		return Datum{Kind: DatumText, Bytes: C.GoBytes(text, length)}
	case C.SQLITE_BLOB:
		length := C.sqlite3_column_bytes(stmt.cStmt, idx)
		if length == 0 {
			return Datum{Kind: DatumBlob}
		}
		return Datum{Kind: DatumBlob, Bytes: C.GoBytes(C.sqlite3_column_blob(stmt.cStmt, idx), length)}
	default:
		handle := uintptr(C.sqwrap_column_pointer(stmt.cStmt, idx, pointerType))
		return Datum{Kind: DatumNull, Handle: handle}
	}
}

// Finalize frees the resources associated with this statement. It is a
// no-op on an already finalized statement.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == nil {
		return nil
	}

	resCode := C.sqlite3_finalize(stmt.cStmt)
	if resCode != SQLITE_OK {
		return fmt.Errorf("failed to finalize statement: %s: %s", getResCodeStr(int(resCode)), stmt.conn.LastError())
	}
	stmt.cStmt = nil

	return nil
}
