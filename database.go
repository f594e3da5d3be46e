package sqwrap

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/orsinium-labs/enum"

	"github.com/sqwrap/sqwrap/internal/capi"
	"github.com/sqwrap/sqwrap/internal/log"
)

// DiagFunc receives one diagnostic line per operational failure (compile,
// bind, step, bulk execute). op names the failing operation ("exec",
// "prepare", "execute", "fetch", ...), msg carries the engine's error
// text.
type DiagFunc func(op string, msg string)

// Options tunes how a Database is opened.
type Options struct {
	// Diag replaces the default diagnostic hook, which logs a structured
	// JSON line to stderr. Set to a no-op function to silence diagnostics.
	Diag DiagFunc
}

// OpenError is returned when opening the database connection fails. It is
// the only error that aborts construction; everything after a successful
// Open reports failures through return values and the diagnostic hook.
type OpenError struct {
	Path   string
	Detail string
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("sqwrap: open %s: %s", e.Path, e.Detail)
}

// QueryOutcome is the three-way result of Database.Query, replacing the
// ambiguous boolean that conflated "callback stopped me" with "never got a
// valid statement".
type QueryOutcome enum.Member[string]

var (
	// QueryCompleted means iteration reached natural exhaustion.
	QueryCompleted = QueryOutcome{Value: "completed"}
	// QueryStopped means the callback returned false; the next row was
	// never fetched.
	QueryStopped = QueryOutcome{Value: "stopped"}
	// QueryFailed means the statement failed to compile or a step failed
	// mid-iteration.
	QueryFailed   = QueryOutcome{Value: "failed"}
	QueryOutcomes = enum.New(QueryCompleted, QueryStopped, QueryFailed)
)

// Stats holds counters of engine traffic on one Database since it was
// opened.
type Stats struct {
	Execs           int64
	Prepares        int64
	PrepareFailures int64
	Queries         int64
	StepFailures    int64
}

// Database owns exactly one open connection and the filename it was
// opened with. The connection is opened eagerly by Open and closed exactly
// once by Close. Statements prepared from a Database must not be used
// after it is closed.
type Database struct {
	conn *capi.Conn
	path string
	diag DiagFunc

	execs           atomic.Int64
	prepares        atomic.Int64
	prepareFailures atomic.Int64
	queries         atomic.Int64
	stepFailures    atomic.Int64
}

// Open opens (or creates) the database at path, which may be a filename,
// the ":memory:" marker, or a file: URI. On failure it returns an
// *OpenError carrying the engine's error text.
func Open(path string) (*Database, error) {
	return OpenWith(path, Options{})
}

// OpenWith is Open with explicit Options.
func OpenWith(path string, opts Options) (*Database, error) {
	conn, err := capi.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Detail: err.Error()}
	}

	diag := opts.Diag
	if diag == nil {
		logger := log.NewLogger(os.Stderr)
		diag = func(op, msg string) {
			logger.Error("sqwrap operation failed", log.KV{"op": op, "detail": msg})
		}
	}

	return &Database{conn: conn, path: path, diag: diag}, nil
}

// Path returns the filename the database was opened with.
func (db *Database) Path() string {
	return db.path
}

// Close closes the connection exactly once. Further calls are no-ops.
func (db *Database) Close() error {
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}

// Exec runs one or more semicolon-separated statements with no parameter
// binding and no result capture. On failure it reports a diagnostic and
// returns false.
func (db *Database) Exec(query string) bool {
	if db.conn == nil {
		return false
	}
	db.execs.Add(1)

	if err := db.conn.Exec(query); err != nil {
		db.report("exec", err.Error())
		return false
	}
	return true
}

// Prepare compiles one statement. It never returns nil: on compile
// failure it reports a diagnostic and returns an inert Statement, so
// callers must check Valid before relying on it.
func (db *Database) Prepare(query string) *Statement {
	db.prepares.Add(1)

	if db.conn == nil {
		db.prepareFailures.Add(1)
		return &Statement{db: db}
	}

	stmt, err := db.conn.Prepare(query)
	if err != nil {
		db.prepareFailures.Add(1)
		db.report("prepare", err.Error())
		return &Statement{db: db}
	}
	return &Statement{stmt: stmt, db: db}
}

// Query prepares query, fetches its rows one at a time, and invokes
// callback for each. Iteration stops early when the callback returns
// false; the next row is never fetched. The outcome reports whether
// iteration exhausted naturally (QueryCompleted), was stopped by the
// callback (QueryStopped), or broke on a compile or step failure
// (QueryFailed).
func (db *Database) Query(query string, callback func(Row) bool) QueryOutcome {
	db.queries.Add(1)

	stmt := db.Prepare(query)
	if !stmt.Valid() {
		return QueryFailed
	}
	defer func() {
		_ = stmt.Close()
	}()

	row := Row{}
	for stmt.Fetch(&row) {
		if !callback(row) {
			return QueryStopped
		}
	}
	if stmt.Err() != nil {
		return QueryFailed
	}
	return QueryCompleted
}

// LastInsertID returns the row identifier generated by the most recent
// successful insert on this connection. The counter is connection-global:
// with multiple logical writers sharing one connection it is only
// meaningful under caller-provided serialization.
func (db *Database) LastInsertID() int64 {
	if db.conn == nil {
		return 0
	}
	return db.conn.LastInsertRowID()
}

// RowsAffected returns the number of rows modified, inserted, or deleted
// by the most recent successful write on this connection. The same
// connection-global caveat as LastInsertID applies.
func (db *Database) RowsAffected() int64 {
	if db.conn == nil {
		return 0
	}
	return db.conn.Changes()
}

// Savepoint runs fn inside a uniquely named SAVEPOINT. A nil return
// releases the savepoint; an error rolls back to it and is returned
// unchanged.
func (db *Database) Savepoint(fn func() error) error {
	if db.conn == nil {
		return fmt.Errorf("sqwrap: savepoint on a closed database")
	}

	name := "sqwrap_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := db.conn.Exec("SAVEPOINT " + name); err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}

	if err := fn(); err != nil {
		if rbErr := db.conn.Exec("ROLLBACK TO " + name + "; RELEASE " + name); rbErr != nil {
			db.report("savepoint", rbErr.Error())
		}
		return err
	}

	if err := db.conn.Exec("RELEASE " + name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// GetStats returns a snapshot of the traffic counters.
func (db *Database) GetStats() Stats {
	return Stats{
		Execs:           db.execs.Load(),
		Prepares:        db.prepares.Load(),
		PrepareFailures: db.prepareFailures.Load(),
		Queries:         db.queries.Load(),
		StepFailures:    db.stepFailures.Load(),
	}
}

func (db *Database) report(op, msg string) {
	if db.diag != nil {
		db.diag(op, msg)
	}
}

func (db *Database) noteStepFailure() {
	db.stepFailures.Add(1)
}
