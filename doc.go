// Package sqwrap is a thin, ownership-disciplined façade over the SQLite
// C interface. It wraps three engine resources: a Database owns one open
// connection, a Statement owns one compiled query plus a non-owning
// reference back to its connection, and a Value is a self-contained
// snapshot of one column datum taken at fetch time.
//
// Resource lifetimes flow strictly downward: a Database outlives every
// Statement prepared from it, and Statements hand back Rows of Values that
// are independent copies with no remaining tie to the engine. Using a
// Statement after its Database has been closed is a precondition
// violation, not a recoverable error.
//
// Every call is synchronous and blocks until the engine completes it; no
// operation is cancellable or carries a timeout. The package implements no
// locking of its own: a Database (and the Statements prepared from it) is
// confined to one logical owner at a time, either by exclusive per-
// goroutine use or by caller-provided mutual exclusion around every call.
// LastInsertID and RowsAffected are connection-global and therefore racy
// if multiple logical writers share one connection without serialization.
//
// Operational failures (compile, bind, step, execute) are reported as
// boolean results plus a diagnostic line on the Database's pluggable
// DiagFunc hook. The only call that fails by returning an error is opening
// the Database itself.
package sqwrap
