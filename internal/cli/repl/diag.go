package repl

import "fmt"

// DiagRecorder captures sqwrap diagnostics so the REPL can show the
// engine's error text next to the statement that caused it. The shell is
// single-threaded, so a plain field is enough.
type DiagRecorder struct {
	last string
}

// NewDiagRecorder returns an empty recorder.
func NewDiagRecorder() *DiagRecorder {
	return &DiagRecorder{}
}

// Record is a sqwrap.DiagFunc.
func (d *DiagRecorder) Record(op string, msg string) {
	d.last = fmt.Sprintf("%s: %s", op, msg)
}

// Take returns the most recent diagnostic and clears it, or fallback when
// nothing was recorded since the last Take.
func (d *DiagRecorder) Take(fallback string) string {
	if d.last == "" {
		return fallback
	}
	msg := d.last
	d.last = ""
	return msg
}
