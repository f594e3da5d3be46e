// Package log provides the structured logger used by the sqwrap command
// line tools, a thin JSON wrapper over log/slog with map-style key-value
// pairs.
package log

import (
	"io"
	"log/slog"
)

// Logger is a structured logger on top of slog.Logger that logs in JSON
// format. The zero value is not usable; construct one with NewLogger.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a new Logger that writes to the given writer,
// typically os.Stdout or os.Stderr.
func NewLogger(writer io.Writer) Logger {
	slogger := slog.New(slog.NewJSONHandler(writer, nil))
	return Logger{
		slogger: slogger,
	}
}

// Info logs a structured info message with optional key-value pairs.
func (l *Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// Debug logs a structured debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// Warn logs a structured warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// Error logs a structured error message with optional key-value pairs.
func (l *Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}
