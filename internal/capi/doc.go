// Package capi is a lightweight cgo binding for the SQLite C library.
// It exposes the narrow procedural surface the sqwrap façade is built on:
// open/close a connection, compile SQL into a statement, bind typed
// parameters by 1-based position, step through rows, read column data,
// and reset/finalize statements.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package capi
