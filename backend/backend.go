package backend

import (
	"github.com/google/flogger-sub002/pkg"
)

// Predefined errors (sentinel values).
var (
	// ErrWrite is returned when a backend fails to deliver a record to
	// its sink.
	ErrWrite = pkg.NewError("log write failed")

	// ErrFilterCompile is returned when a filter predicate does not
	// compile.
	ErrFilterCompile = pkg.NewError("filter expression compile error")

	// ErrFilterEvaluate is returned when a filter predicate fails
	// against a record.
	ErrFilterEvaluate = pkg.NewError("filter expression evaluate error")
)

// Backend consumes finished log records. Implementations must be safe
// for concurrent use; the frontend calls Log from every logging
// goroutine without serialization.
type Backend interface {
	// Name identifies the backend in error reports and diagnostics.
	Name() string
	// Enabled reports whether the backend would accept a record at
	// level. The frontend consults it before building a record.
	Enabled(level Level) bool
	// Log delivers one record.
	Log(r *Record) error
}
