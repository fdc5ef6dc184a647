package backend

import (
	"fmt"
	"time"

	"github.com/google/flogger-sub002/metadata"
)

// Record carries everything one log statement produced. The frontend
// populates the exported fields and dispatches the record to each
// backend on the logging goroutine.
//
// A record is not safe for concurrent use: [Record.Message] and
// [Record.Processor] memoize their results on first call, and the
// exported fields must not change afterward.
type Record struct {
	// Time is the instant the statement was accepted.
	Time time.Time
	// Level is the severity the statement was logged at.
	Level Level
	// Site identifies the statement in the program.
	Site LogSite
	// Scope is the ambient metadata of the logger and surrounding
	// context. Nil means empty.
	Scope metadata.Metadata
	// Logged is the metadata attached to this statement. Nil means
	// empty.
	Logged metadata.Metadata
	// Depth is the logging reentrancy depth the statement was issued
	// at, zero for a statement outside any backend or key emitter.
	Depth int

	literal string
	format  string
	args    []any
	pending bool

	proc *metadata.Processor
}

// SetMessage stores a literal message.
func (r *Record) SetMessage(msg string) {
	r.literal = msg
	r.format = ""
	r.args = nil
	r.pending = false
}

// SetMessagef stores a format string and arguments. Rendering is
// deferred to the first [Record.Message] call, so a record that every
// backend rejects never pays for formatting.
func (r *Record) SetMessagef(format string, args ...any) {
	r.format = format
	r.args = args
	r.pending = true
}

// Message returns the record's message, rendering a deferred format on
// first call.
func (r *Record) Message() string {
	if r.pending {
		r.literal = fmt.Sprintf(r.format, r.args...)
		r.args = nil
		r.pending = false
	}

	return r.literal
}

// Processor returns the merged view over the record's scope and logged
// metadata, built on first call.
func (r *Record) Processor() *metadata.Processor {
	if r.proc == nil {
		r.proc = metadata.ForScopeAndLogSite(r.Scope, r.Logged)
	}

	return r.proc
}

// Cause returns the error attached to the statement, or nil.
func (r *Record) Cause() error {
	cause, ok := metadata.SingleValue(r.Processor(), KeyCause)
	if !ok {
		return nil
	}

	return cause
}

// SkippedCount returns the number of rate limited statements the record
// accounts for, zero when none were suppressed.
func (r *Record) SkippedCount() int64 {
	skipped, ok := metadata.SingleValue(r.Processor(), KeySkipped)
	if !ok {
		return 0
	}

	return skipped
}
