package flog

import (
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/metadata"
	"github.com/google/flogger-sub002/pkg"
	"github.com/google/flogger-sub002/ratelimit"
)

// ErrDispatch wraps backend write failures before they reach the
// logger's error handler.
var ErrDispatch = pkg.NewError("backend dispatch failed")

// Logger is the fluent frontend over one [backend.Backend]. Statements
// start at a level selector and finish at a [Context] terminal. A
// Logger is safe for unsynchronized concurrent use.
type Logger struct {
	backend  backend.Backend
	scope    metadata.Metadata
	guards   *ratelimit.Guards
	counter  *ratelimit.Counter
	interval *ratelimit.Interval
	sampler  *ratelimit.Sampler
	clock    func() time.Time
	onError  func(error)
	name     string

	// depth counts dispatches in flight on this logger. It stands in
	// for per-goroutine recursion depth, which Go cannot observe, so
	// concurrent use can overcount; overcounting only makes custom
	// emitters fall back to plain emission sooner.
	depth atomic.Int32
}

// New creates a logger delivering to b, or to a stderr console when b
// is nil.
func New(b backend.Backend, opts ...Option) *Logger {
	if b == nil {
		b = backend.NewConsole(os.Stderr)
	}

	cfg := makeConfig(opts...)

	return &Logger{
		backend:  b,
		scope:    cfg.scope,
		guards:   cfg.guards,
		counter:  ratelimit.NewCounter(),
		interval: ratelimit.NewInterval(ratelimit.WithClock(cfg.clock)),
		sampler:  ratelimit.NewSampler(),
		clock:    cfg.clock,
		onError:  cfg.onError,
		name:     cfg.name,
	}
}

// Name returns the logger's name, "" unless set by [WithName].
func (l *Logger) Name() string { return l.name }

// Backend returns the sink this logger delivers to.
func (l *Logger) Backend() backend.Backend { return l.backend }

// At starts a statement at level. It returns nil when the backend
// discards the level; every [Context] method accepts a nil receiver,
// so the whole chain of a disabled statement reduces to this check.
func (l *Logger) At(level Level) *Context {
	if !l.backend.Enabled(level) {
		return nil
	}

	return &Context{logger: l, level: level}
}

// AtError starts a statement at [LevelError].
func (l *Logger) AtError() *Context { return l.At(LevelError) }

// AtWarning starts a statement at [LevelWarn].
func (l *Logger) AtWarning() *Context { return l.At(LevelWarn) }

// AtInfo starts a statement at [LevelInfo].
func (l *Logger) AtInfo() *Context { return l.At(LevelInfo) }

// AtDebug starts a statement at [LevelDebug].
func (l *Logger) AtDebug() *Context { return l.At(LevelDebug) }

// dispatch hands one record to the backend, accounting
// nesting depth and routing failures to the error handler.
func (l *Logger) dispatch(r *backend.Record) {
	l.depth.Add(1)
	defer l.depth.Add(-1)

	if err := l.backend.Log(r); err != nil {
		wrapped := ErrDispatch.Wrap(err).
			With(slog.String("backend", l.backend.Name()))

		if l.name != "" {
			wrapped = wrapped.With(slog.String("logger", l.name))
		}

		l.onError(wrapped)
	}
}
