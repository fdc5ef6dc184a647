package backend

import (
	"context"
	"iter"
	"log/slog"

	"github.com/google/flogger-sub002/metadata"
)

// Slog adapts records onto a [slog.Logger]. Metadata becomes attrs,
// repeated keys contributing one attr per value, and the cause becomes
// a "cause" attr holding the error itself so [slog.LogValuer] causes
// render their structured form.
type Slog struct {
	log *slog.Logger
}

// NewSlog creates a sink delivering records to l, or to [slog.Default]
// when l is nil.
func NewSlog(l *slog.Logger) *Slog {
	if l == nil {
		l = slog.Default()
	}

	return &Slog{log: l}
}

// Name identifies the sink in error reports.
func (s *Slog) Name() string { return "slog" }

// Enabled reports whether the underlying handler accepts records at
// level.
func (s *Slog) Enabled(level Level) bool {
	return s.log.Enabled(context.Background(), slog.Level(level))
}

// Log delivers one record to the underlying handler, carrying the
// record's own timestamp and caller PC.
func (s *Slog) Log(r *Record) error {
	rec := slog.NewRecord(r.Time, slog.Level(r.Level), r.Message(), r.Site.PC)

	state := &attrState{depth: r.Depth}
	metadata.Process(r.Processor(), attrHandler, state)

	if cause := r.Cause(); cause != nil {
		state.attrs = append(state.attrs, slog.Any(KeyCause.Label(), cause))
	}

	rec.AddAttrs(state.attrs...)

	return s.log.Handler().Handle(context.Background(), rec)
}

// attrState accumulates one record's metadata as slog attrs.
type attrState struct {
	attrs []slog.Attr
	depth int
}

func (s *attrState) emit(label string, value any) {
	s.attrs = append(s.attrs, slog.Any(label, value))
}

//nolint:gochecknoglobals
var attrHandler = metadata.NewHandlerBuilder[*attrState](
	func(key metadata.Key, value any, s *attrState) {
		key.SafeEmit(value, s.emit, s.depth)
	}).
	DefaultRepeated(func(key metadata.Key, values iter.Seq[any], s *attrState) {
		key.SafeEmitRepeated(values, s.emit, s.depth)
	}).
	Ignore(KeyCause).
	Build()
