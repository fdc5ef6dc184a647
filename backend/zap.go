package backend

import (
	"iter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/google/flogger-sub002/metadata"
)

// Zap adapts records onto a [zap.Logger] core. Metadata becomes
// fields, repeated keys contributing one field per value, and the
// cause rides zap's standard error field.
type Zap struct {
	log *zap.Logger
}

// NewZap creates a sink delivering records to l, or to a no-op logger
// when l is nil.
func NewZap(l *zap.Logger) *Zap {
	if l == nil {
		l = zap.NewNop()
	}

	return &Zap{log: l}
}

// Name identifies the sink in error reports.
func (z *Zap) Name() string { return "zap" }

// Enabled reports whether the underlying core accepts records at
// level.
func (z *Zap) Enabled(level Level) bool {
	return z.log.Core().Enabled(ZapLevel(level))
}

// Log delivers one record to the underlying core, carrying the
// record's own timestamp and caller.
func (z *Zap) Log(r *Record) error {
	entry := zapcore.Entry{
		Level:      ZapLevel(r.Level),
		Time:       r.Time,
		Message:    r.Message(),
		LoggerName: z.log.Name(),
		Caller: zapcore.NewEntryCaller(
			r.Site.PC, r.Site.File, r.Site.Line, r.Site.File != "",
		),
	}

	ce := z.log.Core().Check(entry, nil)
	if ce == nil {
		return nil
	}

	state := &zapState{depth: r.Depth}
	metadata.Process(r.Processor(), zapHandler, state)

	if cause := r.Cause(); cause != nil {
		state.fields = append(state.fields, zap.Error(cause))
	}

	ce.Write(state.fields...)

	return nil
}

// ZapLevel maps a record level onto the zap scale. Zap has no trace
// level, so anything below debug degrades to debug.
func ZapLevel(level Level) zapcore.Level {
	switch {
	case level >= LevelError:
		return zapcore.ErrorLevel
	case level >= LevelWarn:
		return zapcore.WarnLevel
	case level >= LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// zapState accumulates one record's metadata as zap fields.
type zapState struct {
	fields []zap.Field
	depth  int
}

func (s *zapState) emit(label string, value any) {
	s.fields = append(s.fields, zap.Any(label, value))
}

//nolint:gochecknoglobals
var zapHandler = metadata.NewHandlerBuilder[*zapState](
	func(key metadata.Key, value any, s *zapState) {
		key.SafeEmit(value, s.emit, s.depth)
	}).
	DefaultRepeated(func(key metadata.Key, values iter.Seq[any], s *zapState) {
		key.SafeEmitRepeated(values, s.emit, s.depth)
	}).
	Ignore(KeyCause).
	Build()
