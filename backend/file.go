package backend

import (
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// File writes plain single-line records through a size-rotated log
// file. [WithRotation] and [WithCompression] bound the rotated set.
// The default configuration is [DefaultLevel], RFC 3339 timestamps,
// and call sites included.
type File struct {
	// lumberjack serializes concurrent writes and creates the file
	// lazily, so the sink carries no state of its own.
	out *lumberjack.Logger
	cfg config
}

// NewFile creates a file sink writing to path. The file is created on
// first write.
func NewFile(path string, opts ...Option) *File {
	cfg := makeConfig(append([]Option{WithCaller(true)}, opts...)...)
	if cfg.formatTime == nil {
		cfg.formatTime = makeFormatTimeFunc("rfc3339")
	}

	return &File{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			Compress:   cfg.compress,
		},
		cfg: cfg,
	}
}

// Name identifies the sink in error reports.
func (f *File) Name() string {
	if f.cfg.name != "" {
		return f.cfg.name
	}

	return "file"
}

// Enabled reports whether the sink accepts records at level.
func (f *File) Enabled(level Level) bool { return level >= f.cfg.level }

// Log renders one record as a single plain line, with the cause
// appended as a quoted pair, and writes it atomically.
func (f *File) Log(r *Record) error {
	var b strings.Builder

	if ts := f.cfg.formatTime(r.Time); ts != "" {
		b.WriteString(ts)
		b.WriteByte(' ')
	}

	b.WriteString(strings.ToUpper(r.Level.String()))
	b.WriteByte(' ')

	if f.cfg.caller && r.Site.Valid() {
		b.WriteString(r.Site.String())
		b.WriteByte(' ')
	}

	b.WriteString(f.cfg.formatter.Format(r))

	if cause := r.Cause(); cause != nil {
		b.WriteString(" cause=")
		b.WriteString(strconv.Quote(cause.Error()))
	}

	b.WriteByte('\n')

	if _, err := f.out.Write([]byte(b.String())); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("backend", f.Name()))
	}

	return nil
}

// Rotate closes the current log file and starts a new one. It is the
// hook for signal-driven rotation schemes.
func (f *File) Rotate() error { return f.out.Rotate() }

// Close closes the current log file.
func (f *File) Close() error { return f.out.Close() }
