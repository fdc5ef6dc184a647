package backend

import (
	"github.com/sirupsen/logrus"
)

// Logrus adapts records onto a [logrus.Logger]. Metadata becomes entry
// fields through [Fields], so colliding labels aggregate into slices,
// and the cause rides logrus's standard error key.
type Logrus struct {
	log *logrus.Logger
}

// NewLogrus creates a sink delivering records to l, or to the logrus
// standard logger when l is nil.
func NewLogrus(l *logrus.Logger) *Logrus {
	if l == nil {
		l = logrus.StandardLogger()
	}

	return &Logrus{log: l}
}

// Name identifies the sink in error reports.
func (l *Logrus) Name() string { return "logrus" }

// Enabled reports whether the underlying logger accepts records at
// level.
func (l *Logrus) Enabled(level Level) bool {
	return l.log.IsLevelEnabled(LogrusLevel(level))
}

// Log delivers one record to the underlying logger, carrying the
// record's own timestamp.
func (l *Logrus) Log(r *Record) error {
	entry := logrus.NewEntry(l.log).
		WithTime(r.Time).
		WithFields(logrus.Fields(Fields(r)))

	if cause := r.Cause(); cause != nil {
		entry = entry.WithError(cause)
	}

	entry.Log(LogrusLevel(r.Level), r.Message())

	return nil
}

// LogrusLevel maps a record level onto the logrus scale.
func LogrusLevel(level Level) logrus.Level {
	switch {
	case level >= LevelError:
		return logrus.ErrorLevel
	case level >= LevelWarn:
		return logrus.WarnLevel
	case level >= LevelInfo:
		return logrus.InfoLevel
	case level >= LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
