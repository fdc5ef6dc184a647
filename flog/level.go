package flog

import "github.com/google/flogger-sub002/backend"

// Level is the severity of a log statement. It aliases [backend.Level]
// so values flow between the two packages without conversion.
type Level = backend.Level

// Severity constants re-exported from [backend] for callers that only
// import this package.
const (
	LevelTrace = backend.LevelTrace
	LevelDebug = backend.LevelDebug
	LevelInfo  = backend.LevelInfo
	LevelWarn  = backend.LevelWarn
	LevelError = backend.LevelError
)

// LogSite identifies one log statement in source. It aliases
// [backend.LogSite].
type LogSite = backend.LogSite

// Site constructs an injected LogSite, for callers that relay logging
// on behalf of other code.
func Site(function, file string, line int) LogSite {
	return backend.Site(function, file, line)
}
