package backend

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// LogSite identifies the program statement that produced a record. Sites
// compare with ==, so a site doubles as the per-statement key for rate
// limiter and guard state. The zero value is the unknown site.
type LogSite struct {
	Function string
	File     string
	Line     int
	PC       uintptr
}

// Site returns an explicitly specified log site. Injected sites carry no
// PC, which only means adapters cannot attach native caller information.
func Site(function, file string, line int) LogSite {
	return LogSite{Function: function, File: file, Line: line}
}

// CallerSite returns the site of the caller skip frames above the caller
// of CallerSite. It probes a single stack frame rather than walking the
// stack; an unwinding failure yields the unknown site.
func CallerSite(skip int) LogSite {
	var pcs [1]uintptr

	// Skip runtime.Callers and CallerSite itself.
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return LogSite{}
	}

	frame, _ := runtime.CallersFrames(pcs[:]).Next()

	return LogSite{
		Function: frame.Function,
		File:     frame.File,
		Line:     frame.Line,
		PC:       pcs[0],
	}
}

// Valid reports whether the site identifies a program statement.
func (s LogSite) Valid() bool { return s != LogSite{} }

// String returns the site as "file.go:line", falling back to the
// function name and then to "<unknown>".
func (s LogSite) String() string {
	switch {
	case s.File != "":
		return filepath.Base(s.File) + ":" + strconv.Itoa(s.Line)
	case s.Function != "":
		return s.Function
	default:
		return "<unknown>"
	}
}
