//nolint:gochecknoglobals
package backend

import (
	"github.com/google/flogger-sub002/metadata"
)

// Keys every backend understands. They live here, below the frontend,
// so sinks and formatters can treat them specially without importing
// the package that attaches them.
var (
	// KeyCause holds the error that prompted a log statement. It is
	// excluded from the formatted context suffix; backends recover it
	// with [Record.Cause] and attach it in their native form.
	KeyCause = metadata.Single[error]("cause")

	// KeySkipped holds the number of statements suppressed at a rate
	// limited site since the last one that was emitted.
	KeySkipped = metadata.Single[int64]("skipped")
)
