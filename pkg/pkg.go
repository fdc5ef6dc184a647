//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the flog module embedded at build time.
// It is printed by the demo CLI when users invoke the version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical module identifier used across the project.
	// For example, it appears in help text and default config paths.
	Name = "flog"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Fluent structured logging with contextual metadata and rate limiting"
)
