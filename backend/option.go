package backend

import (
	"strings"
	"time"
)

// Option applies a configuration option to config.
type Option func(config) config

// FormatTime defines a function that formats a time.Time value as a string.
type FormatTime func(time.Time) string

// DefaultCaller is the default setting for including the call site in
// rendered output.
const DefaultCaller = false

// DefaultColor is the default setting for styled console output.
const DefaultColor = true

// config holds the configuration options shared by the built-in sinks.
// Each sink reads the fields that apply to it.
type config struct {
	name       string
	formatter  *Formatter
	formatTime FormatTime
	level      Level
	caller     bool
	color      bool

	// rotation settings for the file sink; zero values defer to the
	// lumberjack defaults (100 MB, unlimited backups, unlimited age).
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
}

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig creates a new config with defaults applied, overridden by
// any provided options.
func makeConfig(opts ...Option) config {
	return apply(config{
		formatter: NewFormatter(),
		level:     DefaultLevel,
		caller:    DefaultCaller,
		color:     DefaultColor,
	}, opts...)
}

// WithName returns a functional option that overrides the sink's
// reported name.
func WithName(name string) Option {
	return func(c config) config {
		c.name = name

		return c
	}
}

// WithLevel returns a functional option that sets the minimum level the
// sink accepts. Records below this level are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormatter returns a functional option that sets the formatter
// used to render the message and context suffix.
func WithFormatter(f *Formatter) Option {
	return func(c config) config {
		if f == nil {
			f = NewFormatter()
		}

		c.formatter = f

		return c
	}
}

// WithTimeLayout returns a functional option that sets the layout used
// to format record timestamps.
//
// The layout string can be one of the named layouts from the [time]
// package (for example, "RFC3339" or "RFC3339Nano"). Otherwise, it is
// passed verbatim to [time.Time.Format] and must follow the standard
// specification.
//
// If an empty string (after trimming whitespace) is provided,
// timestamps are disabled and no time is included in output.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return func(c config) config {
		c.formatTime = format

		return c
	}
}

// WithCaller returns a functional option that controls whether the call
// site is included in rendered output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithColor returns a functional option that controls whether console
// output is styled. Plain output is bytewise stable, which tests and
// non-terminal writers want.
func WithColor(enable bool) Option {
	return func(c config) config {
		c.color = enable

		return c
	}
}

// WithRotation returns a functional option that bounds the file sink's
// log files by size in megabytes, retained backup count, and retained
// age in days. Zero keeps a setting at its default.
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(c config) config {
		c.maxSizeMB = maxSizeMB
		c.maxBackups = maxBackups
		c.maxAgeDays = maxAgeDays

		return c
	}
}

// WithCompression returns a functional option that controls whether
// rotated log files are compressed.
func WithCompression(enable bool) Option {
	return func(c config) config {
		c.compress = enable

		return c
	}
}

// timeLayout maps named layouts to their corresponding time.Time constants.
var timeLayout = map[string]string{ //nolint:gochecknoglobals
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,

	"stamp": time.Stamp,
	"none":  "",

	"stampmilli": time.StampMilli,
	"milli":      time.StampMilli,
	"millis":     time.StampMilli,
	"ms":         time.StampMilli,

	"stampmicro": time.StampMicro,
	"micro":      time.StampMicro,
	"micros":     time.StampMicro,
	"us":         time.StampMicro,

	"stampnano": time.StampNano,
	"nano":      time.StampNano,
	"nanos":     time.StampNano,
	"ns":        time.StampNano,
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Trim whitespace only for inspection.
	// Custom layouts are used verbatim.
	trimmed := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if trimmed == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[trimmed]; ok {
		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}
