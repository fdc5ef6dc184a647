package config

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/google/flogger-sub002/pkg"
)

// Sentinel errors of the package. Context attributes carry the
// offending document path, field, or value.
var (
	ErrLoad        = pkg.NewError("config file unreadable")
	ErrParse       = pkg.NewError("config parse error")
	ErrInvalid     = pkg.NewError("invalid config value")
	ErrUnknownKind = pkg.NewError("unknown backend kind")
)

// Config is one decoded document.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Logger  LoggerConfig  `yaml:"logger,omitempty"`
}

// BackendConfig describes the backend to construct.
type BackendConfig struct {
	// Kind selects the implementation: console, file, slog, zap,
	// logrus, or memory. Empty means console.
	Kind string `yaml:"kind,omitempty"`

	// Name overrides the backend's reported name where the kind
	// supports one.
	Name string `yaml:"name,omitempty"`

	// Level names the minimum severity; unrecognized names fall back
	// to the default level, matching [backend.ParseLevel].
	Level string `yaml:"level,omitempty"`

	// Output is a file path, or "stdout" or "stderr" for kinds that
	// write to a stream. The file kind requires a path.
	Output string `yaml:"output,omitempty"`

	// Format selects text or json rendering for the slog, zap, and
	// logrus kinds.
	Format string `yaml:"format,omitempty"`

	// TimeLayout names a timestamp layout for the console and file
	// kinds, as accepted by [backend.WithTimeLayout].
	TimeLayout string `yaml:"time_layout,omitempty"`

	Caller *bool `yaml:"caller,omitempty"`
	Color  *bool `yaml:"color,omitempty"`

	Rotation RotationConfig `yaml:"rotation,omitempty"`

	// Filter is an expr predicate gating records behind the backend;
	// see [backend.NewFilter] for the expression environment.
	Filter string `yaml:"filter,omitempty"`
}

// RotationConfig bounds the file kind's log rotation.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb,omitempty"`
	MaxBackups int  `yaml:"max_backups,omitempty"`
	MaxAgeDays int  `yaml:"max_age_days,omitempty"`
	Compress   bool `yaml:"compress,omitempty"`
}

// LoggerConfig describes the logger in front of the backend.
type LoggerConfig struct {
	// Name is attached to dispatch errors.
	Name string `yaml:"name,omitempty"`

	// MaxSites bounds the rate limit guard registry; zero leaves it
	// unbounded.
	MaxSites int `yaml:"max_sites,omitempty"`
}

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrLoad.Wrap(err).With(slog.String("path", path))
	}

	return Parse(data)
}

// Parse decodes and validates one YAML document. Unknown fields are
// errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, ErrParse.Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the document's values without constructing anything.
func (c *Config) Validate() error {
	r := c.Backend.Rotation
	if r.MaxSizeMB < 0 || r.MaxBackups < 0 || r.MaxAgeDays < 0 {
		return ErrInvalid.With(
			slog.String("field", "rotation"),
			slog.Int("max_size_mb", r.MaxSizeMB),
			slog.Int("max_backups", r.MaxBackups),
			slog.Int("max_age_days", r.MaxAgeDays),
		)
	}

	if c.Logger.MaxSites < 0 {
		return ErrInvalid.With(
			slog.String("field", "max_sites"),
			slog.Int("value", c.Logger.MaxSites),
		)
	}

	switch c.Backend.Format {
	case "", "text", "json":
	default:
		return ErrInvalid.With(
			slog.String("field", "format"),
			slog.String("value", c.Backend.Format),
		)
	}

	return nil
}
