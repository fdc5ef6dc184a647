package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/flog"
	"github.com/google/flogger-sub002/ratelimit"
)

// Build constructs the backend the document describes, including any
// filter decoration.
func (c *Config) Build() (backend.Backend, error) {
	level := backend.ParseLevel(c.Backend.Level)

	var (
		b   backend.Backend
		err error
	)

	switch kind := strings.ToLower(c.Backend.Kind); kind {
	case "", "console":
		b, err = c.buildConsole(level)
	case "file":
		b, err = c.buildFile(level)
	case "slog":
		b, err = c.buildSlog(level)
	case "zap":
		b, err = c.buildZap(level)
	case "logrus":
		b, err = c.buildLogrus(level)
	case "memory":
		b = backend.NewMemory(level)
	default:
		return nil, ErrUnknownKind.With(slog.String("kind", kind))
	}

	if err != nil {
		return nil, err
	}

	if c.Backend.Filter != "" {
		f, err := backend.NewFilter(b, c.Backend.Filter)
		if err != nil {
			return nil, err
		}

		b = f
	}

	return b, nil
}

// BuildLogger constructs the backend and the logger in front of it.
func (c *Config) BuildLogger() (*flog.Logger, error) {
	b, err := c.Build()
	if err != nil {
		return nil, err
	}

	var opts []flog.Option

	if c.Logger.Name != "" {
		opts = append(opts, flog.WithName(c.Logger.Name))
	}

	if c.Logger.MaxSites > 0 {
		opts = append(opts, flog.WithGuards(ratelimit.NewGuards(
			ratelimit.WithMaxSites(c.Logger.MaxSites),
		)))
	}

	return flog.New(b, opts...), nil
}

func (c *Config) buildConsole(level backend.Level) (backend.Backend, error) {
	w, err := c.stream(os.Stderr)
	if err != nil {
		return nil, err
	}

	opts := []backend.Option{backend.WithLevel(level)}

	if c.Backend.Name != "" {
		opts = append(opts, backend.WithName(c.Backend.Name))
	}

	if c.Backend.TimeLayout != "" {
		opts = append(opts, backend.WithTimeLayout(c.Backend.TimeLayout))
	}

	if c.Backend.Caller != nil {
		opts = append(opts, backend.WithCaller(*c.Backend.Caller))
	}

	if c.Backend.Color != nil {
		opts = append(opts, backend.WithColor(*c.Backend.Color))
	}

	return backend.NewConsole(w, opts...), nil
}

func (c *Config) buildFile(level backend.Level) (backend.Backend, error) {
	if c.Backend.Output == "" {
		return nil, ErrInvalid.With(
			slog.String("field", "output"),
			slog.String("kind", "file"),
		)
	}

	opts := []backend.Option{backend.WithLevel(level)}

	if c.Backend.Name != "" {
		opts = append(opts, backend.WithName(c.Backend.Name))
	}

	if c.Backend.TimeLayout != "" {
		opts = append(opts, backend.WithTimeLayout(c.Backend.TimeLayout))
	}

	if c.Backend.Caller != nil {
		opts = append(opts, backend.WithCaller(*c.Backend.Caller))
	}

	r := c.Backend.Rotation
	if r.MaxSizeMB > 0 || r.MaxBackups > 0 || r.MaxAgeDays > 0 {
		opts = append(opts, backend.WithRotation(r.MaxSizeMB, r.MaxBackups, r.MaxAgeDays))
	}

	if r.Compress {
		opts = append(opts, backend.WithCompression(true))
	}

	return backend.NewFile(c.Backend.Output, opts...), nil
}

func (c *Config) buildSlog(level backend.Level) (backend.Backend, error) {
	w, err := c.output(os.Stderr)
	if err != nil {
		return nil, err
	}

	hopts := &slog.HandlerOptions{Level: slog.Level(level)}

	if c.Backend.Caller != nil {
		hopts.AddSource = *c.Backend.Caller
	}

	var handler slog.Handler
	if c.Backend.Format == "json" {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	return backend.NewSlog(slog.New(handler)), nil
}

func (c *Config) buildZap(level backend.Level) (backend.Backend, error) {
	var zcfg zap.Config
	if c.Backend.Format == "text" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.Level = zap.NewAtomicLevelAt(backend.ZapLevel(level))

	switch c.Backend.Output {
	case "", "stderr":
		zcfg.OutputPaths = []string{"stderr"}
	case "stdout":
		zcfg.OutputPaths = []string{"stdout"}
	default:
		zcfg.OutputPaths = []string{c.Backend.Output}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, ErrInvalid.Wrap(err).With(
			slog.String("kind", "zap"),
			slog.String("output", c.Backend.Output),
		)
	}

	return backend.NewZap(logger), nil
}

func (c *Config) buildLogrus(level backend.Level) (backend.Backend, error) {
	w, err := c.output(os.Stderr)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(backend.LogrusLevel(level))
	logger.SetOutput(w)

	if c.Backend.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return backend.NewLogrus(logger), nil
}

// stream resolves output for stream-only kinds, where a file path is a
// configuration mistake.
func (c *Config) stream(fallback *os.File) (io.Writer, error) {
	switch c.Backend.Output {
	case "":
		return fallback, nil
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return nil, ErrInvalid.With(
			slog.String("field", "output"),
			slog.String("value", c.Backend.Output),
			slog.String("hint", "use the file kind for paths"),
		)
	}
}

// output resolves a stream name or opens a file path for appending.
func (c *Config) output(fallback *os.File) (io.Writer, error) {
	switch c.Backend.Output {
	case "":
		return fallback, nil
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(c.Backend.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, ErrInvalid.Wrap(err).With(
				slog.String("field", "output"),
				slog.String("value", c.Backend.Output),
			)
		}

		return f, nil
	}
}
