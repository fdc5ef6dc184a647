package flog

import (
	"fmt"
	"os"
	"time"

	"github.com/google/flogger-sub002/metadata"
	"github.com/google/flogger-sub002/pkg"
	"github.com/google/flogger-sub002/ratelimit"
)

// Option applies a configuration option to config.
type Option func(config) config

// config holds logger construction parameters.
type config struct {
	scope   metadata.Metadata
	guards  *ratelimit.Guards
	clock   func() time.Time
	onError func(error)
	name    string
}

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig builds a config from opts, filling defaults for anything
// left unset.
func makeConfig(opts ...Option) config {
	cfg := apply(config{}, opts...)

	if cfg.scope == nil {
		cfg.scope = metadata.Empty()
	}

	if cfg.guards == nil {
		cfg.guards = ratelimit.NewGuards()
	}

	if cfg.clock == nil {
		cfg.clock = time.Now
	}

	if cfg.onError == nil {
		cfg.onError = reportError
	}

	return cfg
}

// WithName sets the logger's name, attached to dispatch errors.
func WithName(name string) Option {
	return func(cfg config) config {
		cfg.name = name

		return cfg
	}
}

// WithScope attaches ambient metadata to every statement of the logger.
// Statement metadata with the same single-valued key wins over it.
func WithScope(md metadata.Metadata) Option {
	return func(cfg config) config {
		cfg.scope = md

		return cfg
	}
}

// WithGuards shares a guard registry between loggers, so rate-limited
// statements reaching the same site key through different loggers
// account skips together. Each logger otherwise owns a private
// registry.
func WithGuards(guards *ratelimit.Guards) Option {
	return func(cfg config) config {
		cfg.guards = guards

		return cfg
	}
}

// WithClock sets the time source for record timestamps and the
// AtMostEvery limiter. The default is [time.Now].
func WithClock(clock func() time.Time) Option {
	return func(cfg config) config {
		cfg.clock = clock

		return cfg
	}
}

// WithErrorHandler routes backend write failures. The default handler
// writes one line to stderr; the library never logs through itself.
func WithErrorHandler(fn func(error)) Option {
	return func(cfg config) config {
		cfg.onError = fn

		return cfg
	}
}

// reportError is the default error handler.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, pkg.Name+":", err)
}
