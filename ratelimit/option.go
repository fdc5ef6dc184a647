package ratelimit

import (
	"math/rand/v2"
	"time"
)

// Option applies a configuration option to config.
type Option func(config) config

// config holds the configuration options shared by the constructors in
// this package; each constructor reads the fields it understands.
type config struct {
	clock    func() time.Time
	random   func(n int64) int64
	maxSites int
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
		clock:  time.Now,
		random: rand.Int64N,
	}, opts...)
}

// WithMaxSites returns an option bounding the number of tracked sites.
// Past the bound, the least recently used site's state is evicted,
// losing its pending count. Zero keeps tracking unbounded, one live
// entry per distinct site key.
func WithMaxSites(n int) Option {
	return func(cfg config) config {
		cfg.maxSites = n

		return cfg
	}
}

// WithClock returns an option replacing the wall clock consulted by
// [Interval] limiters.
func WithClock(clock func() time.Time) Option {
	return func(cfg config) config {
		if clock != nil {
			cfg.clock = clock
		}

		return cfg
	}
}

// WithRandom returns an option replacing the random source consulted by
// [Sampler] limiters. The function must return a value in [0, n).
func WithRandom(random func(n int64) int64) Option {
	return func(cfg config) config {
		if random != nil {
			cfg.random = random
		}

		return cfg
	}
}
