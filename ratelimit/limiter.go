package ratelimit

import (
	"sync/atomic"
	"time"
)

// Counter allows the first of every n invocations at each site.
type Counter struct {
	sites *SiteMap[*countSite]
}

// NewCounter returns a counting limiter with no per-site state yet.
func NewCounter(opts ...Option) *Counter {
	return &Counter{
		sites: NewSiteMap(func() *countSite { return &countSite{} }, opts...),
	}
}

// Check reports whether the current invocation at key is the first of
// its window of n. Values of n below two disable limiting.
func (c *Counter) Check(key any, n int64) Status {
	if n <= 1 {
		return Allow
	}

	return c.sites.Get(key).check(n)
}

// countSite counts invocations at one site since the last emission.
type countSite struct {
	count atomic.Int64
}

func (s *countSite) check(n int64) Status {
	if c := s.count.Add(1); (c-1)%n == 0 {
		return s
	}

	return Disallow
}

// Reset realigns the window to the emission that consumed this pending
// status: the current invocation occupies the first slot of the new
// window.
func (s *countSite) Reset() { s.count.Store(1) }

// Interval allows at most one invocation per period at each site.
type Interval struct {
	sites *SiteMap[*intervalSite]
	clock func() time.Time
}

// NewInterval returns a duration limiter reading the wall clock, or the
// clock injected with [WithClock].
func NewInterval(opts ...Option) *Interval {
	cfg := makeConfig(opts...)

	return &Interval{
		sites: NewSiteMap(func() *intervalSite { return &intervalSite{} }, opts...),
		clock: cfg.clock,
	}
}

// Check reports whether at least period has elapsed since the last
// emission at key. Non-positive periods disable limiting.
func (i *Interval) Check(key any, period time.Duration) Status {
	if period <= 0 {
		return Allow
	}

	return i.sites.Get(key).check(period, i.clock().UnixNano())
}

// intervalSite records the last emission time at one site as a
// nanosecond timestamp, zero meaning never.
type intervalSite struct {
	last      atomic.Int64
	candidate atomic.Int64
}

func (s *intervalSite) check(period time.Duration, now int64) Status {
	last := s.last.Load()
	if last != 0 && now-last < int64(period) {
		return Disallow
	}

	s.candidate.Store(now)

	return s
}

// Reset marks the pending invocation's timestamp as the last emission.
func (s *intervalSite) Reset() { s.last.Store(s.candidate.Load()) }

// Sampler allows each invocation with probability 1/n. Sampling is
// stateless, so allowed invocations report [Allow] rather than a pending
// status.
type Sampler struct {
	random func(n int64) int64
}

// NewSampler returns a sampling limiter drawing from [math/rand/v2], or
// the source injected with [WithRandom].
func NewSampler(opts ...Option) *Sampler {
	return &Sampler{random: makeConfig(opts...).random}
}

// Check draws once; a statement is allowed on a zero draw out of n.
// Values of n below two disable sampling.
func (s *Sampler) Check(n int64) Status {
	if n <= 1 {
		return Allow
	}

	if s.random(n) == 0 {
		return Allow
	}

	return Disallow
}
