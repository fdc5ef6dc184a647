package ratelimit

import "sync/atomic"

// Skipped is returned by [Guards.Check] for every invocation that must
// not be emitted: all callers of a disallowed statement, and all losers
// of a pending window's claim.
const Skipped = -1

// guard tracks one site's invocations since its last emission and the
// single-winner claim flag. All access is atomic; contenders never
// block.
type guard struct {
	pending atomic.Int64
	claimed atomic.Bool
}

// Guards holds the per-site guard state consulted on every rate-limited
// log statement. Guards are safe for unsynchronized concurrent use.
type Guards struct {
	sites *SiteMap[*guard]
}

// NewGuards returns an empty guard registry. It grows one entry per
// distinct site key and is unbounded unless [WithMaxSites] is given.
func NewGuards(opts ...Option) *Guards {
	return &Guards{
		sites: NewSiteMap(func() *guard { return &guard{} }, opts...),
	}
}

// Len returns the number of sites with guard state.
func (g *Guards) Len() int { return g.sites.Len() }

// Check records one invocation of the statement at key and decides
// whether this caller emits it. Every invocation counts toward the
// site's pending total. When status is [Disallow], or another caller
// holds the claim for the current pending window, Check returns
// [Skipped]. Otherwise this caller exclusively resets status and
// receives the number of invocations skipped since the last emission.
//
// A panic out of Reset releases the claim before propagating, so one
// failing limiter cannot wedge its site. The skipped invocations remain
// counted for the next winner.
func (g *Guards) Check(status Status, key any) int {
	site := g.sites.Get(key)
	pending := site.pending.Add(1)

	if status == Disallow || !site.claimed.CompareAndSwap(false, true) {
		return Skipped
	}

	func() {
		defer site.claimed.Store(false)
		status.Reset()
	}()

	site.pending.Add(-pending)

	return int(pending - 1)
}
