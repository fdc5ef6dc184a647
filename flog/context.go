package flog

import (
	"context"
	"time"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/metadata"
	"github.com/google/flogger-sub002/ratelimit"
)

// Context accumulates one log statement: its metadata, rate limits,
// and log site. Chained methods return the receiver; [Context.Log] and
// [Context.Logf] finish the statement, after which the Context must
// not be reused.
//
// All methods accept a nil receiver and no-op, so chains hanging off a
// disabled level selector evaluate without branching at each link.
type Context struct {
	logger *Logger
	scope  metadata.Metadata
	logged *metadata.List
	bucket any
	tags   Tags
	site   LogSite
	level  Level
}

// list returns the statement's metadata, allocating it on first use.
func (c *Context) list() *metadata.List {
	if c.logged == nil {
		c.logged = new(metadata.List)
	}

	return c.logged
}

// With attaches a typed key/value pair to the statement. It is a
// package function because methods cannot introduce type parameters. A
// nil value panics; absence is modeled by omission.
func With[T any](c *Context, key *metadata.TypedKey[T], value T) *Context {
	if c == nil {
		return nil
	}

	c.list().Add(key, value)

	return c
}

// WithCause attaches err as the statement's cause under [KeyCause]. A
// nil err leaves the statement unchanged.
func (c *Context) WithCause(err error) *Context {
	if c == nil || err == nil {
		return c
	}

	c.list().Add(KeyCause, err)

	return c
}

// WithTags merges tags into the statement's tag set, emitted under
// [KeyTags] as one pair per value.
func (c *Context) WithTags(tags Tags) *Context {
	if c == nil || tags.Len() == 0 {
		return c
	}

	c.tags = c.tags.Merge(tags)

	return c
}

// Every emits the statement once per n invocations of its site. The
// first invocation emits; n below two disables the limit.
func (c *Context) Every(n int) *Context {
	if c == nil {
		return c
	}

	c.list().Add(KeyEveryN, n)

	return c
}

// AtMostEvery emits the statement at most once per period at its site.
// A non-positive period disables the limit.
func (c *Context) AtMostEvery(period time.Duration) *Context {
	if c == nil {
		return c
	}

	c.list().Add(KeyAtMostEvery, period)

	return c
}

// OnAverageEvery emits roughly one in n invocations, chosen at random.
// N below two disables the sampling.
func (c *Context) OnAverageEvery(n int) *Context {
	if c == nil {
		return c
	}

	c.list().Add(KeySampleEveryN, n)

	return c
}

// Per splits the statement's rate limit state by bucket, so each
// bucket is limited independently at the same site. The bucket must be
// comparable; nil leaves the statement unbucketed.
func (c *Context) Per(bucket any) *Context {
	if c == nil || bucket == nil {
		return c
	}

	c.bucket = bucket

	return c
}

// WithSite injects the statement's log site, overriding caller
// capture. Code relaying logs on behalf of other callers uses this to
// preserve the originating site.
func (c *Context) WithSite(site LogSite) *Context {
	if c == nil {
		return c
	}

	c.site = site

	return c
}

// Ctx adopts the metadata scope carried by ctx, as attached by
// [NewScope]. Statement metadata with the same single-valued key wins
// over scope metadata.
func (c *Context) Ctx(ctx context.Context) *Context {
	if c == nil {
		return c
	}

	c.scope = ScopeFrom(ctx)

	return c
}

// IsEnabled reports whether the statement's level passed the backend's
// gate. Rate limits apply only at the terminal call, so an enabled
// statement may still be suppressed.
func (c *Context) IsEnabled() bool { return c != nil }

// Log finishes the statement with a literal message.
func (c *Context) Log(msg string) {
	if c == nil {
		return
	}

	if !c.site.Valid() {
		c.site = backend.CallerSite(1)
	}

	if r := c.build(); r != nil {
		r.SetMessage(msg)
		c.logger.dispatch(r)
	}
}

// Logf finishes the statement with a fmt-formatted message. Formatting
// is deferred until a backend renders the record.
func (c *Context) Logf(format string, args ...any) {
	if c == nil {
		return
	}

	if !c.site.Valid() {
		c.site = backend.CallerSite(1)
	}

	if r := c.build(); r != nil {
		r.SetMessagef(format, args...)
		c.logger.dispatch(r)
	}
}

// build runs the statement's rate limits and assembles its record. It
// returns nil when this invocation is suppressed.
func (c *Context) build() *backend.Record {
	skipped, ok := c.checkLimits()
	if !ok {
		return nil
	}

	if skipped > 0 {
		c.list().Add(KeySkipped, int64(skipped))
	}

	if c.tags.Len() > 0 {
		c.list().Add(KeyTags, c.tags)
	}

	var logged metadata.Metadata = metadata.Empty()
	if c.logged != nil {
		logged = c.logged
	}

	return &backend.Record{
		Time:   c.logger.clock(),
		Level:  c.level,
		Site:   c.site,
		Scope:  metadata.Concat(c.logger.scope, c.scope),
		Logged: logged,
		Depth:  int(c.logger.depth.Load()),
	}
}

// checkLimits consults the limiters the statement configured and the
// per-site guard. It returns the suppressed invocation count to attach
// and whether this invocation emits.
func (c *Context) checkLimits() (int, bool) {
	if c.logged == nil {
		return 0, true
	}

	var status ratelimit.Status

	l := c.logger
	key := c.statementKey()

	if n, ok := lastValue(c.logged, KeyEveryN); ok {
		status = ratelimit.Combine(status, l.counter.Check(key, int64(n)))
	}

	if period, ok := lastValue(c.logged, KeyAtMostEvery); ok {
		status = ratelimit.Combine(status, l.interval.Check(key, period))
	}

	if n, ok := lastValue(c.logged, KeySampleEveryN); ok {
		status = ratelimit.Combine(status, l.sampler.Check(int64(n)))
	}

	if status == nil {
		return 0, true
	}

	skipped := l.guards.Check(status, key)
	if skipped == ratelimit.Skipped {
		return 0, false
	}

	return skipped, true
}

// statementKey identifies the statement for rate limit state: its log
// site, split by bucket when [Context.Per] was used.
func (c *Context) statementKey() any {
	if c.bucket == nil {
		return c.site
	}

	return perBucket{site: c.site, bucket: c.bucket}
}

// perBucket keys rate limit state for one site and one bucket.
type perBucket struct {
	site   LogSite
	bucket any
}

// lastValue returns the statement's winning value for a single-valued
// key, scanning from the end to honor last-wins resolution.
func lastValue[T any](md metadata.Metadata, key *metadata.TypedKey[T]) (T, bool) {
	for n := md.Len() - 1; n >= 0; n-- {
		if md.Key(n) == metadata.Key(key) {
			v, err := key.Cast(md.Value(n))

			return v, err == nil
		}
	}

	var zero T

	return zero, false
}
