// Package ratelimit coordinates the stateful rate limiters of a log
// statement so that concurrent invocations of the same statement never
// race or double-log.
//
// # Statuses
//
// Each limiter reports a [Status] per invocation: [Disallow] to suppress
// the statement, [Allow] as a stateless yes, or a pending status of its
// own whose Reset must run exactly once when the statement is finally
// emitted. [Combine] merges the statuses of independent limiters;
// Disallow dominates and Allow yields.
//
// # The guard protocol
//
// A per-site [Guards.Check] call counts every invocation and elects a
// single winner per pending window. The winner resets the combined
// status and learns how many invocations were skipped since the last
// emission; all other callers are told to skip. Contenders never block;
// they lose a compare-and-swap and move on.
//
// # Limiters
//
// [Counter] allows the first of every n invocations, [Interval] allows
// at most one invocation per period, and [Sampler] allows each
// invocation with probability 1/n. All are keyed by a caller-supplied
// comparable site identity.
package ratelimit
