package ratelimit

// Status reports one rate limiter's decision for one invocation of a log
// statement.
//
// A limiter in its limiting state returns [Disallow] and keeps updating
// its internal counters. Once its trigger condition is met it returns a
// pending status, whose Reset is invoked exactly once by the guard
// winner when the statement is actually emitted, returning the limiter
// to its limiting state.
type Status interface {
	// Reset transitions the limiter out of its pending state.
	Reset()
}

// Allow is the status returned by a stateless rate limiter that permits
// logging. It carries no pending state; Reset is a no-op.
//
//nolint:gochecknoglobals
var Allow Status = allowStatus{}

// Disallow is the status suppressing a log statement. Combining any
// status with Disallow yields Disallow.
//
//nolint:gochecknoglobals
var Disallow Status = disallowStatus{}

type allowStatus struct{}

func (allowStatus) Reset() {}

type disallowStatus struct{}

func (disallowStatus) Reset() {}

// Combine merges the decisions of two independent limiters. Nil is the
// identity, Disallow dominates, Allow yields to any non-nil status, and
// two pending statuses merge into a composite that resets both.
func Combine(a, b Status) Status {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	if a == Disallow || b == Allow {
		return a
	}

	if b == Disallow || a == Allow {
		return b
	}

	return composite{a, b}
}

// composite is the pending combination of two pending statuses.
type composite struct {
	a, b Status
}

// Reset resets both constituents. The second reset runs even when the
// first panics, and a panic from the second supersedes one from the
// first.
func (c composite) Reset() {
	defer c.b.Reset()
	c.a.Reset()
}
