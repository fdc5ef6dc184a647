// Package flog provides a fluent structured logging frontend over the
// sinks in [github.com/google/flogger-sub002/backend].
//
// A log statement starts at a level selector, gathers metadata and rate
// limits through chained calls, and ends at a terminal method:
//
//	logger := flog.New(backend.NewConsole(os.Stderr))
//	logger.AtInfo().Log("server started")
//	logger.AtError().WithCause(err).Logf("connect to %s failed", addr)
//
// Disabled statements cost one method call: selectors return nil for
// levels the backend rejects, and every chained method accepts a nil
// receiver.
//
// # Metadata
//
// Typed keys attach structured context to a statement. [With] is a
// package function because Go methods cannot introduce type parameters:
//
//	var keyAttempt = metadata.Single[int]("attempt")
//
//	flog.With(logger.AtWarning(), keyAttempt, 3).Log("retrying")
//
// Metadata also arrives ambiently: [Logger] options attach it to every
// statement of one logger, and [NewScope] attaches it to every
// statement adopting a context via [Context.Ctx]:
//
//	ctx = flog.NewScope(ctx, new(metadata.List).Add(keyRequest, id))
//	logger.AtInfo().Ctx(ctx).Log("handling")
//
// # Rate limiting
//
// [Context.Every], [Context.AtMostEvery], and [Context.OnAverageEvery]
// bound how often a statement emits. Suppressed invocations are counted
// and surface on the next emitted record under [KeySkipped]:
//
//	logger.AtWarning().Every(100).Log("queue full")
//	logger.AtInfo().AtMostEvery(30 * time.Second).Log("heartbeat")
//
// Limits apply per log site by default; [Context.Per] splits one site
// into independently limited buckets.
package flog
