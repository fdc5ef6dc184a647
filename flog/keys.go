//nolint:gochecknoglobals
package flog

import (
	"time"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/metadata"
)

// Keys attached by the fluent methods. The rate limit configuration of
// a statement rides its own metadata, so backends and filters see the
// requested limits alongside the values they limited.
var (
	// KeyCause carries the error attached with [Context.WithCause].
	// Backends render it apart from ordinary metadata.
	KeyCause = backend.KeyCause

	// KeySkipped carries the number of invocations suppressed by rate
	// limiting since the statement last emitted.
	KeySkipped = backend.KeySkipped

	// KeyTags carries the merged [Tags] of a statement. Its emitter
	// explodes the set into one pair per tag value.
	KeyTags = metadata.Single[Tags]("tags", metadata.WithEmitter(emitTags))

	// KeyEveryN carries the n of [Context.Every].
	KeyEveryN = metadata.Single[int]("ratelimit_count")

	// KeyAtMostEvery carries the period of [Context.AtMostEvery].
	KeyAtMostEvery = metadata.Single[time.Duration]("ratelimit_period")

	// KeySampleEveryN carries the n of [Context.OnAverageEvery].
	KeySampleEveryN = metadata.Single[int]("sampling_count")
)
