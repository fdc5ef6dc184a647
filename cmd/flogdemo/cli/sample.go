package cli

import (
	"context"
	"strconv"

	"github.com/google/flogger-sub002/flog"
)

// Sample demonstrates statistical sampling and per-shard rate limiting.
type Sample struct {
	Count  int `default:"1000" help:"Statements to issue"`
	EveryN int `default:"50"   help:"Sample one statement in N on average" name:"every"`
	Shards int `default:"3"    help:"Distinct shard buckets"`
}

// Run executes the sample scenario.
func (s *Sample) Run(ctx context.Context, logger *flog.Logger) error {
	ctx = requestScope(ctx)

	for i := range s.Count {
		// Invisible below the info threshold unless --backend-level drops it.
		logger.AtDebug().Ctx(ctx).OnAverageEvery(s.EveryN).
			Logf("sampled event %d", i)

		// One site, one limiter state per shard.
		shard := strconv.Itoa(i % s.Shards)
		flog.With(logger.AtInfo().Ctx(ctx).Every(s.EveryN).Per(shard), keyShard, shard).
			Log("shard event")
	}

	logger.AtInfo().Ctx(ctx).Logf("sample complete: %d statements over %d shards", s.Count, s.Shards)

	return nil
}
