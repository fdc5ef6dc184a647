package cli

import (
	"context"
	"sync"
	"time"

	"github.com/google/flogger-sub002/flog"
)

// Burst floods the logger from several goroutines at once, each worker rate
// limited by invocation count.
type Burst struct {
	Workers int `default:"4"   help:"Concurrent worker goroutines"`
	Count   int `default:"200" help:"Statements each worker issues"`
	EveryN  int `default:"25"  help:"Emit every Nth statement per site" name:"every"`
}

// Run executes the burst scenario.
func (b *Burst) Run(ctx context.Context, logger *flog.Logger) error {
	started := time.Now()
	tags := flog.Tags{}.With("scenario", "burst")

	var wg sync.WaitGroup

	for worker := range b.Workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ctx := workerScope(ctx, worker)

			for i := range b.Count {
				flog.With(logger.AtInfo().Ctx(ctx).Every(b.EveryN).WithTags(tags), keyAttempt, i).
					Log("processing item")

				// Simulate an occasional failure path with its own site.
				if i%97 == 0 {
					logger.AtWarning().Ctx(ctx).Every(b.EveryN).
						WithCause(errSimulated).
						Logf("retrying item %d", i)
				}
			}
		}()
	}

	wg.Wait()

	logger.AtInfo().Logf("burst complete: %d workers, %d statements in %s",
		b.Workers, b.Workers*b.Count, time.Since(started).Round(time.Millisecond))

	return nil
}
