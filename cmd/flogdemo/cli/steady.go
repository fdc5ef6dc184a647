package cli

import (
	"context"
	"time"

	"github.com/google/flogger-sub002/flog"
)

// Steady emits a ticker-driven heartbeat held to a wall-clock period.
type Steady struct {
	Duration time.Duration `default:"3s"    help:"How long to run"`
	Tick     time.Duration `default:"10ms"  help:"Spacing between statements"`
	AtMost   time.Duration `default:"500ms" help:"Minimum period between emissions" name:"at-most"`
}

// Run executes the steady scenario.
func (s *Steady) Run(ctx context.Context, logger *flog.Logger) error {
	ctx = requestScope(ctx)

	ticker := time.NewTicker(s.Tick)
	defer ticker.Stop()

	deadline := time.NewTimer(s.Duration)
	defer deadline.Stop()

	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-deadline.C:
			logger.AtInfo().Ctx(ctx).Logf("steady complete: %d ticks in %s", ticks, s.Duration)

			return nil

		case <-ticker.C:
			ticks++

			flog.With(logger.AtInfo().Ctx(ctx).AtMostEvery(s.AtMost), keyTick, ticks).
				Log("heartbeat")
		}
	}
}
