package engine

import (
	"context"
	"time"
)

const DefaultInterval = 2 * time.Second

// Scheduler fires ticks one at a time. The next tick is armed only after
// the previous one returned, so a slow capture delays the following tick
// instead of overlapping it; missed ticks are not made up.
type Scheduler struct {
	Interval time.Duration
	// Immediate fires the first tick without waiting an interval.
	Immediate bool
}

// Run calls tick every Interval and passes each result to handle until ctx
// is done. It returns ctx.Err().
func (sc Scheduler) Run(ctx context.Context, tick func(context.Context) (Render, error), handle func(Render, error)) error {
	interval := sc.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	first := interval
	if sc.Immediate {
		first = 0
	}
	timer := time.NewTimer(first)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		r, err := tick(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		handle(r, err)
		timer.Reset(interval)
	}
}
