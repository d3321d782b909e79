// internal/watcher/runner.go
package watcher

import (
	"context"
	"time"
)

// Run emits one immediate baseline cycle, then a CycleResult per tick
// on the provided channel. Cycles are strictly sequential: if a cycle
// overruns the interval the ticker drops ticks and the next cycle is
// delayed, never run concurrently.
func (w *Watcher) Run(ctx context.Context, out chan<- CycleResult) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	if !w.emit(ctx, out) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.emit(ctx, out) {
				return
			}
		}
	}
}

func (w *Watcher) emit(ctx context.Context, out chan<- CycleResult) bool {
	select {
	case out <- w.RunCycle(ctx):
		return true
	case <-ctx.Done():
		return false
	}
}
