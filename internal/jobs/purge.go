package jobs

import (
	"context"
	"time"

	"semaphore/my-espace/internal/kv"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/metrics"
)

const purgeTimeout = 10 * time.Second

// StartSessionPurgeJob sweeps expired session rows from backends that do
// not expire keys by themselves. It stops with ctx.
func StartSessionPurgeJob(ctx context.Context, store kv.Store, interval time.Duration) {
	purger, ok := store.(kv.Purger)
	if !ok {
		logging.FromContext(ctx).Info("session purge job disabled: backend expires keys itself")
		return
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				PurgeOnce(ctx, purger, time.Now().UTC())
			}
		}
	}()
}

func PurgeOnce(ctx context.Context, purger kv.Purger, now time.Time) int64 {
	tickCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()
	removed, err := purger.PurgeExpired(tickCtx, now)
	if err != nil {
		logging.FromContext(ctx).Error("session purge job error", "error", err)
		return 0
	}
	if removed > 0 {
		metrics.PurgedSessions.Add(float64(removed))
		logging.FromContext(ctx).Info("session purge job removed expired entries", "count", removed)
	}
	return removed
}
