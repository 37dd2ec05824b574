package leaderboardqueue

import (
	"context"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/riverqueue/river"
)

// Refresher is the part of the leaderboard service the warmer drives.
type Refresher interface {
	Refresh(ctx context.Context) leaderboarddomain.Snapshot
}

// WarmCacheWorker runs WarmCacheJob.
type WarmCacheWorker struct {
	river.WorkerDefaults[WarmCacheJob]
	refresher Refresher
	logger    *slog.Logger
	timeout   time.Duration
}

func NewWarmCacheWorker(refresher Refresher, logger *slog.Logger, timeout time.Duration) *WarmCacheWorker {
	return &WarmCacheWorker{refresher: refresher, logger: logger, timeout: timeout}
}

func (w *WarmCacheWorker) Timeout(*river.Job[WarmCacheJob]) time.Duration {
	return w.timeout
}

// Work never fails the job. A degraded snapshot is retried on the next tick.
func (w *WarmCacheWorker) Work(ctx context.Context, job *river.Job[WarmCacheJob]) error {
	snap := w.refresher.Refresh(ctx)
	meta := snap.Metadata

	if !meta.Source.IsLive() {
		w.logger.WarnContext(ctx, "Leaderboard warm-up produced no live data",
			attr.Int64("job_id", job.ID),
			attr.String("source", string(meta.Source)),
			attr.String("error", meta.Error),
		)
		return nil
	}
	w.logger.InfoContext(ctx, "Leaderboard cache warmed",
		attr.Int64("job_id", job.ID),
		attr.Int("successful_categories", meta.SuccessfulCategories),
		attr.String("response_time", meta.ResponseTime),
	)
	return nil
}
