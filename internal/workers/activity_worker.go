package workers

import (
	"context"
	"time"

	"devsocial/internal/core/activity"
	activityPort "devsocial/internal/ports/activity"

	"go.uber.org/zap"
)

// ActivityWorker drains the activity outbox into the owners' Redis feeds.
type ActivityWorker struct {
	EventRepo    activityPort.EventRepository
	Feed         activityPort.Feed
	BatchSize    int // تعداد رکوردهای pending در هر دور
	PollInterval time.Duration
	Logger       *zap.Logger
}

func NewActivityWorker(
	eventRepo activityPort.EventRepository,
	feed activityPort.Feed,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *ActivityWorker {
	return &ActivityWorker{
		EventRepo:    eventRepo,
		Feed:         feed,
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		Logger:       logger,
	}
}

// Run polls for pending events until ctx is cancelled.
func (w *ActivityWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 ActivityWorker started", zap.Int("batchSize", w.BatchSize), zap.Duration("interval", w.PollInterval))
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessBatch(ctx); err != nil {
			w.Logger.Error("❌ Error fetching pending events", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Activity worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessBatch handles one batch of pending events and returns how many were
// delivered.
func (w *ActivityWorker) ProcessBatch(ctx context.Context) (int, error) {
	pending, err := w.EventRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, e := range pending {
		if w.deliver(ctx, e) {
			delivered++
		}
	}
	return delivered, nil
}

// deliver pushes one event and marks it done. A failed push leaves the event
// pending so the next batch retries it.
func (w *ActivityWorker) deliver(ctx context.Context, e *activity.Event) bool {
	if e == nil || e.OwnerID == "" {
		w.Logger.Error("❌ Invalid activity event", zap.Any("event", e))
		return false
	}

	if err := w.Feed.Push(ctx, e.OwnerID, e.ID, e.CreatedAt); err != nil {
		w.Logger.Error("❌ Error pushing event to feed", zap.String("eventID", e.ID.String()), zap.Error(err))
		return false
	}

	if err := w.EventRepo.MarkDone(ctx, e.ID); err != nil {
		w.Logger.Warn("⚠️ could not mark activity event done", zap.String("eventID", e.ID.String()), zap.Error(err))
		return false
	}
	w.Logger.Debug("✅ activity delivered", zap.String("eventID", e.ID.String()), zap.String("ownerID", e.OwnerID))
	return true
}
