package activityapp

import (
	"context"
	"time"

	"devsocial/internal/core/activity"
	activityPort "devsocial/internal/ports/activity"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type ActivityService struct {
	EventRepository activityPort.EventRepository
	Feed            activityPort.Feed
	Logger          *zap.Logger
	now             func() time.Time
}

func NewActivityService(repo activityPort.EventRepository, feed activityPort.Feed, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		EventRepository: repo,
		Feed:            feed,
		Logger:          logger,
		now:             time.Now,
	}
}

// Record queues an event for ownerID unless the actor is the owner.
func (s *ActivityService) Record(ctx context.Context, kind activity.Kind, postID uuid.UUID, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	_, err = s.EventRepository.Create(ctx, &activity.Event{
		ID:        id,
		PostID:    postID,
		ActorID:   actorID,
		OwnerID:   ownerID,
		Kind:      kind,
		Status:    activity.StatusPending,
		CreatedAt: s.now(),
	})
	return err
}

// GetFeedByUserID دریافت فید فعالیت کاربر با start و limit
func (s *ActivityService) GetFeedByUserID(ctx context.Context, userID string, start, limit int64) ([]*activityPort.EventDTO, error) {
	ids, err := s.Feed.Range(ctx, userID, start, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*activityPort.EventDTO{}, nil
	}

	events, err := s.EventRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(events) < len(ids) {
		s.Logger.Warn("feed references missing events", zap.String("userID", userID), zap.Int("missing", len(ids)-len(events)))
	}

	out := make([]*activityPort.EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, &activityPort.EventDTO{
			ID:        e.ID.String(),
			PostID:    e.PostID.String(),
			ActorID:   e.ActorID,
			Kind:      string(e.Kind),
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
