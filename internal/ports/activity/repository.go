package activity

import (
	"context"
	"time"

	"devsocial/internal/core/activity"

	"github.com/gofrs/uuid"
)

// EventRepository is the durable outbox of activity events.
type EventRepository interface {
	Create(ctx context.Context, e *activity.Event) (*activity.Event, error)
	GetPending(ctx context.Context, limit int) ([]*activity.Event, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	// FindByIDs returns the events in the order of ids, skipping unknown ones.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*activity.Event, error)
}

// Feed stores per-user activity feeds ordered by time.
type Feed interface {
	Push(ctx context.Context, ownerID string, eventID uuid.UUID, at time.Time) error
	// Range returns event ids newest first.
	Range(ctx context.Context, ownerID string, start, limit int64) ([]uuid.UUID, error)
}

type EventDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	ActorID   string    `json:"actorId"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}
