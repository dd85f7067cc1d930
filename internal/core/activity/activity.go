package activity

import (
	"time"

	"github.com/gofrs/uuid"
)

type Kind string

const (
	KindPostLiked     Kind = "post_liked"
	KindPostCommented Kind = "post_commented"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Event is an outbox row describing something that happened to OwnerID's post.
type Event struct {
	ID          uuid.UUID  `gorm:"primary_key;type:char(36)"`
	PostID      uuid.UUID  `gorm:"type:char(36);not null"`
	ActorID     string     `gorm:"type:varchar(64);not null"`
	OwnerID     string     `gorm:"type:varchar(64);not null;index"`
	Kind        Kind       `gorm:"type:varchar(32);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done
	CreatedAt   time.Time  `gorm:"not null"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Event) TableName() string { return "activity_events" }
