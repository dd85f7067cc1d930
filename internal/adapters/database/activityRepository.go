package database

import (
	"context"
	"time"

	"devsocial/internal/core/activity"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ActivityRepositoryDatabase struct {
	db *gorm.DB
}

func NewActivityRepositoryDatabase(db *gorm.DB) *ActivityRepositoryDatabase {
	return &ActivityRepositoryDatabase{db: db}
}

func (repo *ActivityRepositoryDatabase) Create(ctx context.Context, e *activity.Event) (*activity.Event, error) {
	if err := repo.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// GetPending returns up to limit pending events, oldest first.
func (repo *ActivityRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*activity.Event, error) {
	var events []*activity.Event
	if err := repo.db.WithContext(ctx).
		Where("status = ?", activity.StatusPending).
		Order("created_at asc").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *ActivityRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return repo.db.WithContext(ctx).Model(&activity.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": activity.StatusDone, "processed_at": &now}).Error
}

func (repo *ActivityRepositoryDatabase) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*activity.Event, error) {
	if len(ids) == 0 {
		return []*activity.Event{}, nil
	}
	var found []*activity.Event
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*activity.Event, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	ordered := make([]*activity.Event, 0, len(found))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}
