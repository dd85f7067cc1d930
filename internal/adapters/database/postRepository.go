package database

import (
	"context"
	"errors"
	"fmt"

	"devsocial/internal/core/post"
	postPort "devsocial/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) FindAll(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Order("date desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Update loads the row with a write lock, applies mutate and saves it in the
// same transaction.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, id uuid.UUID, mutate func(p *post.Post) error) (*post.Post, error) {
	var updated *post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}
		if err := tx.Model(p).Select("likes", "comments").Updates(p).Error; err != nil {
			return fmt.Errorf("save post %s: %w", id, err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID, guard func(p *post.Post) error) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		if err := guard(p); err != nil {
			return err
		}
		if err := tx.Delete(p).Error; err != nil {
			return fmt.Errorf("delete post %s: %w", id, err)
		}
		return nil
	})
}

func lockPost(tx *gorm.DB, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return postPort.ErrNotFound
	}
	return err
}
