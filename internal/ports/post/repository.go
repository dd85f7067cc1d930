package post

import (
	"context"
	"errors"
	"time"

	"devsocial/internal/core/post"

	"github.com/gofrs/uuid"
)

// ErrNotFound is returned by a PostRepository when no post has the requested id.
var ErrNotFound = errors.New("post not found")

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	// Update loads the post, applies mutate and saves the result as one
	// atomic step. When mutate fails nothing is written and its error is
	// returned unchanged.
	Update(ctx context.Context, id uuid.UUID, mutate func(p *post.Post) error) (*post.Post, error)
	// Delete removes the post if guard accepts it, atomically.
	Delete(ctx context.Context, id uuid.UUID, guard func(p *post.Post) error) error
}

// Locker serializes mutations on the same key across callers.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// DTOها برای UseCase
type LikeDTO struct {
	User string `json:"user"`
}

type CommentDTO struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	User   string    `json:"user"`
	Date   time.Time `json:"date"`
}

type PostDTO struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	User     string       `json:"user"`
	Likes    []LikeDTO    `json:"likes"`
	Comments []CommentDTO `json:"comments"`
	Date     time.Time    `json:"date"`
}

// ToDTO converts an entity into its transport shape. Likes and comments are
// never nil so they encode as [] rather than null.
func ToDTO(p *post.Post) *PostDTO {
	likes := make([]LikeDTO, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, LikeDTO{User: l.User})
	}
	comments := make([]CommentDTO, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentDTO{
			ID:     c.ID.String(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			User:   c.User,
			Date:   c.Date,
		})
	}
	return &PostDTO{
		ID:       p.ID.String(),
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		User:     p.UserID,
		Likes:    likes,
		Comments: comments,
		Date:     p.Date,
	}
}
