package post

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/datatypes"
)

// Post is stored as one row; likes and comments live in JSON columns on it so a
// read-modify-write of the whole post is a single-row update.
type Post struct {
	ID       uuid.UUID                    `gorm:"primary_key;type:char(36)"`
	Text     string                       `gorm:"type:text;not null"`
	Name     string                       `gorm:"type:varchar(255)"`
	Avatar   string                       `gorm:"type:varchar(512)"`
	UserID   string                       `gorm:"type:varchar(64);not null;index"`
	Likes    datatypes.JSONSlice[Like]    `gorm:"not null"`
	Comments datatypes.JSONSlice[Comment] `gorm:"not null"`
	Date     time.Time                    `gorm:"not null;index"`
}

type Like struct {
	User string `json:"user"`
}

type Comment struct {
	ID     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	User   string    `json:"user"`
	Date   time.Time `json:"date"`
}

// New returns a post with empty likes and comments owned by userID.
func New(id uuid.UUID, userID, text, name, avatar string, now time.Time) *Post {
	return &Post{
		ID:       id,
		Text:     text,
		Name:     name,
		Avatar:   avatar,
		UserID:   userID,
		Likes:    datatypes.JSONSlice[Like]{},
		Comments: datatypes.JSONSlice[Comment]{},
		Date:     now,
	}
}

// OwnedBy reports whether userID authored the post.
func (p *Post) OwnedBy(userID string) bool {
	return p.UserID == userID
}

// HasLiked reports whether userID already appears in Likes.
func (p *Post) HasLiked(userID string) bool {
	return p.likeIndex(userID) >= 0
}

func (p *Post) likeIndex(userID string) int {
	for i, l := range p.Likes {
		if l.User == userID {
			return i
		}
	}
	return -1
}

// Like prepends userID to Likes. A user can like a post at most once.
func (p *Post) Like(userID string) error {
	if p.HasLiked(userID) {
		return Conflict("User already liked this post")
	}
	likes := make(datatypes.JSONSlice[Like], 0, len(p.Likes)+1)
	likes = append(likes, Like{User: userID})
	p.Likes = append(likes, p.Likes...)
	return nil
}

// Unlike removes userID's like, keeping the order of the remaining likes.
func (p *Post) Unlike(userID string) error {
	i := p.likeIndex(userID)
	if i < 0 {
		return Conflict("You have not yet liked this post")
	}
	likes := make(datatypes.JSONSlice[Like], 0, len(p.Likes)-1)
	likes = append(likes, p.Likes[:i]...)
	p.Likes = append(likes, p.Likes[i+1:]...)
	return nil
}

// AddComment prepends c so comments stay most-recent-first.
func (p *Post) AddComment(c Comment) {
	comments := make(datatypes.JSONSlice[Comment], 0, len(p.Comments)+1)
	comments = append(comments, c)
	p.Comments = append(comments, p.Comments...)
}

// RemoveComment deletes the comment with the given id.
func (p *Post) RemoveComment(id uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID != id {
			continue
		}
		comments := make(datatypes.JSONSlice[Comment], 0, len(p.Comments)-1)
		comments = append(comments, p.Comments[:i]...)
		p.Comments = append(comments, p.Comments[i+1:]...)
		return nil
	}
	return NotFound("Comment does not exist", nil)
}
