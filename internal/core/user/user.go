package user

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Name      string     `gorm:"not null"`
	Family    string     `gorm:"not null"`
	Username  string     `gorm:"unique;not null"`
	Mobile    string     `gorm:"unique;not null"`
	Password  string     `gorm:"not null"`
	Avatar    string     `gorm:"type:varchar(512)"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// DisplayName is the name shown next to the user's posts and comments.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.Name + " " + u.Family)
}
