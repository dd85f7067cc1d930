package user

import (
	"context"
	"errors"

	"devsocial/internal/core/user"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned by Create when the username or mobile is already stored.
var ErrDuplicate = errors.New("user already exists")

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	Avatar   string `json:"avatar"`
}
