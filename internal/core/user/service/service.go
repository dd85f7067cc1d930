package userapp

import (
	"context"
	"errors"
	"time"

	userEntity "devsocial/internal/core/user"
	userPort "devsocial/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "devsocial"
	tokenTTL    = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyTaken       = errors.New("username or mobile already taken")
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	jwtKey         []byte
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		jwtKey:         jwtKey,
		now:            time.Now,
	}
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		s.Logger.Info("login rejected: unknown user", zap.String("username", username), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Info("login rejected: wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		s.Logger.Error("could not sign token", zap.Error(err))
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// generateJWT برای تولید توکن JWT
func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, name, family, username, mobile, password, avatar string) (*userPort.UserDTO, error) {
	existingUser, err := s.UserRepository.FindByUsernameOrMobile(ctx, username, mobile)
	if err == nil && existingUser != nil {
		return nil, ErrAlreadyTaken
	}
	if err != nil && !errors.Is(err, userPort.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	user := &userEntity.User{
		ID:       id,
		Name:     name,
		Family:   family,
		Username: username,
		Mobile:   mobile,
		Password: string(hashedPassword),
		Avatar:   avatar,
	}

	u, err := s.UserRepository.Create(ctx, user)
	if errors.Is(err, userPort.ErrDuplicate) {
		// a concurrent registration won the unique index
		return nil, ErrAlreadyTaken
	}
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))

	return toDTO(u), nil
}

// GetUser returns the public profile of the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Name:     u.DisplayName(),
		Username: u.Username,
		Mobile:   u.Mobile,
		Avatar:   u.Avatar,
	}
}
