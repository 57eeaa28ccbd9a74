package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

const defaultAccessTokenTTL = 15 * time.Minute

// AuthService issues access tokens for active users.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultAccessTokenTTL
	}
	return &AuthService{users: users, hasher: hasher, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed access token. Unknown
// users, inactive users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrAllFieldsRequired
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
