package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

// NoteCounter reports how many notes a user owns. Deletion is refused while
// the count is non-zero.
type NoteCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// UserService implements the user lifecycle: list, create, update, delete.
// It holds no per-request state; every call works on freshly fetched records.
type UserService struct {
	users  ports.UserRepository
	notes  NoteCounter
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes NoteCounter, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, notes: notes, hasher: hasher, logger: logger}
}

// ListUsers returns every user. An empty collection is reported as
// domain.ErrNoUsers rather than an empty slice.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || !validRoles(input.Roles) {
		return nil, domain.ErrMissingFields
	}

	taken, err := s.usernameOwner(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Roles:        input.Roles,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if created == nil {
		return nil, domain.ErrInvalidUserData
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if input.ID == "" || input.Username == "" || input.Active == nil || !validRoles(input.Roles) {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	owner, err := s.usernameOwner(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	// IDs are canonical hex strings on both sides, so plain equality holds.
	if owner != nil && owner.ID != user.ID {
		return nil, domain.ErrUserExists
	}

	user.Username = input.Username
	user.Active = *input.Active
	user.Roles = input.Roles

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", updated.ID).Str("username", updated.Username).Msg("user updated")
	return updated, nil
}

// DeleteUser removes the user identified by id and returns the record as
// it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserIDRequired
	}

	n, err := s.notes.CountByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: count notes: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrUserHasNotes
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user deleted")
	user.PasswordHash = ""
	return user, nil
}

// usernameOwner returns the user currently holding username, or nil.
func (s *UserService) usernameOwner(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func validRoles(roles []string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if r == "" {
			return false
		}
	}
	return true
}
