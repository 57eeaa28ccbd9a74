package ports

import (
	"context"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted by CreateUser.
type CreateUserInput struct {
	Username string
	Password string
	Roles    []string
}

// UpdateUserInput carries the fields accepted by UpdateUser. Active is a
// pointer so that an absent value can be told apart from false. An empty
// Password leaves the stored hash untouched.
type UpdateUserInput struct {
	ID       string
	Username string
	Active   *bool
	Roles    []string
	Password string
}

// UserService is the user lifecycle use-case boundary.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}
