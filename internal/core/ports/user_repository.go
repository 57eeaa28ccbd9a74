package ports

import (
	"context"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// UserRepository owns persistence of user records.
//
// FindByID and FindByUsername return domain.ErrUserNotFound when no record
// matches. Create and Update return domain.ErrUserExists when the store
// rejects a duplicate username.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
