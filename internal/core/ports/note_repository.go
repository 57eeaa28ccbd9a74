package ports

import (
	"context"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// NoteRepository owns persistence of notes. Lookups that find nothing
// return domain.ErrNoteNotFound.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByTitle(ctx context.Context, title string) (*domain.Note, error)
	// CountByUser returns how many notes reference userID as their owner.
	CountByUser(ctx context.Context, userID string) (int64, error)
	// Create assigns the next ticket number and inserts the note.
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}
