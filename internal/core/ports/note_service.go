package ports

import (
	"context"

	"github.com/technotes/technotes-api/internal/core/domain"
)

type CreateNoteInput struct {
	UserID string
	Title  string
	Text   string
}

type UpdateNoteInput struct {
	ID        string
	UserID    string
	Title     string
	Text      string
	Completed *bool
}

// NoteView is a note together with the username of its owner.
type NoteView struct {
	*domain.Note
	Username string
}

type NoteService interface {
	ListNotes(ctx context.Context) ([]NoteView, error)
	CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	UpdateNote(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) (*domain.Note, error)
}
