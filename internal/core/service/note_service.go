package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewNoteService(notes ports.NoteRepository, users ports.UserRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{
		notes:  notes,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListNotes returns all notes with their owner's username attached. Notes
// whose owner no longer exists are returned with an empty username.
func (s *NoteService) ListNotes(ctx context.Context) ([]ports.NoteView, error) {
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, domain.ErrNoNotes
	}

	usernames := make(map[string]string)
	views := make([]ports.NoteView, 0, len(notes))
	for _, n := range notes {
		name, ok := usernames[n.UserID]
		if !ok {
			u, err := s.users.FindByID(ctx, n.UserID)
			switch {
			case err == nil:
				name = u.Username
			case errors.Is(err, domain.ErrUserNotFound):
			default:
				return nil, fmt.Errorf("list notes: owner %s: %w", n.UserID, err)
			}
			usernames[n.UserID] = name
		}
		views = append(views, ports.NoteView{Note: n, Username: name})
	}
	return views, nil
}

func (s *NoteService) CreateNote(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if input.UserID == "" || input.Title == "" || input.Text == "" {
		return nil, domain.ErrAllFieldsRequired
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	dup, err := s.titleOwner(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if dup != nil {
		return nil, domain.ErrDuplicateNote
	}

	now := s.now()
	created, err := s.notes.Create(ctx, &domain.Note{
		UserID:    input.UserID,
		Title:     input.Title,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateNote) {
			return nil, err
		}
		return nil, fmt.Errorf("create note: %w", err)
	}
	if created == nil {
		return nil, domain.ErrInvalidNoteData
	}

	s.logger.Info().Str("note_id", created.ID).Int64("ticket", created.Ticket).Msg("note created")
	return created, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	if input.ID == "" || input.UserID == "" || input.Title == "" || input.Text == "" || input.Completed == nil {
		return nil, domain.ErrAllFieldsRequired
	}

	note, err := s.notes.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	if input.UserID != note.UserID {
		if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("update note: %w", err)
		}
	}

	dup, err := s.titleOwner(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if dup != nil && dup.ID != note.ID {
		return nil, domain.ErrDuplicateNote
	}

	note.UserID = input.UserID
	note.Title = input.Title
	note.Text = input.Text
	note.Completed = *input.Completed
	note.UpdatedAt = s.now()

	updated, err := s.notes.Update(ctx, note)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateNote) || errors.Is(err, domain.ErrNoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.logger.Info().Str("note_id", updated.ID).Bool("completed", updated.Completed).Msg("note updated")
	return updated, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) (*domain.Note, error) {
	if id == "" {
		return nil, domain.ErrNoteIDRequired
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info().Str("note_id", note.ID).Msg("note deleted")
	return note, nil
}

func (s *NoteService) titleOwner(ctx context.Context, title string) (*domain.Note, error) {
	n, err := s.notes.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}
