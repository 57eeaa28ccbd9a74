package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	createNil bool  // if set, Create returns (nil, nil)
	findErr   error // if set, every Find* call returns this error
	createErr error // if set, Create returns this error
	updateErr error // if set, Update returns this error
	deleted   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.createNil {
		return nil, nil
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("%024x", r.seq)
	r.byID[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubNoteRepo struct {
	byID     map[string]*domain.Note
	seq      int
	ticket   int64
	countErr error
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{byID: make(map[string]*domain.Note), ticket: domain.FirstTicket - 1}
}

func cloneNote(n *domain.Note) *domain.Note {
	clone := *n
	return &clone
}

func (r *stubNoteRepo) FindAll(_ context.Context) ([]*domain.Note, error) {
	out := make([]*domain.Note, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, cloneNote(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticket < out[j].Ticket })
	return out, nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *stubNoteRepo) FindByTitle(_ context.Context, title string) (*domain.Note, error) {
	for _, n := range r.byID {
		if n.Title == title {
			return cloneNote(n), nil
		}
	}
	return nil, domain.ErrNoteNotFound
}

func (r *stubNoteRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, note := range r.byID {
		if note.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.seq++
	r.ticket++
	c := cloneNote(note)
	c.ID = fmt.Sprintf("n%023x", r.seq)
	c.Ticket = r.ticket
	r.byID[c.ID] = cloneNote(c)
	return c, nil
}

func (r *stubNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	if _, ok := r.byID[note.ID]; !ok {
		return nil, domain.ErrNoteNotFound
	}
	r.byID[note.ID] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.byID, id)
	return nil
}

var errStorage = errors.New("storage unavailable")
