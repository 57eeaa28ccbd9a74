package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	return s.deleteFn(ctx, id)
}

type stubNoteService struct {
	listFn   func(ctx context.Context) ([]ports.NoteView, error)
	createFn func(ctx context.Context, in ports.CreateNoteInput) (*domain.Note, error)
	updateFn func(ctx context.Context, in ports.UpdateNoteInput) (*domain.Note, error)
	deleteFn func(ctx context.Context, id string) (*domain.Note, error)
}

func (s *stubNoteService) ListNotes(ctx context.Context) ([]ports.NoteView, error) {
	return s.listFn(ctx)
}

func (s *stubNoteService) CreateNote(ctx context.Context, in ports.CreateNoteInput) (*domain.Note, error) {
	return s.createFn(ctx, in)
}

func (s *stubNoteService) UpdateNote(ctx context.Context, in ports.UpdateNoteInput) (*domain.Note, error) {
	return s.updateFn(ctx, in)
}

func (s *stubNoteService) DeleteNote(ctx context.Context, id string) (*domain.Note, error) {
	return s.deleteFn(ctx, id)
}

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingAudit) Record(entry domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// newJSONContext builds an echo context with the validator registered and a
// JSON body, as the router would.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
