package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
	"github.com/technotes/technotes-api/internal/infrastructure/security"
)

func newTestUserService() (*UserService, *stubUserRepo, *stubNoteRepo) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := NewUserService(users, notes, security.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
	return svc, users, notes
}

func boolPtr(b bool) *bool { return &b }

func mustCreate(t *testing.T, svc *UserService, username, password string, roles ...string) *domain.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: username,
		Password: password,
		Roles:    roles,
	})
	if err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return u
}

func TestUserService_ListUsers_Empty(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.ListUsers(context.Background())
	if !errors.Is(err, domain.ErrNoUsers) {
		t.Fatalf("expected ErrNoUsers, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound kind, got %v", err)
	}
}

func TestUserService_CreateThenList_OmitsPassword(t *testing.T) {
	svc, _, _ := newTestUserService()
	mustCreate(t, svc, "alice", "pass123", domain.RoleEmployee)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("unexpected users: %+v", users)
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped")
	}
	if !users[0].Active {
		t.Fatalf("expected new user to be active")
	}

	raw, err := json.Marshal(users[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Fatalf("serialized user leaks password: %s", raw)
	}
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc, users, _ := newTestUserService()

	cases := map[string]ports.CreateUserInput{
		"missing username": {Password: "pw", Roles: []string{domain.RoleEmployee}},
		"missing password": {Username: "bob", Roles: []string{domain.RoleEmployee}},
		"no roles":         {Username: "bob", Password: "pw"},
		"empty role":       {Username: "bob", Password: "pw", Roles: []string{""}},
	}
	for name, in := range cases {
		if _, err := svc.CreateUser(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected InvalidInput, got %v", name, err)
		}
	}
	if len(users.byID) != 0 {
		t.Fatalf("expected nothing persisted, got %d users", len(users.byID))
	}
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	svc, _, _ := newTestUserService()
	mustCreate(t, svc, "bob", "pass", domain.RoleEmployee)

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "other", Roles: []string{domain.RoleManager},
	})
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserExists conflict, got %v", err)
	}
}

func TestUserService_CreateUser_UsernameIsCaseSensitive(t *testing.T) {
	svc, _, _ := newTestUserService()
	mustCreate(t, svc, "bob", "pass", domain.RoleEmployee)
	mustCreate(t, svc, "Bob", "pass", domain.RoleEmployee)
}

// A concurrent writer can take the username between the pre-check and the
// insert; the unique index then rejects the write.
func TestUserService_CreateUser_LateDuplicateIsConflict(t *testing.T) {
	svc, users, _ := newTestUserService()
	users.createErr = domain.ErrUserExists

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "race", Password: "pw", Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserExists conflict, got %v", err)
	}
}

func TestUserService_UpdateUser_LateDuplicateIsConflict(t *testing.T) {
	svc, users, _ := newTestUserService()
	u := mustCreate(t, svc, "hank", "pw", domain.RoleEmployee)
	users.updateErr = domain.ErrUserExists

	_, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID: u.ID, Username: "taken", Active: boolPtr(true), Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserExists conflict, got %v", err)
	}
}

func TestUserService_CreateUser_RepositoryReturnsNothing(t *testing.T) {
	svc, users, _ := newTestUserService()
	users.createNil = true

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "carol", Password: "pw", Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, domain.ErrInvalidUserData) || !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrInvalidUserData, got %v", err)
	}
}

func TestUserService_CreateUser_StorageFaultPropagates(t *testing.T) {
	svc, users, _ := newTestUserService()
	users.findErr = errStorage

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "carol", Password: "pw", Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
	var de *domain.Error
	if errors.As(err, &de) {
		t.Fatalf("storage fault must not be classified as a domain error")
	}
}

func TestUserService_UpdateUser_Validation(t *testing.T) {
	svc, _, _ := newTestUserService()
	u := mustCreate(t, svc, "dave", "pw", domain.RoleEmployee)

	cases := map[string]ports.UpdateUserInput{
		"missing id":       {Username: "dave", Active: boolPtr(true), Roles: []string{domain.RoleEmployee}},
		"missing username": {ID: u.ID, Active: boolPtr(true), Roles: []string{domain.RoleEmployee}},
		"missing active":   {ID: u.ID, Username: "dave", Roles: []string{domain.RoleEmployee}},
		"no roles":         {ID: u.ID, Username: "dave", Active: boolPtr(false)},
	}
	for name, in := range cases {
		if _, err := svc.UpdateUser(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("%s: expected ErrMissingFields, got %v", name, err)
		}
	}
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID: "000000000000000000000099", Username: "ghost", Active: boolPtr(true), Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateUser_UsernameOwnedByAnother(t *testing.T) {
	svc, _, _ := newTestUserService()
	mustCreate(t, svc, "erin", "pw", domain.RoleEmployee)
	frank := mustCreate(t, svc, "frank", "pw", domain.RoleEmployee)

	_, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID: frank.ID, Username: "erin", Active: boolPtr(true), Roles: []string{domain.RoleEmployee},
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_UpdateUser_KeepOwnUsername(t *testing.T) {
	svc, users, _ := newTestUserService()
	g := mustCreate(t, svc, "gina", "pw", domain.RoleEmployee)
	oldHash := users.byID[g.ID].PasswordHash

	updated, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID: g.ID, Username: "gina", Active: boolPtr(false), Roles: []string{domain.RoleManager, domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active || len(updated.Roles) != 2 || updated.Roles[1] != domain.RoleAdmin {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if users.byID[g.ID].PasswordHash != oldHash {
		t.Fatalf("password hash changed without a new password")
	}
}

func TestUserService_PasswordRoundTrip(t *testing.T) {
	svc, users, _ := newTestUserService()
	h := mustCreate(t, svc, "hank", "first-secret", domain.RoleEmployee)

	if err := bcrypt.CompareHashAndPassword([]byte(users.byID[h.ID].PasswordHash), []byte("first-secret")); err != nil {
		t.Fatalf("initial password does not verify: %v", err)
	}

	_, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID: h.ID, Username: "hank", Active: boolPtr(true), Roles: []string{domain.RoleEmployee}, Password: "second-secret",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := []byte(users.byID[h.ID].PasswordHash)
	if bcrypt.CompareHashAndPassword(stored, []byte("first-secret")) == nil {
		t.Fatalf("old password still verifies")
	}
	if err := bcrypt.CompareHashAndPassword(stored, []byte("second-secret")); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestUserService_DeleteUser_RequiresID(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.DeleteUser(context.Background(), ""); !errors.Is(err, domain.ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.DeleteUser(context.Background(), "000000000000000000000042"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteUser_BlockedByNotes(t *testing.T) {
	svc, users, notes := newTestUserService()
	ivy := mustCreate(t, svc, "ivy", "pw", domain.RoleEmployee)
	note, _ := notes.Create(context.Background(), &domain.Note{UserID: ivy.ID, Title: "fix laptop", Text: "screen"})

	_, err := svc.DeleteUser(context.Background(), ivy.ID)
	if !errors.Is(err, domain.ErrUserHasNotes) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserHasNotes, got %v", err)
	}
	if _, ok := users.byID[ivy.ID]; !ok {
		t.Fatalf("user deleted despite assigned notes")
	}

	if err := notes.Delete(context.Background(), note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	deleted, err := svc.DeleteUser(context.Background(), ivy.ID)
	if err != nil {
		t.Fatalf("delete after notes removed: %v", err)
	}
	if deleted.Username != "ivy" || deleted.ID != ivy.ID {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}
	if deleted.PasswordHash != "" {
		t.Fatalf("deleted user leaks password hash")
	}

	if _, err := svc.ListUsers(context.Background()); !errors.Is(err, domain.ErrNoUsers) {
		t.Fatalf("expected no users after delete, got %v", err)
	}
}

func TestUserService_DeleteUser_NoteLookupFails(t *testing.T) {
	svc, users, notes := newTestUserService()
	u := mustCreate(t, svc, "jack", "pw", domain.RoleEmployee)
	notes.countErr = errStorage

	if _, err := svc.DeleteUser(context.Background(), u.ID); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(users.deleted) != 0 {
		t.Fatalf("user deleted despite failed note lookup")
	}
}
