package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/technotes/technotes-api/internal/core/domain"
)

func renderError(t *testing.T, method string, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if method == http.MethodHead {
		return rec.Code, ""
	}
	var body map[string]string
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	return rec.Code, body["message"]
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrMissingFields, http.StatusBadRequest, "Please fill in all fields"},
		{domain.ErrMissingFields.WithDetail("roles is required"), http.StatusBadRequest, "Please fill in all fields"},
		{domain.ErrNoUsers, http.StatusBadRequest, "No users found"},
		{domain.ErrUserNotFound, http.StatusBadRequest, "User not found"},
		{domain.ErrInvalidUserData, http.StatusBadRequest, "Invalid user data"},
		{domain.ErrUserExists, http.StatusConflict, "Username already exists"},
		{domain.ErrUserHasNotes, http.StatusConflict, "User has assigned notes"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Unauthorized"},
		{domain.ErrAccessForbidden, http.StatusForbidden, "Forbidden"},
		{fmt.Errorf("update user: %w", domain.ErrUserExists), http.StatusConflict, "Username already exists"},
	}

	for _, tc := range cases {
		code, msg := renderError(t, http.MethodPost, tc.err)
		if code != tc.code || msg != tc.msg {
			t.Fatalf("%v: expected %d %q, got %d %q", tc.err, tc.code, tc.msg, code, msg)
		}
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	code, msg := renderError(t, http.MethodGet, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "Internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, http.MethodGet, echo.NewHTTPError(http.StatusTooManyRequests, "slow down"))
	if code != http.StatusTooManyRequests || msg != "slow down" {
		t.Fatalf("unexpected response %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	code, _ := renderError(t, http.MethodHead, domain.ErrNoUsers)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
