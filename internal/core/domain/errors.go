package domain

import "errors"

// Error kinds. Every user-facing error wraps exactly one of these so the
// transport layer can classify it with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a classified domain error with a short human-readable message.
type Error struct {
	kind   error
	msg    string
	detail string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	if e.detail != "" {
		return e.msg + ": " + e.detail
	}
	return e.msg
}

// Message is the text shown to API clients.
func (e *Error) Message() string { return e.msg }

// Detail carries optional diagnostic text, e.g. validator output.
func (e *Error) Detail() string { return e.detail }

func (e *Error) Unwrap() error { return e.kind }

// Is matches another *Error with the same kind and message, so copies made
// by WithDetail still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.msg == e.msg
}

// WithDetail returns a copy of e carrying detail.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{kind: e.kind, msg: e.msg, detail: detail}
}

var (
	ErrMissingFields   = newError(ErrInvalidInput, "Please fill in all fields")
	ErrUserIDRequired  = newError(ErrInvalidInput, "User ID is required")
	ErrNoUsers         = newError(ErrNotFound, "No users found")
	ErrUserNotFound    = newError(ErrNotFound, "User not found")
	ErrUserExists      = newError(ErrConflict, "Username already exists")
	ErrUserHasNotes    = newError(ErrConflict, "User has assigned notes")
	ErrInvalidUserData = newError(ErrPersistence, "Invalid user data")

	ErrAllFieldsRequired = newError(ErrInvalidInput, "All fields are required")
	ErrNoteIDRequired    = newError(ErrInvalidInput, "Note ID required")
	ErrNoNotes           = newError(ErrNotFound, "No notes found")
	ErrNoteNotFound      = newError(ErrNotFound, "Note not found")
	ErrDuplicateNote     = newError(ErrConflict, "Duplicate note title")
	ErrInvalidNoteData   = newError(ErrPersistence, "Invalid note data received")

	ErrInvalidCredentials = newError(ErrUnauthorized, "Unauthorized")
	ErrAccessForbidden    = newError(ErrForbidden, "Forbidden")
)
