package domain

import "time"

// AuditAction names a mutation recorded in the audit trail.
type AuditAction string

const (
	AuditUserCreated AuditAction = "user.created"
	AuditUserUpdated AuditAction = "user.updated"
	AuditUserDeleted AuditAction = "user.deleted"
	AuditNoteCreated AuditAction = "note.created"
	AuditNoteUpdated AuditAction = "note.updated"
	AuditNoteDeleted AuditAction = "note.deleted"
)

// AuditEntry records who changed which record, and when.
type AuditEntry struct {
	ID         string
	Action     AuditAction
	SubjectID  string
	Subject    string // username or note title at the time of the change
	Actor      string
	RequestID  string
	OccurredAt time.Time
}
