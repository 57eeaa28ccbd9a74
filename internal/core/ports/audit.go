package ports

import (
	"context"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// AuditRepository appends entries to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
