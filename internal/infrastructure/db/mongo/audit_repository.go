package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/technotes/technotes-api/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

// AuditRepository appends entries to the audit_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":         entry.ID,
		"action":      string(entry.Action),
		"subject_id":  entry.SubjectID,
		"subject":     entry.Subject,
		"actor":       entry.Actor,
		"occurred_at": entry.OccurredAt.UTC(),
	}
	if entry.RequestID != "" {
		doc["request_id"] = entry.RequestID
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
