package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

const collectionAudit = "payment_audit"

// AuditRepository persists lifecycle audit entries.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"payment_id":  entry.PaymentID,
		"action":      entry.Action,
		"actor_id":    entry.ActorID,
		"timestamp":   entry.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
