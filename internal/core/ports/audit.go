package ports

import (
	"context"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// AuditRecorder accepts lifecycle audit entries for asynchronous
// persistence. Record must not block request handling.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditService processes dequeued audit entries.
type AuditService interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
