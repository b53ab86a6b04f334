package ports

import (
	"context"
	"time"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments. Every
// mutating method that requires the pending state expresses that requirement
// as a single conditional write (identifier + expected status) so a
// concurrent transition cannot interleave between a read and an update.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	// ListPending returns pending payments ordered newest-first.
	ListPending(ctx context.Context) ([]*domain.Payment, error)
	// ListByAccount returns all payments sent from the given account,
	// ordered newest-first.
	ListByAccount(ctx context.Context, accountNumber string) ([]*domain.Payment, error)
	// ReplacePending overwrites the mutable fields of p only while the
	// stored document is still pending. Returns domain.ErrPaymentNotPending
	// when the conditional write matched nothing.
	ReplacePending(ctx context.Context, p *domain.Payment) error
	// DeletePending removes the payment only while it is still pending.
	DeletePending(ctx context.Context, id string) error
	// Decide atomically moves a pending payment to outcome, stamping the
	// deciding actor and time, and returns the updated document. Returns
	// domain.ErrPaymentNotPending when the payment was already decided.
	Decide(ctx context.Context, id string, outcome domain.PaymentStatus, actorID string, decidedAt time.Time) (*domain.Payment, error)
}
