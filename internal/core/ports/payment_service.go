package ports

import (
	"context"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// CreatePaymentInput carries the client-supplied fields of a new payment.
// The sender account number is deliberately absent: it is stamped from the
// authenticated actor.
type CreatePaymentInput struct {
	Amount                 float64
	Currency               string
	Provider               string
	SenderIDNumber         string
	RecipientAccountNumber string
	PaymentCode            string
}

// PaymentPatch carries a partial update; nil fields are left unchanged.
type PaymentPatch struct {
	Amount                 *float64
	Currency               *string
	Provider               *string
	SenderIDNumber         *string
	RecipientAccountNumber *string
	PaymentCode            *string
}

// PaymentService owns the payment lifecycle state machine. Every method
// consults the policy engine with the calling actor before touching storage.
type PaymentService interface {
	Create(ctx context.Context, actor *domain.Actor, in CreatePaymentInput) (*domain.Payment, error)
	ListOwn(ctx context.Context, actor *domain.Actor) ([]*domain.Payment, error)
	ListPending(ctx context.Context, actor *domain.Actor) ([]*domain.Payment, error)
	Edit(ctx context.Context, actor *domain.Actor, paymentID string, patch PaymentPatch) (*domain.Payment, error)
	Delete(ctx context.Context, actor *domain.Actor, paymentID string) error
	// Transition moves a pending payment to verified or denied, exactly
	// once. A second attempt fails with domain.ErrPaymentNotPending rather
	// than silently succeeding.
	Transition(ctx context.Context, actor *domain.Actor, paymentID string, outcome domain.PaymentStatus) (*domain.Payment, error)
}
