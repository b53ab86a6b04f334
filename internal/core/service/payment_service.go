package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/paysecure/payment-portal/internal/core/authz"
	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/metrics"
)

// PaymentService owns the payment lifecycle state machine: creation into the
// pending state, owner-scoped mutation while pending, and the exactly-once
// transition to a terminal state. Policy decisions come from authz.Decide;
// the pending-state guard is additionally enforced by conditional writes at
// the repository so concurrent transitions cannot both succeed.
type PaymentService struct {
	repo   ports.PaymentRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, audit ports.AuditRecorder, logger zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, audit: audit, logger: logger}
}

// deny converts a policy denial into the matching domain error, counting it
// for observability. The not-owner case is reported upstream exactly like a
// missing payment so record existence does not leak across accounts.
func (s *PaymentService) deny(actor *domain.Actor, op authz.Operation, d authz.Decision) error {
	metrics.PolicyDenialsTotal.WithLabelValues(string(d.Reason)).Inc()
	s.logger.Warn().
		Str("actor_id", actor.ID).
		Str("role", string(actor.Role)).
		Str("operation", string(op)).
		Str("reason", string(d.Reason)).
		Msg("operation denied")

	switch d.Reason {
	case authz.DenyNotResourceOwner:
		return domain.ErrNotOwner
	case authz.DenyInvalidState:
		return domain.ErrPaymentNotPending
	default:
		return domain.ErrForbidden
	}
}

// Create submits a new payment in the pending state. The sender account
// number is stamped from the actor, never from client input.
func (s *PaymentService) Create(ctx context.Context, actor *domain.Actor, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if d := authz.Decide(actor.Role, authz.OpCreatePayment, authz.ResourceCheck{}); !d.Allowed {
		return nil, s.deny(actor, authz.OpCreatePayment, d)
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		Amount:                 in.Amount,
		Currency:               in.Currency,
		Provider:               in.Provider,
		SenderIDNumber:         in.SenderIDNumber,
		SenderAccountNumber:    actor.AccountNumber,
		RecipientAccountNumber: in.RecipientAccountNumber,
		PaymentCode:            strings.ToUpper(strings.TrimSpace(in.PaymentCode)),
		Status:                 domain.StatusPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, payment); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert payment")
		return nil, err
	}

	metrics.PaymentsCreatedTotal.Inc()
	s.logger.Info().
		Str("payment_id", payment.ID).
		Str("sender_account_number", payment.SenderAccountNumber).
		Msg("payment submitted")
	s.record(payment.ID, domain.AuditActionCreated, actor.ID)

	return payment, nil
}

// ListOwn returns the actor's own payments, newest first.
func (s *PaymentService) ListOwn(ctx context.Context, actor *domain.Actor) ([]*domain.Payment, error) {
	check := authz.ResourceCheck{OwnerMatch: true}
	if d := authz.Decide(actor.Role, authz.OpViewOwnPayments, check); !d.Allowed {
		return nil, s.deny(actor, authz.OpViewOwnPayments, d)
	}
	return s.repo.ListByAccount(ctx, actor.AccountNumber)
}

// ListPending returns the operator triage queue, newest first.
func (s *PaymentService) ListPending(ctx context.Context, actor *domain.Actor) ([]*domain.Payment, error) {
	if d := authz.Decide(actor.Role, authz.OpViewPendingQueue, authz.ResourceCheck{}); !d.Allowed {
		return nil, s.deny(actor, authz.OpViewPendingQueue, d)
	}
	return s.repo.ListPending(ctx)
}

// Edit applies a partial update to one of the actor's pending payments.
func (s *PaymentService) Edit(ctx context.Context, actor *domain.Actor, paymentID string, patch ports.PaymentPatch) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	check := authz.ResourceCheck{
		OwnerMatch: payment.SenderAccountNumber == actor.AccountNumber,
		Status:     payment.Status,
	}
	if d := authz.Decide(actor.Role, authz.OpEditOwnPendingPayment, check); !d.Allowed {
		return nil, s.deny(actor, authz.OpEditOwnPendingPayment, d)
	}

	applyPatch(payment, patch)
	payment.UpdatedAt = time.Now().UTC()
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	// Conditional on the stored document still being pending; a transition
	// racing this edit loses exactly one side.
	if err := s.repo.ReplacePending(ctx, payment); err != nil {
		return nil, err
	}

	s.record(payment.ID, domain.AuditActionUpdated, actor.ID)
	return payment, nil
}

// Delete removes one of the actor's pending payments.
func (s *PaymentService) Delete(ctx context.Context, actor *domain.Actor, paymentID string) error {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}

	check := authz.ResourceCheck{
		OwnerMatch: payment.SenderAccountNumber == actor.AccountNumber,
		Status:     payment.Status,
	}
	if d := authz.Decide(actor.Role, authz.OpDeleteOwnPendingPayment, check); !d.Allowed {
		return s.deny(actor, authz.OpDeleteOwnPendingPayment, d)
	}

	if err := s.repo.DeletePending(ctx, paymentID); err != nil {
		return err
	}

	s.record(paymentID, domain.AuditActionDeleted, actor.ID)
	return nil
}

// Transition moves a pending payment to verified or denied and records the
// deciding actor. The guard is checked twice: once against the loaded
// document for a precise error, and again inside the conditional update so
// two concurrent decisions cannot both succeed.
func (s *PaymentService) Transition(ctx context.Context, actor *domain.Actor, paymentID string, outcome domain.PaymentStatus) (*domain.Payment, error) {
	op := authz.OpVerifyPayment
	if outcome == domain.StatusDenied {
		op = authz.OpDenyPayment
	} else if outcome != domain.StatusVerified {
		return nil, &domain.ValidationError{Field: "outcome", Message: "must be verified or denied"}
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(outcome) {
		return nil, domain.ErrPaymentNotPending
	}

	if d := authz.Decide(actor.Role, op, authz.ResourceCheck{Status: payment.Status}); !d.Allowed {
		return nil, s.deny(actor, op, d)
	}

	decided, err := s.repo.Decide(ctx, paymentID, outcome, actor.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.PaymentsDecidedTotal.WithLabelValues(string(outcome)).Inc()
	s.logger.Info().
		Str("payment_id", decided.ID).
		Str("outcome", string(outcome)).
		Str("decided_by", actor.ID).
		Msg("payment decided")

	action := domain.AuditActionVerified
	if outcome == domain.StatusDenied {
		action = domain.AuditActionDenied
	}
	s.record(decided.ID, action, actor.ID)

	return decided, nil
}

func (s *PaymentService) record(paymentID, action, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		PaymentID: paymentID,
		Action:    action,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
}

func applyPatch(p *domain.Payment, patch ports.PaymentPatch) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Provider != nil {
		p.Provider = *patch.Provider
	}
	if patch.SenderIDNumber != nil {
		p.SenderIDNumber = *patch.SenderIDNumber
	}
	if patch.RecipientAccountNumber != nil {
		p.RecipientAccountNumber = *patch.RecipientAccountNumber
	}
	if patch.PaymentCode != nil {
		p.PaymentCode = strings.ToUpper(strings.TrimSpace(*patch.PaymentCode))
	}
}
