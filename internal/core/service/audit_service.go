package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/metrics"
)

// AuditService persists lifecycle audit entries dequeued by the dispatcher.
// Failures are counted and logged but never propagate back to the request
// that produced the entry.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).
			Str("payment_id", entry.PaymentID).
			Str("action", entry.Action).
			Msg("failed to persist audit entry")
		return err
	}
	metrics.AuditEventsTotal.WithLabelValues("ok").Inc()
	return nil
}
