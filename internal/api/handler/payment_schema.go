package handler

import (
	"time"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// errorEnvelope is the standard error body returned on all 4xx/5xx
// responses. Declared here for the swagger annotations.
type errorEnvelope struct {
	Error string `json:"error"`
}

type createPaymentRequest struct {
	Amount                 float64 `json:"amount"                   validate:"required,gt=0"`
	Currency               string  `json:"currency"                 validate:"required,oneof=Rand"`
	Provider               string  `json:"provider"                 validate:"required,oneof=Swift"`
	SenderIDNumber         string  `json:"sender_id_number"         validate:"required,len=13,numeric"`
	RecipientAccountNumber string  `json:"recipient_account_number" validate:"required,min=9,max=12,numeric"`
	PaymentCode            string  `json:"payment_code"             validate:"required,min=8,max=12,alphanum"`
}

// updatePaymentRequest carries a partial update; absent fields are left
// unchanged.
type updatePaymentRequest struct {
	Amount                 *float64 `json:"amount,omitempty"                   validate:"omitempty,gt=0"`
	Currency               *string  `json:"currency,omitempty"                 validate:"omitempty,oneof=Rand"`
	Provider               *string  `json:"provider,omitempty"                 validate:"omitempty,oneof=Swift"`
	SenderIDNumber         *string  `json:"sender_id_number,omitempty"         validate:"omitempty,len=13,numeric"`
	RecipientAccountNumber *string  `json:"recipient_account_number,omitempty" validate:"omitempty,min=9,max=12,numeric"`
	PaymentCode            *string  `json:"payment_code,omitempty"             validate:"omitempty,min=8,max=12,alphanum"`
}

type paymentResponse struct {
	ID                     string     `json:"id"`
	Amount                 float64    `json:"amount"`
	Currency               string     `json:"currency"`
	Provider               string     `json:"provider"`
	SenderIDNumber         string     `json:"sender_id_number"`
	SenderAccountNumber    string     `json:"sender_account_number"`
	RecipientAccountNumber string     `json:"recipient_account_number"`
	PaymentCode            string     `json:"payment_code"`
	Status                 string     `json:"status"`
	VerifiedBy             string     `json:"verified_by,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	DecidedAt              *time.Time `json:"decided_at,omitempty"`
}

type listPaymentsResponse struct {
	Data []paymentResponse `json:"data"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:                     p.ID,
		Amount:                 p.Amount,
		Currency:               p.Currency,
		Provider:               p.Provider,
		SenderIDNumber:         p.SenderIDNumber,
		SenderAccountNumber:    p.SenderAccountNumber,
		RecipientAccountNumber: p.RecipientAccountNumber,
		PaymentCode:            p.PaymentCode,
		Status:                 string(p.Status),
		VerifiedBy:             p.VerifiedBy,
		CreatedAt:              p.CreatedAt,
		DecidedAt:              p.DecidedAt,
	}
}

func toListPaymentsResponse(payments []*domain.Payment) listPaymentsResponse {
	items := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}
	return listPaymentsResponse{Data: items}
}
