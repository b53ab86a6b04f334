package domain

import (
	"math"
	"regexp"
	"time"
)

// PaymentStatus represents the verification lifecycle state of a payment.
// It is a single three-valued tag: a payment is pending, or it has been
// decided one way exactly once.
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusVerified PaymentStatus = "verified"
	StatusDenied   PaymentStatus = "denied"
)

// validTransitions defines the allowed state machine transitions. Both
// verified and denied are terminal.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	StatusPending: {StatusVerified, StatusDenied},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s PaymentStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// MaxPaymentAmount is the upper bound on a single payment.
const MaxPaymentAmount = 10_000_000

// Closed enumerations for payment fields.
const (
	CurrencyRand  = "Rand"
	ProviderSwift = "Swift"
)

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c string) bool { return c == CurrencyRand }

// ValidProvider reports whether p is a supported payment provider.
func ValidProvider(p string) bool { return p == ProviderSwift }

var paymentCodeRe = regexp.MustCompile(`^[A-Z0-9]{8,12}$`)

// Payment is the unit this subsystem protects. SenderAccountNumber is always
// stamped from the creating actor, never taken from client input.
type Payment struct {
	ID                     string        `json:"id"`
	Amount                 float64       `json:"amount"`
	Currency               string        `json:"currency"`
	Provider               string        `json:"provider"`
	SenderIDNumber         string        `json:"sender_id_number"`
	SenderAccountNumber    string        `json:"sender_account_number"`
	RecipientAccountNumber string        `json:"recipient_account_number"`
	PaymentCode            string        `json:"payment_code"`
	Status                 PaymentStatus `json:"status"`
	VerifiedBy             string        `json:"verified_by,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
	DecidedAt              *time.Time    `json:"decided_at,omitempty"`
}

// Validate checks the structural rules for a payment and returns a
// *ValidationError naming the first failing field.
func (p *Payment) Validate() error {
	// NaN compares false against every bound, so it needs its own check.
	if math.IsNaN(p.Amount) || p.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if p.Amount > MaxPaymentAmount {
		return &ValidationError{Field: "amount", Message: "exceeds the maximum allowed amount"}
	}
	if !ValidCurrency(p.Currency) {
		return &ValidationError{Field: "currency", Message: "is not a supported currency"}
	}
	if !ValidProvider(p.Provider) {
		return &ValidationError{Field: "provider", Message: "is not a supported provider"}
	}
	if !idNumberRe.MatchString(p.SenderIDNumber) {
		return &ValidationError{Field: "sender_id_number", Message: "must be a 13 digit number"}
	}
	if !accountRe.MatchString(p.SenderAccountNumber) {
		return &ValidationError{Field: "sender_account_number", Message: "must be a 9 to 12 digit number"}
	}
	if !accountRe.MatchString(p.RecipientAccountNumber) {
		return &ValidationError{Field: "recipient_account_number", Message: "must be a 9 to 12 digit number"}
	}
	if !paymentCodeRe.MatchString(p.PaymentCode) {
		return &ValidationError{Field: "payment_code", Message: "must be 8 to 12 uppercase letters or digits"}
	}
	return nil
}

// AuditEntry records a single lifecycle action on a payment for the audit
// trail collection.
type AuditEntry struct {
	PaymentID string    `json:"payment_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit actions recorded by the lifecycle manager.
const (
	AuditActionCreated  = "created"
	AuditActionUpdated  = "updated"
	AuditActionDeleted  = "deleted"
	AuditActionVerified = "verified"
	AuditActionDenied   = "denied"
)
