package domain

import (
	"math"
	"testing"
)

func validPayment() *Payment {
	return &Payment{
		Amount:                 500.00,
		Currency:               CurrencyRand,
		Provider:               ProviderSwift,
		SenderIDNumber:         "9001015009087",
		SenderAccountNumber:    "100200300",
		RecipientAccountNumber: "900800700",
		PaymentCode:            "ABC12345",
		Status:                 StatusPending,
	}
}

func TestPaymentStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{StatusPending, StatusVerified, true},
		{StatusPending, StatusDenied, true},
		{StatusPending, StatusPending, false},
		{StatusVerified, StatusDenied, false},
		{StatusVerified, StatusPending, false},
		{StatusDenied, StatusVerified, false},
		{StatusDenied, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Errorf("pending must not be terminal")
	}
	if !StatusVerified.IsTerminal() || !StatusDenied.IsTerminal() {
		t.Errorf("verified and denied must be terminal")
	}
}

func TestPayment_Validate_OK(t *testing.T) {
	if err := validPayment().Validate(); err != nil {
		t.Fatalf("valid payment rejected: %v", err)
	}
}

func TestPayment_Validate_FirstFailingField(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(p *Payment)
		wantField string
	}{
		{"zero amount", func(p *Payment) { p.Amount = 0 }, "amount"},
		{"negative amount", func(p *Payment) { p.Amount = -10 }, "amount"},
		{"amount over maximum", func(p *Payment) { p.Amount = MaxPaymentAmount + 1 }, "amount"},
		{"NaN amount", func(p *Payment) { p.Amount = math.NaN() }, "amount"},
		{"positive infinite amount", func(p *Payment) { p.Amount = math.Inf(1) }, "amount"},
		{"negative infinite amount", func(p *Payment) { p.Amount = math.Inf(-1) }, "amount"},
		{"unknown currency", func(p *Payment) { p.Currency = "USD" }, "currency"},
		{"unknown provider", func(p *Payment) { p.Provider = "Visa" }, "provider"},
		{"short id number", func(p *Payment) { p.SenderIDNumber = "12345" }, "sender_id_number"},
		{"short sender account", func(p *Payment) { p.SenderAccountNumber = "12345678" }, "sender_account_number"},
		{"long recipient account", func(p *Payment) { p.RecipientAccountNumber = "1234567890123" }, "recipient_account_number"},
		{"lowercase payment code", func(p *Payment) { p.PaymentCode = "abc12345" }, "payment_code"},
		{"short payment code", func(p *Payment) { p.PaymentCode = "AB12" }, "payment_code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayment()
			tc.mutate(p)
			err := p.Validate()
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("failing field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	u := &User{
		FullName:      "Alice Smith",
		Username:      "alice_s",
		IDNumber:      "9001015009087",
		AccountNumber: "100200300",
		Role:          RoleCustomer,
	}
	if err := ValidateUser(u); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	u.Username = "alice s"
	err := ValidateUser(u)
	ve, ok := err.(*ValidationError)
	if !ok || ve.Field != "username" {
		t.Fatalf("expected username validation error, got %v", err)
	}
}
