package authz

import (
	"testing"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

func TestDecide_RoleGrants(t *testing.T) {
	cases := []struct {
		role  domain.Role
		op    Operation
		check ResourceCheck
		allow bool
	}{
		{domain.RoleCustomer, OpViewOwnPayments, ResourceCheck{OwnerMatch: true}, true},
		{domain.RoleCustomer, OpCreatePayment, ResourceCheck{}, true},
		{domain.RoleCustomer, OpViewPendingQueue, ResourceCheck{}, false},
		{domain.RoleCustomer, OpVerifyPayment, ResourceCheck{Status: domain.StatusPending}, false},
		{domain.RoleCustomer, OpListUsers, ResourceCheck{}, false},

		{domain.RoleEmployee, OpViewPendingQueue, ResourceCheck{}, true},
		{domain.RoleEmployee, OpVerifyPayment, ResourceCheck{Status: domain.StatusPending}, true},
		{domain.RoleEmployee, OpDenyPayment, ResourceCheck{Status: domain.StatusPending}, true},
		{domain.RoleEmployee, OpCreatePayment, ResourceCheck{}, false},
		{domain.RoleEmployee, OpEditOwnPendingPayment, ResourceCheck{OwnerMatch: true, Status: domain.StatusPending}, false},
		{domain.RoleEmployee, OpListUsers, ResourceCheck{}, false},
		{domain.RoleEmployee, OpDeleteUser, ResourceCheck{}, false},

		{domain.RoleAdmin, OpVerifyPayment, ResourceCheck{Status: domain.StatusPending}, true},
		{domain.RoleAdmin, OpViewPendingQueue, ResourceCheck{}, true},
		{domain.RoleAdmin, OpListUsers, ResourceCheck{}, true},
		{domain.RoleAdmin, OpCreateUser, ResourceCheck{}, true},
		{domain.RoleAdmin, OpUpdateUser, ResourceCheck{}, true},
		{domain.RoleAdmin, OpDeleteUser, ResourceCheck{}, true},
		{domain.RoleAdmin, OpCreatePayment, ResourceCheck{}, false},
		{domain.RoleAdmin, OpViewOwnPayments, ResourceCheck{OwnerMatch: true}, false},
	}
	for _, tc := range cases {
		d := Decide(tc.role, tc.op, tc.check)
		if d.Allowed != tc.allow {
			t.Errorf("Decide(%s, %s) allowed = %v, want %v", tc.role, tc.op, d.Allowed, tc.allow)
		}
		if !d.Allowed && tc.allow == false && d.Reason == "" {
			t.Errorf("Decide(%s, %s) denied without a reason", tc.role, tc.op)
		}
	}
}

func TestDecide_UnknownRole(t *testing.T) {
	d := Decide(domain.Role("guest"), OpViewOwnPayments, ResourceCheck{OwnerMatch: true})
	if d.Allowed {
		t.Fatalf("unknown role must be denied")
	}
	if d.Reason != DenyInsufficientRole {
		t.Fatalf("reason = %s, want %s", d.Reason, DenyInsufficientRole)
	}
}

func TestDecide_OwnerCheck(t *testing.T) {
	d := Decide(domain.RoleCustomer, OpEditOwnPendingPayment, ResourceCheck{OwnerMatch: false, Status: domain.StatusPending})
	if d.Allowed || d.Reason != DenyNotResourceOwner {
		t.Fatalf("expected not-owner denial, got %+v", d)
	}

	d = Decide(domain.RoleCustomer, OpDeleteOwnPendingPayment, ResourceCheck{OwnerMatch: false, Status: domain.StatusVerified})
	if d.Reason != DenyNotResourceOwner {
		t.Fatalf("ownership must be checked before state, got %s", d.Reason)
	}
}

func TestDecide_StateCheck(t *testing.T) {
	for _, op := range []Operation{OpEditOwnPendingPayment, OpDeleteOwnPendingPayment} {
		d := Decide(domain.RoleCustomer, op, ResourceCheck{OwnerMatch: true, Status: domain.StatusVerified})
		if d.Allowed || d.Reason != DenyInvalidState {
			t.Errorf("%s on verified payment: got %+v, want invalid-state denial", op, d)
		}
	}
	for _, op := range []Operation{OpVerifyPayment, OpDenyPayment} {
		d := Decide(domain.RoleEmployee, op, ResourceCheck{Status: domain.StatusDenied})
		if d.Allowed || d.Reason != DenyInvalidState {
			t.Errorf("%s on denied payment: got %+v, want invalid-state denial", op, d)
		}
	}
}

func TestDecide_Pure(t *testing.T) {
	check := ResourceCheck{OwnerMatch: true, Status: domain.StatusPending}
	first := Decide(domain.RoleCustomer, OpEditOwnPendingPayment, check)
	for i := 0; i < 100; i++ {
		if Decide(domain.RoleCustomer, OpEditOwnPendingPayment, check) != first {
			t.Fatalf("Decide is not deterministic")
		}
	}
}
