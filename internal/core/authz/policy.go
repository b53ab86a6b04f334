// Package authz contains the declarative authorization policy for the
// payment portal. Every state-changing handler path funnels through Decide,
// which maps (actor role, operation, resource conditions) to an allow or a
// deny with a distinguishable reason. Decide is pure: no I/O, no clock, same
// inputs always produce the same decision.
package authz

import "github.com/paysecure/payment-portal/internal/core/domain"

// Operation identifies a gated action on the portal.
type Operation string

const (
	OpViewOwnPayments         Operation = "view_own_payments"
	OpViewPendingQueue        Operation = "view_pending_queue"
	OpCreatePayment           Operation = "create_payment"
	OpEditOwnPendingPayment   Operation = "edit_own_pending_payment"
	OpDeleteOwnPendingPayment Operation = "delete_own_pending_payment"
	OpVerifyPayment           Operation = "verify_payment"
	OpDenyPayment             Operation = "deny_payment"
	OpListUsers               Operation = "list_users"
	OpCreateUser              Operation = "create_user"
	OpUpdateUser              Operation = "update_user"
	OpDeleteUser              Operation = "delete_user"
)

// DenyReason distinguishes why a decision denied, for logging and metrics.
// Reasons are internal; the transport layer never sends them to the client.
type DenyReason string

const (
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyNotResourceOwner DenyReason = "not_resource_owner"
	DenyInvalidState     DenyReason = "invalid_state_for_operation"
)

// Decision is the result of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// ResourceCheck carries the per-resource conditions a decision may depend
// on. OwnerMatch is whether the payment's sender account equals the actor's
// account; Status is the payment's current lifecycle state. Operations that
// target no resource ignore both fields.
type ResourceCheck struct {
	OwnerMatch bool
	Status     domain.PaymentStatus
}

// rolePolicy is the single source of truth for role-to-operation grants.
// Admin inherits everything the employee role can do plus user management;
// the inheritance is spelled out rather than computed so the table reads as
// the audit document it is.
var rolePolicy = map[domain.Role]map[Operation]struct{}{
	domain.RoleCustomer: {
		OpViewOwnPayments:         {},
		OpCreatePayment:           {},
		OpEditOwnPendingPayment:   {},
		OpDeleteOwnPendingPayment: {},
	},
	domain.RoleEmployee: {
		OpViewPendingQueue: {},
		OpVerifyPayment:    {},
		OpDenyPayment:      {},
	},
	domain.RoleAdmin: {
		OpViewPendingQueue: {},
		OpVerifyPayment:    {},
		OpDenyPayment:      {},
		OpListUsers:        {},
		OpCreateUser:       {},
		OpUpdateUser:       {},
		OpDeleteUser:       {},
	},
}

// ownerBound lists the operations that additionally require the actor to own
// the target payment.
var ownerBound = map[Operation]struct{}{
	OpViewOwnPayments:         {},
	OpEditOwnPendingPayment:   {},
	OpDeleteOwnPendingPayment: {},
}

// pendingBound lists the operations that additionally require the target
// payment to still be pending.
var pendingBound = map[Operation]struct{}{
	OpEditOwnPendingPayment:   {},
	OpDeleteOwnPendingPayment: {},
	OpVerifyPayment:           {},
	OpDenyPayment:             {},
}

// Decide evaluates the policy table. Checks run role first, then ownership,
// then lifecycle state, so the deny reason is deterministic when several
// conditions fail at once.
func Decide(role domain.Role, op Operation, check ResourceCheck) Decision {
	ops, ok := rolePolicy[role]
	if !ok {
		return Decision{Reason: DenyInsufficientRole}
	}
	if _, ok := ops[op]; !ok {
		return Decision{Reason: DenyInsufficientRole}
	}
	if _, ok := ownerBound[op]; ok && !check.OwnerMatch {
		return Decision{Reason: DenyNotResourceOwner}
	}
	if _, ok := pendingBound[op]; ok && check.Status != domain.StatusPending {
		return Decision{Reason: DenyInvalidState}
	}
	return Decision{Allowed: true}
}
