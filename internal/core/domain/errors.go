package domain

import "errors"

// Authentication failures. All of these surface to the client as a uniform
// "not authenticated" response; the specific cause is only logged.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is not valid")
)

// Authorization and lifecycle failures.
var (
	// ErrForbidden is returned when the actor's role does not permit the
	// requested operation.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotOwner is returned when a customer acts on a payment belonging to
	// another account. The transport layer reports it exactly like
	// ErrPaymentNotFound so record existence is not leaked.
	ErrNotOwner = errors.New("payment not owned by actor")
	// ErrPaymentNotPending is returned when a mutation or transition targets
	// a payment that has already been decided, including the case where a
	// concurrent transition won the conditional update.
	ErrPaymentNotPending = errors.New("payment is not pending")
	// ErrAdminImmutable is returned when user management targets an admin
	// record.
	ErrAdminImmutable = errors.New("admin accounts cannot be modified")
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrUserExists      = errors.New("username or account number already exists")
)

// ValidationError reports the first payment or user field that failed
// structural validation. Unlike the sentinel errors above it carries the
// failing field so the caller can correct input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}
