package domain

import (
	"regexp"
	"time"
)

// Role determines which operations the policy engine allows an actor.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// User models a portal account as persisted in the user store.
type User struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullname"`
	Username      string    `json:"username"`
	IDNumber      string    `json:"id_number"`
	AccountNumber string    `json:"account_number"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to a request after token
// validation. Role and AccountNumber are re-resolved from the user store on
// every request, so a role change takes effect before the token expires.
type Actor struct {
	ID            string
	Username      string
	Role          Role
	AccountNumber string
	TokenID       string
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	idNumberRe = regexp.MustCompile(`^[0-9]{13}$`)
	accountRe  = regexp.MustCompile(`^[0-9]{9,12}$`)
)

// ValidateUser checks the structural rules for a user record and returns a
// *ValidationError naming the first failing field.
func ValidateUser(u *User) error {
	if u.FullName == "" {
		return &ValidationError{Field: "fullname", Message: "is required"}
	}
	if !usernameRe.MatchString(u.Username) {
		return &ValidationError{Field: "username", Message: "must contain only letters, digits and underscores"}
	}
	if !idNumberRe.MatchString(u.IDNumber) {
		return &ValidationError{Field: "id_number", Message: "must be a 13 digit number"}
	}
	if !accountRe.MatchString(u.AccountNumber) {
		return &ValidationError{Field: "account_number", Message: "must be a 9 to 12 digit number"}
	}
	if !ValidRole(u.Role) {
		return &ValidationError{Field: "role", Message: "is not a recognised role"}
	}
	return nil
}
