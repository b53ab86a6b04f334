package ports

import (
	"context"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// CreateUserInput carries the fields for the admin-only registration
// operation. Admin accounts are provisioned out of band, so Role may only be
// customer or employee.
type CreateUserInput struct {
	FullName      string
	Username      string
	IDNumber      string
	AccountNumber string
	Password      string
	Role          domain.Role
}

// UserPatch carries a partial update to a user record; nil fields are left
// unchanged.
type UserPatch struct {
	FullName      *string
	Username      *string
	IDNumber      *string
	AccountNumber *string
	Password      *string
	Role          *domain.Role
}

// UserService implements the admin-only user management operations. Admin
// records themselves are immutable through this interface.
type UserService interface {
	List(ctx context.Context, actor *domain.Actor) ([]*domain.User, error)
	Create(ctx context.Context, actor *domain.Actor, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.Actor, userID string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.Actor, userID string) error
}
