package ports

import (
	"context"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// UserRepository defines persistence operations for portal accounts.
type UserRepository interface {
	// FindByID resolves a user by identifier. The auth middleware calls this
	// on every authenticated request to re-resolve the actor's current role.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByLogin resolves a user by the username and account number pair
	// presented at login.
	FindByLogin(ctx context.Context, username, accountNumber string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
