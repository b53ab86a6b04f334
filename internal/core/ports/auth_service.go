package ports

import (
	"context"
	"time"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// TokenService issues and validates signed session tokens. Validation is
// stateless except for the revocation denylist lookup.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Validate verifies signature and expiry and returns the actor carried
	// in the signed claims. Every failure mode maps to
	// domain.ErrTokenInvalid.
	Validate(ctx context.Context, raw string) (*domain.Actor, error)
	// Revoke denylists the token for the remainder of its lifetime.
	Revoke(ctx context.Context, raw string) error
}

// TokenDenylist records revoked token identifiers until their natural
// expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements credential verification and session issuance.
type AuthService interface {
	Login(ctx context.Context, username, accountNumber, password string) (string, *domain.User, error)
	Logout(ctx context.Context, rawToken string) error
}
