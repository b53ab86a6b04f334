package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
)

// defaultTokenTTL bounds a session when no explicit lifetime is configured.
const defaultTokenTTL = 2 * time.Hour

// tokenClaims are the signed claims carried by a session token. The token
// never carries the password or any secret beyond these claims.
type tokenClaims struct {
	Username      string `json:"username"`
	Role          string `json:"role"`
	AccountNumber string `json:"account_number,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed session tokens. The server
// holds no session record; validation is a signature and expiry check plus a
// denylist lookup for explicitly revoked tokens.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
	denylist ports.TokenDenylist
}

func NewTokenService(secret string, tokenTTL time.Duration, denylist ports.TokenDenylist) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), tokenTTL: tokenTTL, denylist: denylist}
}

// Issue produces a signed token for the verified user. Expiry is fixed at
// issuance; there is no silent renewal.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Username:      user.Username,
		Role:          string(user.Role),
		AccountNumber: user.AccountNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the actor carried in
// the claims. Malformed, tampered, expired, and revoked tokens all collapse
// to domain.ErrTokenInvalid; the distinction matters for logs, not callers.
func (s *TokenService) Validate(ctx context.Context, raw string) (*domain.Actor, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if !domain.ValidRole(domain.Role(claims.Role)) {
		return nil, domain.ErrTokenInvalid
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("denylist check: %w", err)
		}
		if revoked {
			return nil, domain.ErrTokenInvalid
		}
	}

	return &domain.Actor{
		ID:            claims.Subject,
		Username:      claims.Username,
		Role:          domain.Role(claims.Role),
		AccountNumber: claims.AccountNumber,
		TokenID:       claims.ID,
	}, nil
}

// Revoke denylists a still-valid token until its natural expiry. Revoking an
// already-invalid token is a no-op from the caller's perspective.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	actor, err := s.Validate(ctx, raw)
	if err != nil {
		return err
	}
	if s.denylist == nil || actor.TokenID == "" {
		return nil
	}

	claims := &tokenClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return domain.ErrTokenInvalid
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, actor.TokenID, ttl)
}

// newTokenID returns a random token identifier used as the denylist key.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
