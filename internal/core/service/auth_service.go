package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/metrics"
)

// AuthService implements credential verification and session issuance.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the username, account number and password triple and issues
// a session token on success.
func (s *AuthService) Login(ctx context.Context, username, accountNumber, password string) (string, *domain.User, error) {
	if username == "" || accountNumber == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByLogin(ctx, username, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.tokens.Revoke(ctx, rawToken)
}
