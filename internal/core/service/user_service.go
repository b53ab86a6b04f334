package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/paysecure/payment-portal/internal/core/authz"
	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/metrics"
)

// UserService implements the admin-only user management operations. Admin
// records are immutable through this service: they can be neither updated
// nor deleted, and no operation can mint a new admin.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) deny(actor *domain.Actor, op authz.Operation, d authz.Decision) error {
	metrics.PolicyDenialsTotal.WithLabelValues(string(d.Reason)).Inc()
	s.logger.Warn().
		Str("actor_id", actor.ID).
		Str("role", string(actor.Role)).
		Str("operation", string(op)).
		Str("reason", string(d.Reason)).
		Msg("operation denied")
	return domain.ErrForbidden
}

func (s *UserService) List(ctx context.Context, actor *domain.Actor) ([]*domain.User, error) {
	if d := authz.Decide(actor.Role, authz.OpListUsers, authz.ResourceCheck{}); !d.Allowed {
		return nil, s.deny(actor, authz.OpListUsers, d)
	}
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, actor *domain.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if d := authz.Decide(actor.Role, authz.OpCreateUser, authz.ResourceCheck{}); !d.Allowed {
		return nil, s.deny(actor, authz.OpCreateUser, d)
	}
	if in.Role == domain.RoleAdmin {
		return nil, &domain.ValidationError{Field: "role", Message: "must be customer or employee"}
	}
	if in.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "is required"}
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:      in.FullName,
		Username:      in.Username,
		IDNumber:      in.IDNumber,
		AccountNumber: in.AccountNumber,
		Role:          in.Role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Str("created_by", actor.ID).
		Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.Actor, userID string, patch ports.UserPatch) (*domain.User, error) {
	if d := authz.Decide(actor.Role, authz.OpUpdateUser, authz.ResourceCheck{}); !d.Allowed {
		return nil, s.deny(actor, authz.OpUpdateUser, d)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return nil, domain.ErrAdminImmutable
	}
	if patch.Role != nil && *patch.Role == domain.RoleAdmin {
		return nil, &domain.ValidationError{Field: "role", Message: "must be customer or employee"}
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.IDNumber != nil {
		user.IDNumber = *patch.IDNumber
	}
	if patch.AccountNumber != nil {
		user.AccountNumber = *patch.AccountNumber
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("updated_by", actor.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Actor, userID string) error {
	if d := authz.Decide(actor.Role, authz.OpDeleteUser, authz.ResourceCheck{}); !d.Allowed {
		return s.deny(actor, authz.OpDeleteUser, d)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrAdminImmutable
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("deleted_by", actor.ID).Msg("user deleted")
	return nil
}
