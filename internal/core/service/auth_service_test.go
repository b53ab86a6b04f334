package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	clone := cloneUser(u)
	if clone.ID == "" {
		clone.ID = u.Username
	}
	r.users[clone.ID] = clone
	return cloneUser(clone)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, username, accountNumber string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.AccountNumber == accountNumber {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.AccountNumber == user.AccountNumber {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{
		ID:            "u1",
		Username:      "alice",
		AccountNumber: "100200300",
		IDNumber:      "9001015009087",
		PasswordHash:  mustHash(t, "s3cret-pass"),
		Role:          domain.RoleCustomer,
	})
	tokens := NewTokenService("secret", time.Hour, newStubDenylist())
	svc := NewAuthService(repo, tokens)

	token, user, err := svc.Login(context.Background(), "alice", "100200300", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	actor, err := tokens.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if actor.Role != domain.RoleCustomer {
		t.Fatalf("token role = %s, want %s", actor.Role, domain.RoleCustomer)
	}
}

func TestAuthService_Login_WrongAccountNumber(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{
		ID:            "u1",
		Username:      "alice",
		AccountNumber: "100200300",
		PasswordHash:  mustHash(t, "s3cret-pass"),
		Role:          domain.RoleCustomer,
	})
	svc := NewAuthService(repo, NewTokenService("secret", time.Hour, nil))

	if _, _, err := svc.Login(context.Background(), "alice", "999999999", "s3cret-pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{
		ID:            "u1",
		Username:      "alice",
		AccountNumber: "100200300",
		PasswordHash:  mustHash(t, "goodpass"),
		Role:          domain.RoleCustomer,
	})
	svc := NewAuthService(repo, NewTokenService("secret", time.Hour, nil))

	if _, _, err := svc.Login(context.Background(), "alice", "100200300", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), NewTokenService("secret", time.Hour, nil))
	if _, _, err := svc.Login(context.Background(), "", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{
		ID:            "u1",
		Username:      "alice",
		AccountNumber: "100200300",
		PasswordHash:  mustHash(t, "s3cret-pass"),
		Role:          domain.RoleCustomer,
	})
	tokens := NewTokenService("secret", time.Hour, newStubDenylist())
	svc := NewAuthService(repo, tokens)

	token, _, err := svc.Login(context.Background(), "alice", "100200300", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := tokens.Validate(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected token to be revoked, got %v", err)
	}
}
