package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/api/middleware"
	"github.com/paysecure/payment-portal/internal/core/domain"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error

	revokedToken string
}

func (s *stubAuthService) Login(_ context.Context, username, accountNumber, password string) (string, *domain.User, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) Logout(_ context.Context, rawToken string) error {
	if s.err != nil {
		return s.err
	}
	s.revokedToken = rawToken
	return nil
}

func authRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		token: "signed-token",
		user: &domain.User{
			Username:      "alice",
			Role:          domain.RoleCustomer,
			IDNumber:      "9001015009087",
			AccountNumber: "100200300",
		},
	}
	h := NewAuthHandler(svc)

	c, rec := authRequest(t, `{"username":"alice","account_number":"100200300","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" || resp.Username != "alice" || resp.Role != "customer" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_ValidationRejects(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"account_number":"100200300","password":"x"}`},
		{"missing password", `{"username":"alice","account_number":"100200300"}`},
		{"non-numeric account", `{"username":"alice","account_number":"acct-1","password":"x"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := authRequest(t, tc.body)
			err := h.Login(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})
	c, _ := authRequest(t, `{"username":"alice","account_number":"100200300","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyToken, "signed-token")

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if svc.revokedToken != "signed-token" {
		t.Fatalf("revoked token = %q", svc.revokedToken)
	}
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), httptest.NewRecorder())

	err := h.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
