package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

func invokeRBAC(t *testing.T, mw echo.MiddlewareFunc, actor *domain.Actor) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ContextKeyActor, actor)
	}
	if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name    string
		allowed []domain.Role
		actor   *domain.Actor
		want    int
	}{
		{
			name:    "allowed role",
			allowed: []domain.Role{domain.RoleCustomer},
			actor:   &domain.Actor{ID: "c1", Role: domain.RoleCustomer},
			want:    http.StatusOK,
		},
		{
			name:    "role not in set",
			allowed: []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
			actor:   &domain.Actor{ID: "c1", Role: domain.RoleCustomer},
			want:    http.StatusForbidden,
		},
		{
			name:    "admin not granted customer routes",
			allowed: []domain.Role{domain.RoleCustomer},
			actor:   &domain.Actor{ID: "a1", Role: domain.RoleAdmin},
			want:    http.StatusForbidden,
		},
		{
			name:    "no actor on context",
			allowed: []domain.Role{domain.RoleCustomer},
			actor:   nil,
			want:    http.StatusUnauthorized,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := invokeRBAC(t, RBAC(tc.allowed...), tc.actor)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
