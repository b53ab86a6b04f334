package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

// RBAC is the coarse route-level gate: it rejects requests whose actor role
// is not in the allowed set before the handler runs. Fine-grained decisions
// (ownership, lifecycle state) stay with the policy engine in the services.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(ContextKeyActor).(*domain.Actor)
			if actor == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			if _, ok := allowed[actor.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
