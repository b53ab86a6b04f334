package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	ContextKeyActor = "actor"
	ContextKeyToken = "token"
)

// Auth validates the bearer token and injects the resolved actor into the
// request context. The actor's role and account number come from the user
// store, not from the token claims, so a role change applies on the next
// request even while the token is still unexpired. Every failure returns the
// same 401 body; the specific cause is never revealed to the client.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			actor, err := tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			user, err := users.FindByID(c.Request().Context(), actor.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			actor.Role = user.Role
			actor.AccountNumber = user.AccountNumber

			c.Set(ContextKeyActor, actor)
			c.Set(ContextKeyToken, parts[1])

			return next(c)
		}
	}
}
