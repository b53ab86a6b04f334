package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/api/middleware"
	"github.com/paysecure/payment-portal/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call:
//   - presence of the actor proves the middleware ran.
//   - a customer without an account number is structurally authenticated but
//     operationally unusable, so reject with 401.
//
// Both failures return the same body as every other authentication failure;
// the cause never reaches the client.
func ctxActor(c echo.Context) (*domain.Actor, error) {
	actor, _ := c.Get(middleware.ContextKeyActor).(*domain.Actor)
	if actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	if actor.Role == domain.RoleCustomer && actor.AccountNumber == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return actor, nil
}
