package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/api/middleware"
	"github.com/paysecure/payment-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username      string `json:"username"       validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,numeric"`
	Password      string `json:"password"       validate:"required"`
}

type loginResponse struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	IDNumber      string `json:"id_number"`
	AccountNumber string `json:"account_number"`
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.AccountNumber, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:         token,
		Username:      user.Username,
		Role:          string(user.Role),
		IDNumber:      user.IDNumber,
		AccountNumber: user.AccountNumber,
	})
}

// Logout revokes the presented session token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "token revoked"
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, _ := c.Get(middleware.ContextKeyToken).(string)
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	if err := h.authService.Logout(c.Request().Context(), raw); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
