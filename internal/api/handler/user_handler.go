package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
)

// UserHandler handles the admin-only user management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	FullName      string `json:"fullname"       validate:"required"`
	Username      string `json:"username"       validate:"required"`
	IDNumber      string `json:"id_number"      validate:"required,len=13,numeric"`
	AccountNumber string `json:"account_number" validate:"required,min=9,max=12,numeric"`
	Password      string `json:"password"       validate:"required,min=8"`
	Role          string `json:"role"           validate:"required,oneof=customer employee"`
}

type updateUserRequest struct {
	FullName      *string `json:"fullname,omitempty"`
	Username      *string `json:"username,omitempty"`
	IDNumber      *string `json:"id_number,omitempty"       validate:"omitempty,len=13,numeric"`
	AccountNumber *string `json:"account_number,omitempty"  validate:"omitempty,min=9,max=12,numeric"`
	Password      *string `json:"password,omitempty"        validate:"omitempty,min=8"`
	Role          *string `json:"role,omitempty"            validate:"omitempty,oneof=customer employee"`
}

// List returns all portal accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorEnvelope
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create registers a new customer or employee account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), actor, ports.CreateUserInput{
		FullName:      req.FullName,
		Username:      req.Username,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
		Role:          domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial update to a non-admin account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var role *domain.Role
	if req.Role != nil {
		r := domain.Role(*req.Role)
		role = &r
	}

	user, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UserPatch{
		FullName:      req.FullName,
		Username:      req.Username,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
		Role:          role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a non-admin account.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "user deleted"
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
