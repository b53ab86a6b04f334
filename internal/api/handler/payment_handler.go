package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
)

// PaymentHandler handles HTTP requests for payment lifecycle operations.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// ListOwn handles GET /v1/payments.
//
// @Summary      List the caller's own payments, newest first
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPaymentsResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Router       /v1/payments [get]
func (h *PaymentHandler) ListOwn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payments, err := h.service.ListOwn(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPaymentsResponse(payments))
}

// ListPending handles GET /v1/payments/pending.
//
// @Summary      List payments awaiting verification, newest first
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPaymentsResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Router       /v1/payments/pending [get]
func (h *PaymentHandler) ListPending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payments, err := h.service.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPaymentsResponse(payments))
}

// Create handles POST /v1/payments.
//
// @Summary      Submit a new payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  paymentResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Create(c.Request().Context(), actor, ports.CreatePaymentInput{
		Amount:                 req.Amount,
		Currency:               req.Currency,
		Provider:               req.Provider,
		SenderIDNumber:         req.SenderIDNumber,
		RecipientAccountNumber: req.RecipientAccountNumber,
		PaymentCode:            req.PaymentCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// Update handles PUT /v1/payments/:id.
//
// @Summary      Edit one of the caller's pending payments
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payment id"
// @Param        body  body      updatePaymentRequest  true  "Fields to change"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Router       /v1/payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Edit(c.Request().Context(), actor, c.Param("id"), ports.PaymentPatch{
		Amount:                 req.Amount,
		Currency:               req.Currency,
		Provider:               req.Provider,
		SenderIDNumber:         req.SenderIDNumber,
		RecipientAccountNumber: req.RecipientAccountNumber,
		PaymentCode:            req.PaymentCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// Delete handles DELETE /v1/payments/:id.
//
// @Summary      Delete one of the caller's pending payments
// @Tags         payments
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment id"
// @Success      204  "payment deleted"
// @Failure      404  {object}  errorEnvelope
// @Failure      409  {object}  errorEnvelope
// @Router       /v1/payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Verify handles POST /v1/payments/:id/verify.
//
// @Summary      Verify a pending payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment id"
// @Success      200  {object}  paymentResponse
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Failure      409  {object}  errorEnvelope
// @Router       /v1/payments/{id}/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	return h.transition(c, domain.StatusVerified)
}

// Deny handles POST /v1/payments/:id/deny.
//
// @Summary      Deny a pending payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment id"
// @Success      200  {object}  paymentResponse
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Failure      409  {object}  errorEnvelope
// @Router       /v1/payments/{id}/deny [post]
func (h *PaymentHandler) Deny(c echo.Context) error {
	return h.transition(c, domain.StatusDenied)
}

func (h *PaymentHandler) transition(c echo.Context, outcome domain.PaymentStatus) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payment, err := h.service.Transition(c.Request().Context(), actor, c.Param("id"), outcome)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}
