package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/credit"
	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
)

// CreditHandler créditos independientes y pagos.
type CreditHandler struct {
	credits  *credit.CreditUseCase
	payments *credit.PaymentUseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(credits *credit.CreditUseCase, payments *credit.PaymentUseCase) *CreditHandler {
	return &CreditHandler{credits: credits, payments: payments}
}

// CreateCredit godoc
// @Summary      Registrar crédito independiente
// @Tags         credits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditRequest  true  "Crédito"
// @Success      201   {object}  entity.StandaloneCredit
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/credits [post]
func (h *CreditHandler) CreateCredit(c *fiber.Ctx) error {
	var in dto.CreateCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.credits.CreateStandaloneCredit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCredits godoc
// @Summary      Listar créditos independientes
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Router       /api/credits [get]
func (h *CreditHandler) ListCredits(c *fiber.Ctx) error {
	out, err := h.credits.ListCredits(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// DeleteCredit godoc
// @Summary      Eliminar crédito independiente
// @Tags         credits
// @Security     Bearer
// @Param        id   path  string  true  "ID del crédito"
// @Success      204
// @Router       /api/credits/{id} [delete]
func (h *CreditHandler) DeleteCredit(c *fiber.Ctx) error {
	if err := h.credits.DeleteCredit(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPayment godoc
// @Summary      Registrar pago (no puede superar el saldo pendiente)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "Pago"
// @Success      201   {object}  entity.Payment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *CreditHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordPayment(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Listar pagos
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Router       /api/payments [get]
func (h *CreditHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListPayments(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// DeletePayment godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Security     Bearer
// @Param        id   path  string  true  "ID del pago"
// @Success      204
// @Router       /api/payments/{id} [delete]
func (h *CreditHandler) DeletePayment(c *fiber.Ctx) error {
	if err := h.payments.DeletePayment(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
