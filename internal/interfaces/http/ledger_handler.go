package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/credit"
	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
)

// LedgerHandler vistas del ledger de compradores.
type LedgerHandler struct {
	uc *credit.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *credit.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Buyers godoc
// @Summary      Todos los compradores (nombre exacto)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Router       /api/ledger/buyers [get]
func (h *LedgerHandler) Buyers(c *fiber.Ctx) error {
	out, err := h.uc.Buyers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Outstanding godoc
// @Summary      Compradores con saldo pendiente
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OutstandingResponse
// @Router       /api/ledger/outstanding [get]
func (h *LedgerHandler) Outstanding(c *fiber.Ctx) error {
	out, err := h.uc.Outstanding(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consistency godoc
// @Summary      Reporte de consistencia (informativo)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ledger.Report
// @Router       /api/ledger/consistency [get]
func (h *LedgerHandler) Consistency(c *fiber.Ctx) error {
	out, err := h.uc.ConsistencyReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Directory godoc
// @Summary      Directorio de compradores con alias y saldo consolidado
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Router       /api/ledger/directory [get]
func (h *LedgerHandler) Directory(c *fiber.Ctx) error {
	out, err := h.uc.Directory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Statement godoc
// @Summary      Estado de cuenta de un comprador
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre exacto del comprador"
// @Success      200   {object}  ledger.Statement
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/buyers/{name}/statement [get]
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	name, err := buyerParam(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.Statement(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StatementPDF godoc
// @Summary      Estado de cuenta en PDF
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        name  path  string  true  "Nombre exacto del comprador"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/buyers/{name}/statement.pdf [get]
func (h *LedgerHandler) StatementPDF(c *fiber.Ctx) error {
	name, err := buyerParam(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.StatementPDF(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="statement-%s.pdf"`, url.PathEscape(name)))
	return c.Send(out)
}

func buyerParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}
