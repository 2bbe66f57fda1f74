package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/auth"
	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
)

// SessionHandler abre la sesión con el código de acceso.
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Unlock godoc
// @Summary      Abrir sesión con el código de acceso
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionRequest  true  "passcode"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Unlock(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Unlock(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
