package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
)

// SyncHandler dispara la sincronización caché local -> almacén remoto.
type SyncHandler struct {
	gw *gateway.Gateway
}

// NewSyncHandler construye el handler.
func NewSyncHandler(gw *gateway.Gateway) *SyncHandler {
	return &SyncHandler{gw: gw}
}

// Sync godoc
// @Summary      Empujar la caché local al almacén remoto
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  gateway.SyncReport
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync [post]
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	report, err := h.gw.Sync(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
