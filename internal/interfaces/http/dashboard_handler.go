package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/minegocio/avemaria-api/internal/application/analytics"
)

// DashboardHandler maneja la petición del tablero principal (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Tablero del negocio
// @Description  Totales históricos, top de productos, stock bajo, actividad
// @Description  reciente y tendencia mensual en una sola respuesta.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
