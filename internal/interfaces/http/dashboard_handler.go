package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-pos/internal/application/analytics"
	"github.com/jhoicas/tienda-pos/internal/application/dto"
)

// DashboardHandler maneja los endpoints de la pantalla de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ventas, costo, gastos y ganancia de hoy, ventas del mes y
// totales por estado de entrega.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en la zona horaria de la tienda.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
