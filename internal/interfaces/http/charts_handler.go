package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-pos/internal/application/analytics"
	"github.com/jhoicas/tienda-pos/internal/application/dto"
)

// ChartsHandler series para las gráficas de ventas.
type ChartsHandler struct {
	uc *appanalytics.ChartsUseCase
}

// NewChartsHandler construye el handler.
func NewChartsHandler(uc *appanalytics.ChartsUseCase) *ChartsHandler {
	return &ChartsHandler{uc: uc}
}

// Sales godoc
// @Summary      Ventas por día y por mes
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesChartsDTO
// @Router       /api/charts/sales [get]
func (h *ChartsHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.Sales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(out)
}
