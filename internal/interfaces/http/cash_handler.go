package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos/internal/application/cashregister"
	"github.com/jhoicas/tienda-pos/internal/application/dto"
)

// CashHandler caja diaria: resumen y gastos.
type CashHandler struct {
	uc *cashregister.UseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cashregister.UseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Summary godoc
// @Summary      Caja del día
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.CashSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash [get]
func (h *CashHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.Query("date"))
	if err != nil {
		return writeError(c, err, "sin datos")
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Registrar gasto
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201  {object}  dto.ExpenseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/expenses [post]
func (h *CashHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddExpense(c.Context(), in)
	if err != nil {
		return writeError(c, err, "gasto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteExpense godoc
// @Summary      Eliminar gasto
// @Tags         cash
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash/expenses/{id} [delete]
func (h *CashHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.uc.DeleteExpense(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, "gasto no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
