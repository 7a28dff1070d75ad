package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
)

const saleNotFound = "venta no encontrada"

// SaleHandler historial de ventas: listado, estado, exportación y comprobante.
type SaleHandler struct {
	svc *sale.LedgerService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *sale.LedgerService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "all | pendiente | enviado"
// @Param        date    query  string  false  "all | today | month"
// @Param        q       query  string  false  "Cliente, teléfono o producto"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var f dto.SaleFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.svc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de entrega
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "pendiente | enviado"
// @Success      200  {object}  dto.SaleDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "all | pendiente | enviado"
// @Param        date    query  string  false  "all | today | month"
// @Param        q       query  string  false  "Cliente, teléfono o producto"
// @Success      200  {file}  file
// @Router       /api/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	var f dto.SaleFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	data, name, err := h.svc.Export(c.Context(), f)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(name)
	return c.Send(data)
}

// Receipt godoc
// @Summary      Comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	data, err := h.svc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
