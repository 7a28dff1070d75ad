package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
)

const lineNotFound = "el producto no está en el carrito"

// SaleEntryHandler carga de una venta: selector, carrito y guardado.
// El carrito es por usuario (user_id del token).
type SaleEntryHandler struct {
	svc *sale.EntryService
}

// NewSaleEntryHandler construye el handler.
func NewSaleEntryHandler(svc *sale.EntryService) *SaleEntryHandler {
	return &SaleEntryHandler{svc: svc}
}

// Products godoc
// @Summary      Productos del selector
// @Tags         sales-entry
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Texto a buscar"
// @Success      200  {array}  dto.PickerProductDTO
// @Router       /api/sales/entry/products [get]
func (h *SaleEntryHandler) Products(c *fiber.Ctx) error {
	out, err := h.svc.Products(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// Cart godoc
// @Summary      Carrito actual
// @Tags         sales-entry
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartDTO
// @Router       /api/sales/entry/cart [get]
func (h *SaleEntryHandler) Cart(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	out, err := h.svc.Cart(c.Context(), owner)
	if err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar una unidad al carrito
// @Tags         sales-entry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id"
// @Success      200  {object}  dto.CartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/entry/cart/items [post]
func (h *SaleEntryHandler) AddItem(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.svc.AddItem(c.Context(), owner, in.ProductID)
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Description  La cantidad se ajusta al rango [1, stock].
// @Tags         sales-entry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200  {object}  dto.CartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/entry/cart/items/{productId} [patch]
func (h *SaleEntryHandler) UpdateItem(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.UpdateQuantity(c.Context(), owner, c.Params("productId"), in.Quantity)
	if err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar una línea
// @Tags         sales-entry
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartDTO
// @Router       /api/sales/entry/cart/items/{productId} [delete]
func (h *SaleEntryHandler) RemoveItem(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	out, err := h.svc.RemoveItem(c.Context(), owner, c.Params("productId"))
	if err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.JSON(out)
}

// SetDeduction godoc
// @Summary      Fijar costo DTF
// @Description  Vacío o ausente equivale a 0; negativo es inválido.
// @Tags         sales-entry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductionRequest  true  "amount"
// @Success      200  {object}  dto.CartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/entry/cart/deduction [put]
func (h *SaleEntryHandler) SetDeduction(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.DeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.SetDeduction(c.Context(), owner, in.Amount)
	if err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar el carrito
// @Tags         sales-entry
// @Security     Bearer
// @Success      204
// @Router       /api/sales/entry/cart [delete]
func (h *SaleEntryHandler) Discard(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	if err := h.svc.Discard(c.Context(), owner); err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary      Guardar la venta
// @Description  Registra la venta completa en una sola llamada. 502 devuelve el mensaje del servidor de datos tal cual.
// @Tags         sales-entry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitSaleRequest  true  "Datos del cliente"
// @Success      201  {object}  dto.SubmitSaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sales/entry/submit [post]
func (h *SaleEntryHandler) Submit(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.SubmitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Submit(c.Context(), owner, in)
	if err != nil {
		return writeError(c, err, lineNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
