package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// ── Carga de venta ────────────────────────────────────────────────────────────

// PickerProductDTO producto del selector de la venta.
type PickerProductDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku,omitempty"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

// CartLineDTO línea del carrito.
type CartLineDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartDTO estado del carrito con totales calculados.
type CartDTO struct {
	Lines     []CartLineDTO    `json:"lines"`
	Deduction numeric.Optional `json:"deduction" swaggertype:"number"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Total     decimal.Decimal  `json:"total"`
}

// AddCartItemRequest agrega una unidad del producto.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateCartItemRequest fija la cantidad de una línea (se ajusta al stock).
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// DeductionRequest costo DTF; vacío = 0.
type DeductionRequest struct {
	Amount numeric.Optional `json:"amount" swaggertype:"number"`
}

// SubmitSaleRequest datos del cliente para guardar la venta.
type SubmitSaleRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone"`
}

// SubmitSaleResponse ID de la venta creada.
type SubmitSaleResponse struct {
	SaleID string `json:"sale_id"`
}

// ── Historial de ventas ───────────────────────────────────────────────────────

// SaleFilterRequest filtros de GET /api/sales y /api/sales/export.
type SaleFilterRequest struct {
	Status string `query:"status"` // all | pendiente | enviado
	Date   string `query:"date"`   // all | today | month
	Query  string `query:"q"`
}

// SaleItemDTO línea de una venta registrada.
type SaleItemDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleDTO venta registrada con sus líneas.
type SaleDTO struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Total         decimal.Decimal `json:"total"`
	DTFCost       decimal.Decimal `json:"dtf_cost"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItemDTO   `json:"items"`
}

// SaleTotalsDTO totales del conjunto filtrado.
type SaleTotalsDTO struct {
	Total     decimal.Decimal `json:"total"`
	Pendiente decimal.Decimal `json:"pendiente"`
	Enviado   decimal.Decimal `json:"enviado"`
}

// SaleListResponse ventas filtradas con totales.
type SaleListResponse struct {
	Items  []SaleDTO     `json:"items"`
	Totals SaleTotalsDTO `json:"totals"`
}

// UpdateSaleStatusRequest cambio de estado de entrega.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente enviado"`
}
