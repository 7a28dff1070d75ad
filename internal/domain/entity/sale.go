package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de entrega de una venta.
const (
	SaleStatusPendiente = "pendiente"
	SaleStatusEnviado   = "enviado"
)

// IsValidSaleStatus indica si el estado es uno de los conocidos.
func IsValidSaleStatus(s string) bool {
	return s == SaleStatusPendiente || s == SaleStatusEnviado
}

// Sale cabecera de una venta registrada por create_sale_multi.
// Total ya tiene descontado DTFCost (costo de producción).
type Sale struct {
	ID            string
	CustomerName  string
	CustomerPhone *string
	Total         decimal.Decimal
	DTFCost       decimal.Decimal
	Status        string
	CreatedAt     time.Time
	Items         []SaleItem
}

// Phone devuelve el teléfono o "".
func (s *Sale) Phone() string {
	if s.CustomerPhone == nil {
		return ""
	}
	return *s.CustomerPhone
}

// SaleItem línea de una venta. ProductName se copia al vender para que el historial
// no cambie si el producto se renombra.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SaleRequest pedido de creación de una venta multi-producto (una sola llamada transaccional).
type SaleRequest struct {
	CustomerName  string
	CustomerPhone *string
	Items         []SaleRequestItem
	DTFCost       decimal.Decimal
}

// SaleRequestItem producto, cantidad y precio al momento de agregarlo al carrito.
type SaleRequestItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
