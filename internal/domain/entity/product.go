package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de la tienda.
// Stock son unidades disponibles; el procedimiento de venta lo descuenta al guardar una venta.
// Un producto eliminado queda con Active = false para conservar el historial de ventas.
type Product struct {
	ID        string
	Name      string
	SKU       *string // código opcional
	Stock     int
	Cost      decimal.Decimal // costo unitario, usado para la ganancia
	Price     decimal.Decimal // precio de venta
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Code devuelve el SKU o "" si no tiene.
func (p *Product) Code() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}

// Available indica si se puede vender al menos una unidad.
func (p *Product) Available() bool {
	return p.Active && p.Stock > 0
}
