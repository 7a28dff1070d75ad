// Package cart contiene el carrito de una venta en curso: líneas por producto, cantidades
// limitadas por el stock y el descuento fijo de producción (DTF).
//
// El carrito es efímero y no sabe nada de persistencia; la venta se registra con el
// SaleRequest que arma Request.
package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// Line una línea del carrito. Nombre, SKU y precio se toman del producto al agregarlo por primera vez.
// Stock es el techo de Quantity y se refresca en cada agregado exitoso.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// Subtotal cantidad × precio unitario.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals montos derivados del carrito. Total nunca es negativo.
type Totals struct {
	Subtotal  decimal.Decimal
	Deduction decimal.Decimal
	Total     decimal.Decimal
}

// Cart carrito de una venta. No es seguro para uso concurrente; quien lo comparte debe serializar el acceso.
type Cart struct {
	lines     []*Line
	deduction numeric.Optional
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{}
}

// Lines devuelve una copia de las líneas en orden de agregado.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Len cantidad de líneas.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Line devuelve la línea del producto, si existe.
func (c *Cart) Line(productID string) (Line, bool) {
	if l := c.find(productID); l != nil {
		return *l, true
	}
	return Line{}, false
}

func (c *Cart) find(productID string) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// Add agrega una unidad del producto. Si ya hay línea incrementa en uno; si no, crea la línea con cantidad 1.
// Falla con *domain.StockExhaustedError cuando no hay stock para una unidad más, sin modificar el carrito.
func (c *Cart) Add(p *entity.Product) (Line, error) {
	if p == nil {
		return Line{}, domain.NewValidationError("product", "producto requerido")
	}
	if !p.Active {
		return Line{}, domain.NewValidationError("product", fmt.Sprintf("%s no está disponible", p.Name))
	}
	if l := c.find(p.ID); l != nil {
		if l.Quantity+1 > p.Stock {
			return Line{}, &domain.StockExhaustedError{ProductID: p.ID, Name: p.Name, Available: p.Stock}
		}
		l.Quantity++
		l.Stock = p.Stock
		return *l, nil
	}
	if p.Stock <= 0 {
		return Line{}, &domain.StockExhaustedError{ProductID: p.ID, Name: p.Name, Available: p.Stock}
	}
	l := &Line{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.Code(),
		UnitPrice: p.Price,
		Stock:     p.Stock,
		Quantity:  1,
	}
	c.lines = append(c.lines, l)
	return *l, nil
}

// UpdateQuantity fija la cantidad de una línea, ajustada a [1, Stock]. Nunca elimina la línea.
func (c *Cart) UpdateQuantity(productID string, quantity int) (Line, error) {
	l := c.find(productID)
	if l == nil {
		return Line{}, fmt.Errorf("producto %s no está en el carrito: %w", productID, domain.ErrNotFound)
	}
	l.Quantity = clamp(quantity, 1, l.Stock)
	return *l, nil
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Remove elimina la línea del producto. No hace nada si no existe.
func (c *Cart) Remove(productID string) {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetDeduction fija el descuento de producción. Sin definir equivale a cero.
func (c *Cart) SetDeduction(amount numeric.Optional) error {
	if amount.IsNegative() {
		return domain.NewValidationError("deduction", "el costo DTF no puede ser negativo")
	}
	c.deduction = amount
	return nil
}

// Deduction valor tal cual lo ingresó el usuario.
func (c *Cart) Deduction() numeric.Optional { return c.deduction }

// Totals calcula subtotal y total = max(0, subtotal - descuento).
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	deduction := c.deduction.OrZero()
	total := subtotal.Sub(deduction)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{Subtotal: subtotal, Deduction: deduction, Total: total}
}

// Request arma el pedido de venta con el estado actual. No modifica el carrito.
// Falla con *domain.ValidationError si falta el cliente o el carrito está vacío.
func (c *Cart) Request(customerName, customerPhone string) (entity.SaleRequest, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return entity.SaleRequest{}, domain.NewValidationError("customer_name", "el nombre del cliente es obligatorio")
	}
	if c.IsEmpty() {
		return entity.SaleRequest{}, domain.NewValidationError("items", "el carrito está vacío")
	}
	req := entity.SaleRequest{
		CustomerName: name,
		Items:        make([]entity.SaleRequestItem, 0, len(c.lines)),
		DTFCost:      c.deduction.OrZero(),
	}
	if phone := strings.TrimSpace(customerPhone); phone != "" {
		req.CustomerPhone = &phone
	}
	for _, l := range c.lines {
		req.Items = append(req.Items, entity.SaleRequestItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return req, nil
}

// Clear vacía líneas y descuento.
func (c *Cart) Clear() {
	c.lines = nil
	c.deduction = numeric.Optional{}
}

// Snapshot forma serializable del carrito, usada por los stores de sesión.
type Snapshot struct {
	Lines     []Line           `json:"lines"`
	Deduction numeric.Optional `json:"deduction"`
}

// Snapshot copia el estado actual.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Lines: c.Lines(), Deduction: c.deduction}
}

// Restore reconstruye un carrito desde un Snapshot.
func Restore(s Snapshot) *Cart {
	c := &Cart{deduction: s.Deduction}
	for i := range s.Lines {
		l := s.Lines[i]
		c.lines = append(c.lines, &l)
	}
	return c
}
