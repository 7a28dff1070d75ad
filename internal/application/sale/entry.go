package sale

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/cart"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// EntrySession estado de la pantalla "Nueva venta" de un vendedor: selector con búsqueda,
// carrito, descuento DTF y envío. Es segura para uso concurrente: la pantalla la muta desde
// su loop y el envío corre en otra goroutine.
type EntrySession struct {
	creator SaleCreator
	search  *SearchTask
	log     zerolog.Logger

	mu         sync.Mutex
	cart       *cart.Cart
	products   []*entity.Product
	lastSeq    uint64
	query      string
	pickerOpen bool
	submitting bool
}

// NewEntrySession construye la sesión. notify recibe cada resultado de búsqueda; quien lo recibe
// debe llamar ApplySearch desde su propio loop.
func NewEntrySession(catalog CatalogReader, creator SaleCreator, window time.Duration, notify func(SearchResult), log zerolog.Logger) *EntrySession {
	s := &EntrySession{
		creator: creator,
		cart:    cart.New(),
		log:     log.With().Str("component", "sale_entry").Logger(),
	}
	s.search = NewSearchTask(catalog, window, notify, log)
	return s
}

// Start dispara la carga inicial del catálogo.
func (s *EntrySession) Start() {
	s.search.Now("")
}

// Close libera la búsqueda en curso (al salir de la pantalla).
func (s *EntrySession) Close() {
	s.search.Close()
}

// ── Selector ──────────────────────────────────────────────────────────────────

// SetQuery cambia el texto de búsqueda y programa la consulta.
func (s *EntrySession) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.pickerOpen = true
	s.mu.Unlock()
	s.search.Schedule(q)
}

// Query texto de búsqueda actual.
func (s *EntrySession) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// OpenPicker / ClosePicker muestran u ocultan el selector.
func (s *EntrySession) OpenPicker() {
	s.mu.Lock()
	s.pickerOpen = true
	s.mu.Unlock()
}

func (s *EntrySession) ClosePicker() {
	s.mu.Lock()
	s.pickerOpen = false
	s.mu.Unlock()
}

// PickerOpen indica si el selector está visible.
func (s *EntrySession) PickerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pickerOpen
}

// ApplySearch aplica un resultado de búsqueda si es más nuevo que el último aplicado.
// Un resultado con error conserva la lista anterior.
func (s *EntrySession) ApplySearch(res SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Seq <= s.lastSeq {
		return false
	}
	s.lastSeq = res.Seq
	if res.Err != nil {
		return false
	}
	s.products = res.Products
	return true
}

// Products lista mostrada en el selector.
func (s *EntrySession) Products() []*entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ── Carrito ───────────────────────────────────────────────────────────────────

// AddToCart agrega una unidad del producto elegido en el selector. Al agregar cierra el selector
// y limpia la búsqueda.
func (s *EntrySession) AddToCart(productID string) (cart.Line, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return cart.Line{}, domain.ErrSubmitInProgress
	}
	var product *entity.Product
	for _, p := range s.products {
		if p.ID == productID {
			product = p
			break
		}
	}
	if product == nil {
		s.mu.Unlock()
		return cart.Line{}, domain.ErrNotFound
	}
	line, err := s.cart.Add(product)
	if err != nil {
		s.mu.Unlock()
		return cart.Line{}, err
	}
	s.pickerOpen = false
	reset := s.query != ""
	s.query = ""
	s.mu.Unlock()

	if reset {
		s.search.Schedule("")
	}
	return line, nil
}

// UpdateQuantity fija la cantidad de una línea, ajustada al stock.
func (s *EntrySession) UpdateQuantity(productID string, quantity int) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return cart.Line{}, domain.ErrSubmitInProgress
	}
	return s.cart.UpdateQuantity(productID, quantity)
}

// RemoveLine quita la línea del producto.
func (s *EntrySession) RemoveLine(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return domain.ErrSubmitInProgress
	}
	s.cart.Remove(productID)
	return nil
}

// SetDeduction interpreta el texto del campo DTF. Vacío = sin descuento.
func (s *EntrySession) SetDeduction(text string) error {
	amount, err := numeric.Parse(text)
	if err != nil {
		return domain.NewValidationError("deduction", err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return domain.ErrSubmitInProgress
	}
	return s.cart.SetDeduction(amount)
}

// Lines líneas actuales del carrito.
func (s *EntrySession) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Totals subtotal y total del carrito.
func (s *EntrySession) Totals() cart.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

// Submitting indica si hay un envío en curso (botón Guardar deshabilitado).
func (s *EntrySession) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submit valida y registra la venta con una sola llamada. Si tiene éxito vacía el carrito y
// devuelve el ID; si falla el carrito queda intacto y el error llega como *domain.RemoteError.
func (s *EntrySession) Submit(ctx context.Context, customerName, customerPhone string) (string, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return "", domain.ErrSubmitInProgress
	}
	req, err := s.cart.Request(customerName, customerPhone)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.submitting = true
	s.mu.Unlock()

	id, err := s.creator.CreateMulti(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.log.Warn().Err(err).Str("customer", req.CustomerName).Int("items", len(req.Items)).Msg("venta no registrada")
		return "", asRemote(err)
	}
	s.cart.Clear()
	s.log.Info().Str("sale_id", id).Int("items", len(req.Items)).Msg("venta registrada")
	return id, nil
}

// asRemote envuelve cualquier falla del registro como RemoteError conservando el mensaje.
func asRemote(err error) error {
	var re *domain.RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &domain.RemoteError{Message: err.Error(), Err: err}
}
