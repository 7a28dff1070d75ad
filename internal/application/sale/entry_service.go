package sale

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/cart"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// EntryService carga de ventas por HTTP: un carrito por usuario guardado en un CartStore.
type EntryService struct {
	catalog CatalogReader
	creator SaleCreator
	store   CartStore
	log     zerolog.Logger
}

// NewEntryService construye el servicio.
func NewEntryService(catalog CatalogReader, creator SaleCreator, store CartStore, log zerolog.Logger) *EntryService {
	return &EntryService{
		catalog: catalog,
		creator: creator,
		store:   store,
		log:     log.With().Str("component", "sale_entry").Logger(),
	}
}

// Products lista del selector: activos cuyo nombre o SKU contiene q, por nombre.
func (s *EntryService) Products(ctx context.Context, q string) ([]dto.PickerProductDTO, error) {
	products, err := s.catalog.SearchActive(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PickerProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.PickerProductDTO{ID: p.ID, Name: p.Name, SKU: p.Code(), Stock: p.Stock, Price: p.Price})
	}
	return out, nil
}

// Cart estado actual del carrito del usuario.
func (s *EntryService) Cart(ctx context.Context, owner string) (*dto.CartDTO, error) {
	c, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return ToCartDTO(c), nil
}

// AddItem agrega una unidad del producto con el stock leído en este momento.
func (s *EntryService) AddItem(ctx context.Context, owner, productID string) (*dto.CartDTO, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return s.mutate(ctx, owner, func(c *cart.Cart) error {
		_, err := c.Add(product)
		return err
	})
}

// UpdateQuantity fija la cantidad de una línea (ajustada al stock).
func (s *EntryService) UpdateQuantity(ctx context.Context, owner, productID string, quantity int) (*dto.CartDTO, error) {
	return s.mutate(ctx, owner, func(c *cart.Cart) error {
		_, err := c.UpdateQuantity(productID, quantity)
		return err
	})
}

// RemoveItem quita la línea del producto.
func (s *EntryService) RemoveItem(ctx context.Context, owner, productID string) (*dto.CartDTO, error) {
	return s.mutate(ctx, owner, func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// SetDeduction fija el costo DTF.
func (s *EntryService) SetDeduction(ctx context.Context, owner string, amount numeric.Optional) (*dto.CartDTO, error) {
	return s.mutate(ctx, owner, func(c *cart.Cart) error {
		return c.SetDeduction(amount)
	})
}

// Discard descarta el carrito. Con un envío en curso falla con domain.ErrSubmitInProgress.
func (s *EntryService) Discard(ctx context.Context, owner string) error {
	return s.store.Update(ctx, owner, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// mutate aplica fn con Update; el store rechaza el cambio si hay un envío en curso,
// así un cambio confirmado nunca se pierde con el vaciado posterior al envío.
func (s *EntryService) mutate(ctx context.Context, owner string, fn func(c *cart.Cart) error) (*dto.CartDTO, error) {
	var out *dto.CartDTO
	err := s.store.Update(ctx, owner, func(c *cart.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		out = ToCartDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Submit registra la venta del carrito del usuario. Solo un envío por usuario a la vez.
// Con éxito borra el carrito; si falla el carrito queda como estaba.
func (s *EntryService) Submit(ctx context.Context, owner string, in dto.SubmitSaleRequest) (*dto.SubmitSaleResponse, error) {
	token, ok, err := s.store.AcquireSubmit(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrSubmitInProgress
	}
	defer func() {
		if err := s.store.ReleaseSubmit(context.WithoutCancel(ctx), owner, token); err != nil {
			s.log.Error().Err(err).Str("owner", owner).Msg("no se pudo liberar el candado de envío")
		}
	}()

	c, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	req, err := c.Request(in.CustomerName, in.CustomerPhone)
	if err != nil {
		return nil, err
	}
	id, err := s.creator.CreateMulti(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Int("items", len(req.Items)).Msg("venta no registrada")
		return nil, asRemote(err)
	}
	if err := s.store.Delete(ctx, owner); err != nil {
		// La venta ya quedó registrada: no se reporta como fallo.
		s.log.Error().Err(err).Str("sale_id", id).Msg("no se pudo vaciar el carrito")
	}
	s.log.Info().Str("sale_id", id).Str("owner", owner).Int("items", len(req.Items)).Msg("venta registrada")
	return &dto.SubmitSaleResponse{SaleID: id}, nil
}

// ToCartDTO arma la respuesta del carrito con sus totales.
func ToCartDTO(c *cart.Cart) *dto.CartDTO {
	lines := c.Lines()
	out := &dto.CartDTO{Lines: make([]dto.CartLineDTO, 0, len(lines)), Deduction: c.Deduction()}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.CartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			SKU:       l.SKU,
			Quantity:  l.Quantity,
			Stock:     l.Stock,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	t := c.Totals()
	out.Subtotal = t.Subtotal
	out.Total = t.Total
	return out
}
