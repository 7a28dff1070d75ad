package sale

import (
	"context"

	"github.com/jhoicas/tienda-pos/internal/domain/cart"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// CatalogReader lectura del catálogo para el selector de productos.
type CatalogReader interface {
	SearchActive(ctx context.Context, query string) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// SaleCreator registra una venta completa en una sola llamada (create_sale_multi).
type SaleCreator interface {
	CreateMulti(ctx context.Context, req entity.SaleRequest) (string, error)
}

// CartStore guarda un carrito por dueño (usuario autenticado) entre requests HTTP.
// Update debe ser atómico por dueño: fn ve y modifica el último estado guardado, y la
// comprobación del candado de envío ocurre dentro de la misma operación.
type CartStore interface {
	// Load devuelve el carrito del dueño o uno vacío si no existe.
	Load(ctx context.Context, owner string) (*cart.Cart, error)
	// Update aplica fn y guarda el resultado solo si fn no devolvió error.
	// Falla con domain.ErrSubmitInProgress, sin llamar a fn, si el dueño tiene un envío en curso.
	Update(ctx context.Context, owner string, fn func(c *cart.Cart) error) error
	Delete(ctx context.Context, owner string) error
	// AcquireSubmit toma el candado de envío del dueño y devuelve su token; ok = false si ya hay un envío en curso.
	AcquireSubmit(ctx context.Context, owner string) (token string, ok bool, err error)
	// ReleaseSubmit libera el candado solo si todavía pertenece a token.
	ReleaseSubmit(ctx context.Context, owner, token string) error
	// Submitting indica si hay un envío en curso.
	Submitting(ctx context.Context, owner string) (bool, error)
}
