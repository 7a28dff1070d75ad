package repository

import (
	"context"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas solo devuelven productos activos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// SoftDelete marca el producto como inactivo; las ventas que lo referencian se conservan.
	SoftDelete(ctx context.Context, id string) error
	// ListActive lista productos activos más recientes primero. query vacío = todos.
	ListActive(ctx context.Context, query string) ([]*entity.Product, error)
	// SearchActive búsqueda del selector de venta: activos, por nombre o SKU, ordenados por nombre.
	SearchActive(ctx context.Context, query string) ([]*entity.Product, error)
}
