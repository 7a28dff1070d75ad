package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// SaleFilter rango opcional para listar ventas. Ceros = sin límite.
type SaleFilter struct {
	From time.Time // inclusive
	To   time.Time // exclusive
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	// CreateMulti registra la venta completa en una sola llamada transaccional (create_sale_multi)
	// y devuelve el ID de la venta. Los errores del procedimiento llegan como *domain.RemoteError.
	CreateMulti(ctx context.Context, req entity.SaleRequest) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas con sus líneas, más recientes primero.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
