package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesBucket total vendido en un período (día o mes).
type SalesBucket struct {
	Period time.Time
	Total  decimal.Decimal
}

// StatusTotals totales por estado de entrega.
type StatusTotals struct {
	Pendiente decimal.Decimal
	Enviado   decimal.Decimal
}

// AnalyticsRepository consultas de lectura para caja, inicio y gráficas.
// Los rangos son [from, to) en instantes absolutos; el use case calcula los límites en la zona de la tienda.
type AnalyticsRepository interface {
	// SalesTotal suma de totales de ventas creadas en el rango. Cero si no hay ventas.
	SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// SalesCost suma de cantidad × costo del producto para las líneas vendidas en el rango.
	SalesCost(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// ExpensesTotal suma de gastos con expense_date en [fromDay, toDay).
	ExpensesTotal(ctx context.Context, fromDay, toDay time.Time) (decimal.Decimal, error)
	// TotalsByStatus totales de todas las ventas agrupados por estado.
	TotalsByStatus(ctx context.Context) (StatusTotals, error)
	// SalesByDay y SalesByMonth agrupan por día/mes en la zona horaria tz, ascendente.
	SalesByDay(ctx context.Context, tz string) ([]SalesBucket, error)
	SalesByMonth(ctx context.Context, tz string) ([]SalesBucket, error)
}
