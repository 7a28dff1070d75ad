package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para caja, inicio y gráficas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) sum(ctx context.Context, label, query string, args ...any) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.%s: %w", label, err)
	}
	return v, nil
}

// SalesTotal suma de totales de ventas en [from, to).
func (r *AnalyticsRepo) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "SalesTotal", `
		SELECT COALESCE(SUM(total), 0) FROM sales
		WHERE created_at >= $1 AND created_at < $2`, from, to)
}

// SalesCost Σ qty × costo actual del producto para las líneas vendidas en [from, to).
func (r *AnalyticsRepo) SalesCost(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "SalesCost", `
		SELECT COALESCE(SUM(si.qty * p.cost), 0)
		FROM sale_items si
		JOIN sales    s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= $1 AND s.created_at < $2`, from, to)
}

// ExpensesTotal suma de gastos con expense_date en [fromDay, toDay).
func (r *AnalyticsRepo) ExpensesTotal(ctx context.Context, fromDay, toDay time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "ExpensesTotal", `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE expense_date >= $1::date AND expense_date < $2::date`,
		fromDay.Format("2006-01-02"), toDay.Format("2006-01-02"))
}

// TotalsByStatus totales de todas las ventas por estado de entrega.
func (r *AnalyticsRepo) TotalsByStatus(ctx context.Context) (repository.StatusTotals, error) {
	var t repository.StatusTotals
	err := r.q.QueryRow(ctx, `
		SELECT
		    COALESCE(SUM(total) FILTER (WHERE status = 'pendiente'), 0),
		    COALESCE(SUM(total) FILTER (WHERE status = 'enviado'),   0)
		FROM sales`).Scan(&t.Pendiente, &t.Enviado)
	if err != nil {
		return t, fmt.Errorf("analytics.TotalsByStatus: %w", err)
	}
	return t, nil
}

// SalesByDay totales por día calendario en la zona tz, ascendente.
func (r *AnalyticsRepo) SalesByDay(ctx context.Context, tz string) ([]repository.SalesBucket, error) {
	return r.buckets(ctx, "SalesByDay", "day", tz)
}

// SalesByMonth totales por mes calendario en la zona tz, ascendente.
func (r *AnalyticsRepo) SalesByMonth(ctx context.Context, tz string) ([]repository.SalesBucket, error) {
	return r.buckets(ctx, "SalesByMonth", "month", tz)
}

func (r *AnalyticsRepo) buckets(ctx context.Context, label, unit, tz string) ([]repository.SalesBucket, error) {
	// unit es una constante interna ("day" | "month"), nunca entrada del usuario.
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', created_at AT TIME ZONE $1) AS period, SUM(total)
		FROM sales
		GROUP BY period
		ORDER BY period`, unit)
	rows, err := r.q.Query(ctx, query, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", label, err)
	}
	defer rows.Close()

	var out []repository.SalesBucket
	for rows.Next() {
		var b repository.SalesBucket
		if err := rows.Scan(&b.Period, &b.Total); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", label, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
