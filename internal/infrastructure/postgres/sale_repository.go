package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. El alta pasa por el procedimiento create_sale_multi.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// saleItemArg forma de cada línea en p_items.
type saleItemArg struct {
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateMulti llama create_sale_multi. Un RAISE del procedimiento vuelve como *domain.RemoteError con su texto.
func (r *SaleRepo) CreateMulti(ctx context.Context, req entity.SaleRequest) (string, error) {
	items := make([]saleItemArg, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, saleItemArg{ProductID: it.ProductID, Qty: it.Quantity, UnitPrice: it.UnitPrice})
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("codificar líneas: %w", err)
	}

	var id string
	err = r.q.QueryRow(ctx,
		`SELECT create_sale_multi($1, $2, $3::jsonb, $4)::text`,
		req.CustomerName, req.CustomerPhone, string(payload), req.DTFCost,
	).Scan(&id)
	if err != nil {
		if msg, ok := raisedMessage(err); ok {
			return "", &domain.RemoteError{Message: msg, Err: err}
		}
		return "", fmt.Errorf("create_sale_multi: %w", err)
	}
	return id, nil
}

// GetByID venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_name, customer_phone, total, dtf_cost, status, created_at
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.CustomerName, &s.CustomerPhone, &s.Total, &s.DTFCost, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// List ventas en el rango (si lo hay), más recientes primero, con sus líneas.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		conds []string
		args  []any
	)
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	query := `SELECT id, customer_name, customer_phone, total, dtf_cost, status, created_at FROM sales`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.CustomerPhone, &s.Total, &s.DTFCost, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.attachItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// attachItems carga las líneas de todas las ventas con una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, qty, price
		FROM sale_items WHERE sale_id = ANY($1::uuid[])
		ORDER BY sale_id, product_name`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s := byID[it.SaleID]; s != nil {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

// UpdateStatus cambia el estado de entrega.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
