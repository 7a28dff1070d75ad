package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos de caja sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de gastos.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expenses (id, description, amount, expense_date, created_at)
		VALUES ($1, $2, $3, $4::date, $5)`,
		e.ID, e.Description, e.Amount, e.ExpenseDate.Format("2006-01-02"), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListByDate gastos de un día, más recientes primero.
func (r *ExpenseRepo) ListByDate(ctx context.Context, day time.Time) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, description, amount, expense_date, created_at
		FROM expenses WHERE expense_date = $1::date
		ORDER BY created_at DESC`, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
