package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos de caja.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	// ListByDate gastos con expense_date = day, más recientes primero.
	ListByDate(ctx context.Context, day time.Time) ([]*entity.Expense, error)
	Delete(ctx context.Context, id string) error
}
