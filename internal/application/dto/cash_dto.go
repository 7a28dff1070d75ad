package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// CreateExpenseRequest entrada de POST /api/cash/expenses. Date vacío = hoy.
type CreateExpenseRequest struct {
	Description string           `json:"description" validate:"required"`
	Amount      numeric.Optional `json:"amount" swaggertype:"number"`
	Date        string           `json:"date"` // YYYY-MM-DD
}

// ExpenseDTO gasto de caja.
type ExpenseDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at"`
}

// CashSummaryDTO caja de un día: ingresos, gastos y ganancia.
type CashSummaryDTO struct {
	Date     string          `json:"date"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
	Ganancia decimal.Decimal `json:"ganancia"` // ingresos - gastos
	Expenses []ExpenseDTO    `json:"expenses"`
}
