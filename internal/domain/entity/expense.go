package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto de caja de un día.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time // solo fecha (00:00 en la zona de la tienda)
	CreatedAt   time.Time
}
