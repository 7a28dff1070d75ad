// Package cashregister contiene la caja diaria: ingresos por ventas, gastos y ganancia del día.
package cashregister

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/period"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

// UseCase caja del día.
type UseCase struct {
	expenses  repository.ExpenseRepository
	analytics repository.AnalyticsRepository
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewUseCase(expenses repository.ExpenseRepository, analytics repository.AnalyticsRepository, loc *time.Location, log zerolog.Logger) *UseCase {
	return &UseCase{
		expenses:  expenses,
		analytics: analytics,
		loc:       loc,
		now:       time.Now,
		log:       log.With().Str("component", "cash_register").Logger(),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Summary caja de la fecha (YYYY-MM-DD, vacío = hoy): ingresos, gastos, ganancia y lista de gastos.
func (uc *UseCase) Summary(ctx context.Context, date string) (*dto.CashSummaryDTO, error) {
	day, err := period.ParseDay(date, uc.now(), uc.loc)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	r := period.Day(day, uc.loc)

	ingresos, err := uc.analytics.SalesTotal(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("caja: ingresos: %w", err)
	}
	list, err := uc.expenses.ListByDate(ctx, r.From)
	if err != nil {
		return nil, fmt.Errorf("caja: gastos: %w", err)
	}

	out := &dto.CashSummaryDTO{
		Date:     r.From.Format(period.DayLayout),
		Ingresos: ingresos,
		Gastos:   decimal.Zero,
		Expenses: make([]dto.ExpenseDTO, 0, len(list)),
	}
	for _, e := range list {
		out.Gastos = out.Gastos.Add(e.Amount)
		out.Expenses = append(out.Expenses, toExpenseDTO(e))
	}
	out.Ganancia = out.Ingresos.Sub(out.Gastos)
	return out, nil
}

// AddExpense registra un gasto. Descripción obligatoria y monto mayor a cero.
func (uc *UseCase) AddExpense(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseDTO, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.NewValidationError("description", "la descripción es obligatoria")
	}
	amount := in.Amount.OrZero()
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "el monto debe ser mayor a cero")
	}
	day, err := period.ParseDay(in.Date, uc.now(), uc.loc)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Description: desc,
		Amount:      amount,
		ExpenseDate: day,
		CreatedAt:   uc.now(),
	}
	if err := uc.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.log.Info().Str("expense_id", e.ID).Str("amount", amount.String()).Str("date", day.Format(period.DayLayout)).Msg("gasto registrado")
	out := toExpenseDTO(e)
	return &out, nil
}

// DeleteExpense elimina un gasto.
func (uc *UseCase) DeleteExpense(ctx context.Context, id string) error {
	if err := uc.expenses.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("expense_id", id).Msg("gasto eliminado")
	return nil
}

func toExpenseDTO(e *entity.Expense) dto.ExpenseDTO {
	return dto.ExpenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format(period.DayLayout),
		CreatedAt:   e.CreatedAt,
	}
}
