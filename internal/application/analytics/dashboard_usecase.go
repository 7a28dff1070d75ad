// Package analytics contiene los casos de uso de la pantalla de inicio y las gráficas de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/period"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. SalesTotal(hoy)    → VentasHoy
//  2. SalesCost(hoy)     → CostoHoy
//  3. ExpensesTotal(hoy) → GastosHoy
//  4. SalesTotal(mes)    → VentasMes
//  5. TotalsByStatus     → Pendiente, Enviado
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)
	today := period.Day(now, uc.loc)
	month := period.Month(now, uc.loc)

	type amountResult struct {
		v   decimal.Decimal
		err error
	}
	type statusResult struct {
		v   repository.StatusTotals
		err error
	}

	salesTodayCh := make(chan amountResult, 1)
	costTodayCh := make(chan amountResult, 1)
	expensesTodayCh := make(chan amountResult, 1)
	salesMonthCh := make(chan amountResult, 1)
	statusCh := make(chan statusResult, 1)

	go func() {
		v, err := uc.analyticsRepo.SalesTotal(ctx, today.From, today.To)
		salesTodayCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SalesCost(ctx, today.From, today.To)
		costTodayCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.ExpensesTotal(ctx, today.From, today.To)
		expensesTodayCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SalesTotal(ctx, month.From, month.To)
		salesMonthCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.TotalsByStatus(ctx)
		statusCh <- statusResult{v, err}
	}()

	salesToday := <-salesTodayCh
	costToday := <-costTodayCh
	expensesToday := <-expensesTodayCh
	salesMonth := <-salesMonthCh
	status := <-statusCh

	if salesToday.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", salesToday.err)
	}
	if costToday.err != nil {
		return nil, fmt.Errorf("dashboard: costo de hoy: %w", costToday.err)
	}
	if expensesToday.err != nil {
		return nil, fmt.Errorf("dashboard: gastos de hoy: %w", expensesToday.err)
	}
	if salesMonth.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", salesMonth.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: totales por estado: %w", status.err)
	}

	return &dto.DashboardSummaryDTO{
		VentasHoy:   salesToday.v.Round(2),
		CostoHoy:    costToday.v.Round(2),
		GastosHoy:   expensesToday.v.Round(2),
		GananciaHoy: salesToday.v.Sub(costToday.v).Sub(expensesToday.v).Round(2),
		VentasMes:   salesMonth.v.Round(2),
		Pendiente:   status.v.Pendiente.Round(2),
		Enviado:     status.v.Enviado.Round(2),
		DateLabel:   period.MonthLabel(now),
	}, nil
}
