package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/period"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

// ChartsUseCase series de ventas por día y por mes.
type ChartsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
}

// NewChartsUseCase construye el caso de uso.
func NewChartsUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *ChartsUseCase {
	return &ChartsUseCase{analyticsRepo: analyticsRepo, loc: loc}
}

// Sales devuelve ambas series en orden ascendente, agrupadas en la zona de la tienda.
func (uc *ChartsUseCase) Sales(ctx context.Context) (*dto.SalesChartsDTO, error) {
	tz := uc.loc.String()
	days, err := uc.analyticsRepo.SalesByDay(ctx, tz)
	if err != nil {
		return nil, fmt.Errorf("gráficas: por día: %w", err)
	}
	months, err := uc.analyticsRepo.SalesByMonth(ctx, tz)
	if err != nil {
		return nil, fmt.Errorf("gráficas: por mes: %w", err)
	}
	return &dto.SalesChartsDTO{
		PorDia: toPoints(days, period.DayLayout),
		PorMes: toPoints(months, "2006-01"),
	}, nil
}

func toPoints(buckets []repository.SalesBucket, layout string) []dto.ChartPointDTO {
	out := make([]dto.ChartPointDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.ChartPointDTO{Period: b.Period.Format(layout), Total: b.Total.Round(2)})
	}
	return out
}
