package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Día actual en la zona de la tienda
	VentasHoy   decimal.Decimal `json:"ventas_hoy"`
	CostoHoy    decimal.Decimal `json:"costo_hoy"`  // Σ cantidad × costo del producto
	GastosHoy   decimal.Decimal `json:"gastos_hoy"`
	GananciaHoy decimal.Decimal `json:"ganancia_hoy"` // ventas - costo - gastos

	VentasMes decimal.Decimal `json:"ventas_mes"`

	// Todas las ventas por estado de entrega
	Pendiente decimal.Decimal `json:"pendiente"`
	Enviado   decimal.Decimal `json:"enviado"`

	DateLabel string `json:"date_label"` // ej: "octubre 2026"
}

// ChartPointDTO punto de una serie: período y total vendido.
type ChartPointDTO struct {
	Period string          `json:"period"` // YYYY-MM-DD o YYYY-MM
	Total  decimal.Decimal `json:"total"`
}

// SalesChartsDTO respuesta de GET /api/charts/sales.
type SalesChartsDTO struct {
	PorDia []ChartPointDTO `json:"por_dia"`
	PorMes []ChartPointDTO `json:"por_mes"`
}
