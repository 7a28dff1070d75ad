package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/period"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

// Valores de los filtros del historial.
const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterMonth = "month"
)

// SalesExporter genera la planilla del historial.
type SalesExporter interface {
	ExportSales(sales []*entity.Sale, loc *time.Location) ([]byte, error)
}

// ReceiptRenderer genera el comprobante de una venta.
type ReceiptRenderer interface {
	RenderReceipt(sale *entity.Sale, loc *time.Location) ([]byte, error)
}

// LedgerService historial de ventas: filtros, totales, estado de entrega, exportación y comprobante.
type LedgerService struct {
	sales    repository.SaleRepository
	exporter SalesExporter
	receipts ReceiptRenderer
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewLedgerService construye el servicio. loc es la zona horaria de la tienda.
func NewLedgerService(sales repository.SaleRepository, exporter SalesExporter, receipts ReceiptRenderer, loc *time.Location, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		sales:    sales,
		exporter: exporter,
		receipts: receipts,
		loc:      loc,
		now:      time.Now,
		log:      log.With().Str("component", "sales_ledger").Logger(),
	}
}

// WithClock reemplaza el reloj (tests).
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// List ventas filtradas, más recientes primero, con totales del conjunto filtrado.
func (s *LedgerService) List(ctx context.Context, f dto.SaleFilterRequest) (*dto.SaleListResponse, error) {
	sales, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleDTO, 0, len(sales))}
	for _, sale := range sales {
		out.Items = append(out.Items, ToSaleDTO(sale))
	}
	out.Totals = ComputeTotals(sales)
	return out, nil
}

func (s *LedgerService) filtered(ctx context.Context, f dto.SaleFilterRequest) ([]*entity.Sale, error) {
	rf, err := s.rangeFor(f.Date)
	if err != nil {
		return nil, err
	}
	if f.Status != "" && f.Status != FilterAll && !entity.IsValidSaleStatus(f.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", f.Status))
	}
	sales, err := s.sales.List(ctx, rf)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	return FilterSales(sales, f.Status, f.Query), nil
}

func (s *LedgerService) rangeFor(date string) (repository.SaleFilter, error) {
	switch date {
	case "", FilterAll:
		return repository.SaleFilter{}, nil
	case FilterToday:
		r := period.Day(s.now(), s.loc)
		return repository.SaleFilter{From: r.From, To: r.To}, nil
	case FilterMonth:
		r := period.Month(s.now(), s.loc)
		return repository.SaleFilter{From: r.From, To: r.To}, nil
	default:
		return repository.SaleFilter{}, domain.NewValidationError("date", fmt.Sprintf("filtro de fecha desconocido %q", date))
	}
}

// FilterSales aplica estado y texto. El texto se compara sin distinguir mayúsculas contra
// cliente, teléfono y nombres de productos.
func FilterSales(sales []*entity.Sale, status, query string) []*entity.Sale {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	out := make([]*entity.Sale, 0, len(sales))
	for _, sale := range sales {
		if status != "" && status != FilterAll && sale.Status != status {
			continue
		}
		if q != "" && !matches(sale, q, fold) {
			continue
		}
		out = append(out, sale)
	}
	return out
}

func matches(sale *entity.Sale, q string, fold cases.Caser) bool {
	if strings.Contains(fold.String(sale.CustomerName), q) || strings.Contains(fold.String(sale.Phone()), q) {
		return true
	}
	for _, it := range sale.Items {
		if strings.Contains(fold.String(it.ProductName), q) {
			return true
		}
	}
	return false
}

// ComputeTotals suma total general y por estado.
func ComputeTotals(sales []*entity.Sale) dto.SaleTotalsDTO {
	t := dto.SaleTotalsDTO{Total: decimal.Zero, Pendiente: decimal.Zero, Enviado: decimal.Zero}
	for _, sale := range sales {
		t.Total = t.Total.Add(sale.Total)
		switch sale.Status {
		case entity.SaleStatusPendiente:
			t.Pendiente = t.Pendiente.Add(sale.Total)
		case entity.SaleStatusEnviado:
			t.Enviado = t.Enviado.Add(sale.Total)
		}
	}
	return t
}

// UpdateStatus marca la venta como pendiente o enviada.
func (s *LedgerService) UpdateStatus(ctx context.Context, id, status string) (*dto.SaleDTO, error) {
	if !entity.IsValidSaleStatus(status) {
		return nil, domain.NewValidationError("status", "el estado debe ser pendiente o enviado")
	}
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.sales.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.Info().Str("sale_id", id).Str("from", sale.Status).Str("to", status).Msg("estado de venta actualizado")
	sale.Status = status
	out := ToSaleDTO(sale)
	return &out, nil
}

// Export planilla de las ventas filtradas y nombre de archivo ventas-YYYY-MM-DD.xlsx.
func (s *LedgerService) Export(ctx context.Context, f dto.SaleFilterRequest) ([]byte, string, error) {
	sales, err := s.filtered(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := s.exporter.ExportSales(sales, s.loc)
	if err != nil {
		return nil, "", fmt.Errorf("exportar ventas: %w", err)
	}
	name := fmt.Sprintf("ventas-%s.xlsx", s.now().In(s.loc).Format(period.DayLayout))
	return data, name, nil
}

// Receipt comprobante PDF de una venta.
func (s *LedgerService) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return s.receipts.RenderReceipt(sale, s.loc)
}

// ToSaleDTO convierte la entidad a su respuesta.
func ToSaleDTO(sale *entity.Sale) dto.SaleDTO {
	out := dto.SaleDTO{
		ID:            sale.ID,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.Phone(),
		Total:         sale.Total,
		DTFCost:       sale.DTFCost,
		Status:        sale.Status,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemDTO, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		out.Items = append(out.Items, dto.SaleItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}
