package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

type fakeExporter struct{ got []*entity.Sale }

func (f *fakeExporter) ExportSales(sales []*entity.Sale, _ *time.Location) ([]byte, error) {
	f.got = sales
	return []byte("xlsx"), nil
}

type fakeReceipts struct{}

func (fakeReceipts) RenderReceipt(s *entity.Sale, _ *time.Location) ([]byte, error) {
	return []byte("pdf:" + s.ID), nil
}

var ledgerNow = time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

func ledgerSales() []*entity.Sale {
	phone := "5555-0000"
	return []*entity.Sale{
		{ID: "s1", CustomerName: "José Pérez", Total: dec("100"), Status: entity.SaleStatusPendiente,
			CreatedAt: ledgerNow.Add(-time.Hour),
			Items:     []entity.SaleItem{{ProductName: "Camisa blanca", Quantity: 2, UnitPrice: dec("50")}}},
		{ID: "s2", CustomerName: "María", CustomerPhone: &phone, Total: dec("40"), Status: entity.SaleStatusEnviado,
			CreatedAt: ledgerNow.AddDate(0, 0, -3),
			Items:     []entity.SaleItem{{ProductName: "Taza", Quantity: 1, UnitPrice: dec("40")}}},
		{ID: "s3", CustomerName: "Pedro", Total: dec("10"), Status: entity.SaleStatusEnviado,
			CreatedAt: ledgerNow.AddDate(0, -2, 0)},
	}
}

func newLedger(repo *fakeSaleRepo, exp *fakeExporter) *sale.LedgerService {
	return sale.NewLedgerService(repo, exp, fakeReceipts{}, time.UTC, zerolog.Nop()).
		WithClock(func() time.Time { return ledgerNow })
}

func TestFilterSales_TextoSinMayusculas(t *testing.T) {
	sales := ledgerSales()
	assert.Len(t, sale.FilterSales(sales, "all", "JOSÉ"), 1)
	assert.Len(t, sale.FilterSales(sales, "", "camisa"), 1)
	assert.Len(t, sale.FilterSales(sales, "", "5555"), 1)
	assert.Len(t, sale.FilterSales(sales, "enviado", ""), 2)
	assert.Len(t, sale.FilterSales(sales, "enviado", "taza"), 1)
	assert.Empty(t, sale.FilterSales(sales, "pendiente", "taza"))
}

func TestLedger_ListConTotales(t *testing.T) {
	l := newLedger(&fakeSaleRepo{sales: ledgerSales()}, &fakeExporter{})

	all, err := l.List(context.Background(), dto.SaleFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.True(t, all.Totals.Total.Equal(dec("150")))
	assert.True(t, all.Totals.Pendiente.Equal(dec("100")))
	assert.True(t, all.Totals.Enviado.Equal(dec("50")))

	month, err := l.List(context.Background(), dto.SaleFilterRequest{Date: "month"})
	require.NoError(t, err)
	assert.Len(t, month.Items, 2)

	today, err := l.List(context.Background(), dto.SaleFilterRequest{Date: "today"})
	require.NoError(t, err)
	require.Len(t, today.Items, 1)
	assert.Equal(t, "s1", today.Items[0].ID)
	assert.True(t, today.Items[0].Items[0].Subtotal.Equal(dec("100")))
}

func TestLedger_FiltroInvalido(t *testing.T) {
	l := newLedger(&fakeSaleRepo{}, &fakeExporter{})
	_, err := l.List(context.Background(), dto.SaleFilterRequest{Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = l.List(context.Background(), dto.SaleFilterRequest{Status: "perdido"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedger_UpdateStatus(t *testing.T) {
	repo := &fakeSaleRepo{sales: ledgerSales()}
	l := newLedger(repo, &fakeExporter{})

	out, err := l.UpdateStatus(context.Background(), "s1", entity.SaleStatusEnviado)
	require.NoError(t, err)
	assert.Equal(t, "enviado", out.Status)
	assert.Equal(t, "enviado", repo.updated["s1"])

	_, err = l.UpdateStatus(context.Background(), "nope", entity.SaleStatusEnviado)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = l.UpdateStatus(context.Background(), "s1", "cancelado")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedger_ExportNombreYFiltro(t *testing.T) {
	exp := &fakeExporter{}
	l := newLedger(&fakeSaleRepo{sales: ledgerSales()}, exp)

	data, name, err := l.Export(context.Background(), dto.SaleFilterRequest{Status: "enviado"})
	require.NoError(t, err)
	assert.Equal(t, "ventas-2026-10-17.xlsx", name)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Len(t, exp.got, 2)
}

func TestLedger_Receipt(t *testing.T) {
	l := newLedger(&fakeSaleRepo{sales: ledgerSales()}, &fakeExporter{})
	b, err := l.Receipt(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, "pdf:s2", string(b))

	_, err = l.Receipt(context.Background(), "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
