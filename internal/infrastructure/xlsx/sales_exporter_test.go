package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/xlsx"
)

func TestExportSales_UnaFilaPorItem(t *testing.T) {
	sales := []*entity.Sale{
		{
			ID: "s1", CustomerName: "Ana", Total: decimal.NewFromInt(25), Status: entity.SaleStatusEnviado,
			CreatedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
			Items: []entity.SaleItem{
				{ProductName: "Camisa", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
				{ProductName: "Taza", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			},
		},
	}

	b, err := xlsx.NewSalesExporter().ExportSales(sales, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Fecha", "Cliente", "Telefono", "Producto", "Cantidad", "Precio", "Total_Q", "Estado"}, rows[0])
	assert.Equal(t, "2026-10-17 09:30", rows[1][0])
	assert.Equal(t, "Camisa", rows[1][3])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "25", rows[1][6])
	assert.Equal(t, "enviado", rows[1][7])
	assert.Equal(t, "Taza", rows[2][3])
}

func TestExportSales_SinVentas(t *testing.T) {
	b, err := xlsx.NewSalesExporter().ExportSales(nil, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
