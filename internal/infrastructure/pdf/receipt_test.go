package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/pdf"
)

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	phone := "5555-1234"
	sale := &entity.Sale{
		ID:            "3f2c1a9e-0000-4000-8000-000000000001",
		CustomerName:  "Ana López",
		CustomerPhone: &phone,
		Total:         decimal.RequireFromString("22.00"),
		DTFCost:       decimal.RequireFromString("3.00"),
		Status:        entity.SaleStatusPendiente,
		CreatedAt:     time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC),
		Items: []entity.SaleItem{
			{ProductName: "Camisa", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductName: "Taza", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}

	b, err := pdf.NewReceiptGenerator("Tienda DTF", "Q").RenderReceipt(sale, time.UTC)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe ser un PDF")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3F2C1A9E", pdf.ShortID("3f2c1a9e-0000-4000-8000-000000000001"))
	assert.Equal(t, "AB", pdf.ShortID("ab"))
}
