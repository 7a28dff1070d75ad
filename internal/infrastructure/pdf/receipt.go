// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A5:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda │ N° + Fecha    │
//	│  ─────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + estado         │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal  │
//	│  ─────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Costo DTF / TOTAL       │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ sale.ReceiptRenderer = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sale.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
	currency  string
}

// NewReceiptGenerator construye el generador con el nombre de la tienda y el símbolo de moneda.
func NewReceiptGenerator(storeName, currency string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName, currency: currency}
}

// RenderReceipt genera el PDF y devuelve sus bytes. Las fechas se muestran en loc.
func (g *ReceiptGenerator) RenderReceipt(sale *entity.Sale, loc *time.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y número corto + fecha (der).
func (g *ReceiptGenerator) headerRow(sale *entity.Sale, loc *time.Location) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta", props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("N° "+ShortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(sale.CreatedAt.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// customerRow: nombre, teléfono y estado de entrega.
func customerRow(sale *entity.Sale) core.Row {
	return row.New(13).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Tel: %s   |   Estado: %s", nonEmpty(sale.Phone(), "-"), sale.Status), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *ReceiptGenerator) itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.Format(it.UnitPrice, g.currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.Format(it.Subtotal(), g.currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow: subtotal de líneas, costo DTF y total cobrado.
func (g *ReceiptGenerator) totalsRow(sale *entity.Sale) core.Row {
	subtotal := decimal.Zero
	for _, it := range sale.Items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	label := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	value := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1, false),
			label("Costo DTF:", 6, false),
			label("TOTAL:", 12, true),
		),
		col.New(4).Add(
			value(money.Format(subtotal, g.currency), 1, false),
			value("-"+money.Format(sale.DTFCost, g.currency), 6, false),
			value(money.Format(sale.Total, g.currency), 12, true),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// ShortID primeros 8 caracteres del UUID en mayúsculas, para mostrar al cliente.
func ShortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
