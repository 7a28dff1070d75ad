// Package xlsx exporta el libro de ventas a Excel.
package xlsx

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

var _ sale.SalesExporter = (*SalesExporter)(nil)

// SheetName hoja única del libro exportado.
const SheetName = "Ventas"

var headers = []string{"Fecha", "Cliente", "Telefono", "Producto", "Cantidad", "Precio", "Total_Q", "Estado"}

// SalesExporter implementa sale.SalesExporter con excelize.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// ExportSales escribe una fila por ítem vendido. Total_Q es el total de la venta
// y se repite en cada fila de la misma venta. Una venta sin ítems produce una fila vacía de producto.
func (e *SalesExporter) ExportSales(sales []*entity.Sale, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{
		headers[0], headers[1], headers[2], headers[3], headers[4], headers[5], headers[6], headers[7],
	}); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "H1", bold)
	}

	r := 2
	for _, s := range sales {
		fecha := s.CreatedAt.In(loc).Format("2006-01-02 15:04")
		total := s.Total.InexactFloat64()
		if len(s.Items) == 0 {
			if err := writeRow(f, r, fecha, s.CustomerName, s.Phone(), "", 0, 0.0, total, s.Status); err != nil {
				return nil, err
			}
			r++
			continue
		}
		for _, it := range s.Items {
			if err := writeRow(f, r, fecha, s.CustomerName, s.Phone(), it.ProductName,
				it.Quantity, it.UnitPrice.InexactFloat64(), total, s.Status); err != nil {
				return nil, err
			}
			r++
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 18)
	_ = f.SetColWidth(SheetName, "B", "D", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, r int, vals ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", r, err)
	}
	return nil
}
