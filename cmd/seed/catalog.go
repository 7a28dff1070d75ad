package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// decodeText devuelve un lector UTF-8. Si los bytes no son UTF-8 válido se asumen ISO-8859-1.
func decodeText(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

// parseCatalog lee name,sku,stock,cost,price. Acepta ',' o ';' como separador y una fila de
// encabezado opcional. Numéricos vacíos valen 0.
func parseCatalog(raw []byte) ([]*entity.Product, error) {
	r := csv.NewReader(decodeText(raw))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if firstLine, _, _ := bytes.Cut(raw, []byte("\n")); bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		r.Comma = ';'
	}

	var out []*entity.Product
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) == 0 || strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		p, err := productFrom(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	h := strings.ToLower(strings.TrimSpace(rec[0]))
	return h == "name" || h == "nombre"
}

func productFrom(rec []string) (*entity.Product, error) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	name := field(0)
	if name == "" {
		return nil, errors.New("nombre vacío")
	}
	p := &entity.Product{Name: name, Active: true}
	if sku := field(1); sku != "" {
		p.SKU = &sku
	}

	stock, err := numeric.Parse(field(2))
	if err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	if p.Stock, err = stock.IntOr(0); err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	cost, err := numeric.Parse(field(3))
	if err != nil {
		return nil, fmt.Errorf("costo: %w", err)
	}
	price, err := numeric.Parse(field(4))
	if err != nil {
		return nil, fmt.Errorf("precio: %w", err)
	}
	p.Cost, p.Price = cost.OrZero(), price.OrZero()
	if p.Stock < 0 || p.Cost.IsNegative() || p.Price.IsNegative() {
		return nil, errors.New("stock, costo y precio no pueden ser negativos")
	}
	return p, nil
}
