// Package numeric modela campos numéricos de formulario donde "vacío" no es lo mismo que cero.
package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Optional es un decimal que puede no estar definido. El valor cero (Optional{}) es "sin definir".
type Optional struct {
	value decimal.Decimal
	set   bool
}

// Of construye un Optional definido.
func Of(d decimal.Decimal) Optional {
	return Optional{value: d, set: true}
}

// Parse interpreta la entrada de un campo de texto. Cadena vacía (o solo espacios) = sin definir.
// Acepta coma decimal ("12,50").
func Parse(s string) (Optional, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Optional{}, nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return Optional{}, fmt.Errorf("número inválido %q", s)
	}
	return Of(d), nil
}

// IsSet indica si el campo tiene valor.
func (o Optional) IsSet() bool { return o.set }

// Or devuelve el valor o def si no está definido.
func (o Optional) Or(def decimal.Decimal) decimal.Decimal {
	if !o.set {
		return def
	}
	return o.value
}

// OrZero devuelve el valor o cero.
func (o Optional) OrZero() decimal.Decimal {
	return o.Or(decimal.Zero)
}

// IntOr devuelve la parte entera del valor o def. Error si el valor tiene decimales.
func (o Optional) IntOr(def int) (int, error) {
	if !o.set {
		return def, nil
	}
	if !o.value.Equal(o.value.Truncate(0)) {
		return 0, fmt.Errorf("se esperaba un entero: %s", o.value.String())
	}
	return int(o.value.IntPart()), nil
}

// IsNegative indica si el valor está definido y es menor que cero.
func (o Optional) IsNegative() bool {
	return o.set && o.value.IsNegative()
}

// String devuelve "" si no está definido.
func (o Optional) String() string {
	if !o.set {
		return ""
	}
	return o.value.String()
}

// UnmarshalJSON acepta número, string numérico, "" o null. "" y null quedan sin definir.
func (o *Optional) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*o = Optional{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("número inválido: %w", err)
	}
	*o = Of(d)
	return nil
}

// MarshalJSON escribe null si no está definido.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return o.value.MarshalJSON()
}
