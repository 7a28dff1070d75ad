// Package money formatea montos para reportes y pantallas: símbolo, separador de miles y dos decimales.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Guatemala usa punto decimal y coma de miles, igual que en-US.
var printer = message.NewPrinter(language.AmericanEnglish)

// Format devuelve el monto con símbolo, ej: Format(1234.5, "Q") = "Q1,234.50".
func Format(d decimal.Decimal, symbol string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + symbol + printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
