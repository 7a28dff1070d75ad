// Package period calcula rangos de fecha ("hoy", "este mes") en la zona horaria de la tienda.
package period

import (
	"fmt"
	"time"
)

// DayLayout formato de fecha usado en la API (YYYY-MM-DD).
const DayLayout = "2006-01-02"

// Range intervalo [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// Day rango del día calendario de t en loc.
func Day(t time.Time, loc *time.Location) Range {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return Range{From: start, To: start.AddDate(0, 0, 1)}
}

// Month rango del mes calendario de t en loc.
func Month(t time.Time, loc *time.Location) Range {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return Range{From: start, To: start.AddDate(0, 1, 0)}
}

// ParseDay interpreta YYYY-MM-DD en loc. Vacío = hoy.
func ParseDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return Day(now, loc).From, nil
	}
	d, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (se espera YYYY-MM-DD)", s)
	}
	return d, nil
}

// MonthLabel etiqueta legible del mes, ej: "octubre 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
