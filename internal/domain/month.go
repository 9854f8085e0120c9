package domain

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout formato de mes usado en filtros y reportes (YYYY-MM).
const MonthLayout = "2006-01"

// ParseMonth interpreta un filtro YYYY-MM y devuelve el primer día del mes (UTC).
// Vacío = mes de now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: mes %q, formato esperado YYYY-MM", ErrInvalidInput, s)
	}
	return t, nil
}

// MonthRange devuelve [inicio, inicio del mes siguiente).
func MonthRange(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Today fecha de hoy sin componente horario (UTC).
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
