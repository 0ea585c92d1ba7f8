package services

import (
	"fmt"
	"time"
)

// SpanishMonths holds the lowercase month names used in diligencia headers.
var SpanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatSpanishDate renders a timestamp in the long form used by diligencia
// documents: "HH:MM horas del día D de <mes> de YYYY".
func FormatSpanishDate(t time.Time) string {
	return fmt.Sprintf("%02d:%02d horas del día %d de %s de %d",
		t.Hour(), t.Minute(), t.Day(), SpanishMonths[t.Month()-1], t.Year())
}

// FormatSpanishDay renders a date without the time component:
// "D de <mes> de YYYY".
func FormatSpanishDay(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), SpanishMonths[t.Month()-1], t.Year())
}

// ParseDate parses a date string in ISO 8601 (standard for HTML5 date inputs)
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return parsedTime, nil
}
