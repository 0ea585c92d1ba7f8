package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSpanishDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "09:05 horas del día 7 de marzo de 2025", FormatSpanishDate(ts))

	ts = time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "23:59 horas del día 31 de diciembre de 2024", FormatSpanishDate(ts))
}

func TestFormatSpanishDay(t *testing.T) {
	ts := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 de enero de 2025", FormatSpanishDay(ts))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-03-07")
	assert.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 7, parsed.Day())

	_, err = ParseDate("07/03/2025")
	assert.Error(t, err)
}

func TestDefaultCaseNumber(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-1353-", DefaultCaseNumber("1353", now))
	assert.Equal(t, "2025-1353-", DefaultCaseNumber("  1353  ", now))
	assert.Equal(t, "", DefaultCaseNumber("", now))
	assert.Equal(t, "", DefaultCaseNumber("   ", now))
}
