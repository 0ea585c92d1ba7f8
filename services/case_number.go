package services

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCaseNumber builds the prefix pre-seeded into the atestado number
// field when creating a CaseRecord: "{year}-{unitCode}-", matching the
// unit's numbering convention (e.g. "2025-1353-"). It is a convenience
// default only; free-text edits are accepted as-is. Returns "" when the
// user has not configured a unit code yet.
func DefaultCaseNumber(unitCode string, now time.Time) string {
	unitCode = strings.TrimSpace(unitCode)
	if unitCode == "" {
		return ""
	}
	return fmt.Sprintf("%d-%s-", now.Year(), unitCode)
}
