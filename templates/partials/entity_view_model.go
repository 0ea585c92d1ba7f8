package partials

import (
	"diligencias_app_go/services"
)

// EntitiesViewModel carries everything the entity manager needs: the merged
// entity list (already filtered and selection-sorted), the transient
// selection set and warnings from tables that failed to load.
type EntitiesViewModel struct {
	Filter            string
	Entities          []services.Entity
	Selected          map[string]bool
	Warnings          []string
	CaseNumbers       []string
	DefaultCaseNumber string
}

// SelectedCount returns how many entities are currently selected.
func (vm EntitiesViewModel) SelectedCount() int {
	n := 0
	for _, v := range vm.Selected {
		if v {
			n++
		}
	}
	return n
}
