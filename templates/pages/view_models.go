package pages

import (
	"sort"

	"diligencias_app_go/models"
	"diligencias_app_go/services"
)

// DocumentFormViewModel backs the diligencia form pages. Action is the full
// renderer URL the form posts to; HiddenFields are the datos_* unit values.
type DocumentFormViewModel struct {
	Title        string
	Action       string
	CaseNumbers  []string
	HiddenFields map[string]string
	Today        string
}

// HiddenFieldNames returns the datos_* field names in a stable order.
func (vm DocumentFormViewModel) HiddenFieldNames() []string {
	names := make([]string, 0, len(vm.HiddenFields))
	for name := range vm.HiddenFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DashboardViewModel carries the per-user record counts shown on the
// dashboard cards.
type DashboardViewModel struct {
	Atestados int64
	Personas  int64
	Letrados  int64
	Eventos   int64
}

// DeleteAllViewModel carries the per-table row counts enumerated on the
// delete-all confirmation page.
type DeleteAllViewModel struct {
	Atestados int64
	Personas  int64
	Letrados  int64
}

// Total returns the number of rows a delete-all would remove.
func (vm DeleteAllViewModel) Total() int64 {
	return vm.Atestados + vm.Personas + vm.Letrados
}

// DiligenciasViewModel backs the catalog index page.
type DiligenciasViewModel struct {
	Query string
	Items []services.DiligenciaType
}

// ConfiguracionViewModel backs the unit configuration page. Config is nil
// until the user saves for the first time.
type ConfiguracionViewModel struct {
	Config *models.UnitConfig
}

// Value returns a config field or "" when no row exists yet.
func (vm ConfiguracionViewModel) Value(get func(*models.UnitConfig) string) string {
	if vm.Config == nil {
		return ""
	}
	return get(vm.Config)
}
