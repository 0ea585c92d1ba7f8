package services

import (
	"testing"

	"diligencias_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestDiligenciaCatalog(t *testing.T) {
	assert.Len(t, DiligenciaCatalog, 31)

	// Only the three implemented documents carry a form page
	withForm := 0
	for _, d := range DiligenciaCatalog {
		if d.FormPath != "" {
			withForm++
		}
	}
	assert.Equal(t, 3, withForm)
}

func TestFindDiligencia(t *testing.T) {
	d, ok := FindDiligencia(1)
	assert.True(t, ok)
	assert.Equal(t, "Diligencia de Archivo", d.Titulo)

	_, ok = FindDiligencia(99)
	assert.False(t, ok)
}

func TestFilterDiligencias(t *testing.T) {
	all := FilterDiligencias("")
	assert.Len(t, all, 31)

	// Matches by type tag, case-insensitive
	viogen := FilterDiligencias("viogen")
	assert.NotEmpty(t, viogen)
	for _, d := range viogen {
		found := false
		for _, tag := range d.Tipos {
			if tag == "VIOGEN" {
				found = true
			}
		}
		assert.True(t, found, "expected VIOGEN tag on %q", d.Titulo)
	}

	// Matches by title substring
	archivo := FilterDiligencias("ARCHIVO")
	assert.NotEmpty(t, archivo)

	none := FilterDiligencias("zzzzz")
	assert.Empty(t, none)
}

func TestHiddenUnitFieldsDefaults(t *testing.T) {
	fields := HiddenUnitFields(nil)
	assert.Len(t, fields, 9)
	for name, value := range fields {
		assert.Equal(t, MissingUnitValue, value, "field %s", name)
	}
}

func TestHiddenUnitFieldsFromConfig(t *testing.T) {
	cfg := &models.UnitConfig{
		Comandancia: "Lugo",
		Puesto:      "Monforte de Lemos",
		Telefono:    "  982400000  ",
	}

	fields := HiddenUnitFields(cfg)
	assert.Equal(t, "Lugo", fields["datos_comandancia"])
	assert.Equal(t, "982400000", fields["datos_telefono"])
	// Unset fields keep the sentinel
	assert.Equal(t, MissingUnitValue, fields["datos_email"])
	assert.Equal(t, MissingUnitValue, fields["datos_cp"])
}
