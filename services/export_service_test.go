package services

import (
	"bytes"
	"testing"

	"diligencias_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupExportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.CaseRecord{}, &models.Person{}, &models.Lawyer{})
	assert.NoError(t, err)

	return db
}

func TestExportEntitiesExcel(t *testing.T) {
	db := setupExportTestDB(t)

	assert.NoError(t, SaveEntity(db, userX, NewAtestado(&models.CaseRecord{
		Numero: "2025-1353-001", Delito: "Robo", Juzgado: "JPI 1",
	})))
	assert.NoError(t, SaveEntity(db, userX, NewPersona(&models.Person{
		Nombre: "Ana", Apellido1: "García", Documento: "12345678Z",
	})))
	// Another user's rows must not leak into the export
	assert.NoError(t, SaveEntity(db, userY, NewAtestado(&models.CaseRecord{
		Numero: "Y-1", Delito: "Hurto", Juzgado: "JPI 2",
	})))

	buf, err := ExportEntitiesExcel(db, userX)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Atestados", "Personas", "Letrados"}, f.GetSheetList())

	rows, err := f.GetRows("Atestados")
	assert.NoError(t, err)
	assert.Len(t, rows, 2) // header + one row
	assert.Equal(t, "2025-1353-001", rows[1][0])

	rows, err = f.GetRows("Personas")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[1][0])

	rows, err = f.GetRows("Letrados")
	assert.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
