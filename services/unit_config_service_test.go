package services

import (
	"testing"

	"diligencias_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUnitConfigTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.UnitConfig{})
	assert.NoError(t, err)

	return db
}

func TestGetUnitConfigMissingRow(t *testing.T) {
	db := setupUnitConfigTestDB(t)

	cfg, err := GetUnitConfig(db, userX)
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSaveUnitConfigUpsert(t *testing.T) {
	db := setupUnitConfigTestDB(t)

	err := SaveUnitConfig(db, userX, &models.UnitConfig{
		Comandancia:  "Lugo",
		Puesto:       "Monforte de Lemos",
		CodigoUnidad: "1353",
	})
	assert.NoError(t, err)

	// Saving again replaces the row instead of adding another
	err = SaveUnitConfig(db, userX, &models.UnitConfig{
		Comandancia:  "Lugo",
		Puesto:       "Sarria",
		CodigoUnidad: "1353",
	})
	assert.NoError(t, err)

	var count int64
	db.Model(&models.UnitConfig{}).Where("usuario = ?", userX).Count(&count)
	assert.Equal(t, int64(1), count)

	cfg, err := GetUnitConfig(db, userX)
	assert.NoError(t, err)
	assert.Equal(t, "Sarria", cfg.Puesto)

	// Other users keep their own row
	err = SaveUnitConfig(db, userY, &models.UnitConfig{Puesto: "Chantada"})
	assert.NoError(t, err)

	cfg, err = GetUnitConfig(db, userY)
	assert.NoError(t, err)
	assert.Equal(t, "Chantada", cfg.Puesto)

	cfg, err = GetUnitConfig(db, userX)
	assert.NoError(t, err)
	assert.Equal(t, "Sarria", cfg.Puesto)
}
