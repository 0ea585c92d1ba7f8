package services

import (
	"fmt"

	"diligencias_app_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUnitConfig loads the unit configuration row for a user. A missing row is
// not an error: it returns nil so callers can render empty forms and default
// the hidden document fields.
func GetUnitConfig(db *gorm.DB, userID string) (*models.UnitConfig, error) {
	var cfg models.UnitConfig
	err := db.Where("usuario = ?", userID).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load unit config: %w", err)
	}
	return &cfg, nil
}

// SaveUnitConfig upserts the unit configuration keyed on the owning user,
// keeping the at-most-one-row-per-user invariant.
func SaveUnitConfig(db *gorm.DB, userID string, cfg *models.UnitConfig) error {
	cfg.Usuario = userID

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tip", "comandancia", "compania", "puesto", "localidad",
			"telefono", "email", "direccion", "provincia", "cp",
			"partido_judicial", "codigo_unidad", "zona",
		}),
	}).Create(cfg).Error
	if err != nil {
		return fmt.Errorf("failed to save unit config: %w", err)
	}
	return nil
}
