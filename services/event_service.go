package services

import (
	"fmt"
	"strings"

	"diligencias_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var eventPolicy = bluemonday.StrictPolicy()

// ListEvents returns the user's events, newest first.
func ListEvents(db *gorm.DB, userID string) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("usuario = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent loads a single event scoped to its owner.
func GetEvent(db *gorm.DB, userID string, id uint) (*models.Event, error) {
	var event models.Event
	err := db.Where("id = ? AND usuario = ?", id, userID).First(&event).Error
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}
	return &event, nil
}

// CreateEvent stores a new event for the user, assigning the next sequential
// number within that user's events. The description is sanitized to plain
// text (XSS protection).
func CreateEvent(db *gorm.DB, userID string, descripcion string) (*models.Event, error) {
	descripcion = strings.TrimSpace(eventPolicy.Sanitize(descripcion))
	if descripcion == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", ErrValidation)
	}

	var maxNumero int
	row := db.Model(&models.Event{}).
		Where("usuario = ?", userID).
		Select("COALESCE(MAX(numero), 0)").
		Row()
	if err := row.Scan(&maxNumero); err != nil {
		return nil, fmt.Errorf("failed to compute event number: %w", err)
	}

	event := models.Event{
		Numero:      maxNumero + 1,
		Descripcion: descripcion,
		Usuario:     userID,
	}
	if err := db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// UpdateEvent rewrites an event's description, keeping its number.
func UpdateEvent(db *gorm.DB, userID string, id uint, descripcion string) error {
	descripcion = strings.TrimSpace(eventPolicy.Sanitize(descripcion))
	if descripcion == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", ErrValidation)
	}

	result := db.Model(&models.Event{}).
		Where("id = ? AND usuario = ?", id, userID).
		Update("descripcion", descripcion)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or access denied")
	}
	return nil
}

// DeleteEvent removes an event scoped to its owner.
func DeleteEvent(db *gorm.DB, userID string, id uint) error {
	result := db.Where("id = ? AND usuario = ?", id, userID).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or access denied")
	}
	return nil
}
