package services

import (
	"errors"
	"testing"
	"time"

	"diligencias_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEventTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Event{})
	assert.NoError(t, err)

	return db
}

func TestCreateEventSequentialNumbering(t *testing.T) {
	db := setupEventTestDB(t)

	first, err := CreateEvent(db, userX, "Primera anotación")
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Numero)

	second, err := CreateEvent(db, userX, "Segunda anotación")
	assert.NoError(t, err)
	assert.Equal(t, 2, second.Numero)

	// Numbering is per user
	other, err := CreateEvent(db, userY, "Anotación de otro usuario")
	assert.NoError(t, err)
	assert.Equal(t, 1, other.Numero)
}

func TestCreateEventSanitizesDescription(t *testing.T) {
	db := setupEventTestDB(t)

	event, err := CreateEvent(db, userX, `Relevo <script>alert("x")</script> de servicio`)
	assert.NoError(t, err)
	assert.NotContains(t, event.Descripcion, "<script>")
	assert.Contains(t, event.Descripcion, "Relevo")
}

func TestCreateEventRequiresDescription(t *testing.T) {
	db := setupEventTestDB(t)

	_, err := CreateEvent(db, userX, "   ")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateEventScopedToOwner(t *testing.T) {
	db := setupEventTestDB(t)

	event, err := CreateEvent(db, userX, "Texto original")
	assert.NoError(t, err)

	assert.NoError(t, UpdateEvent(db, userX, event.ID, "Texto corregido"))

	reloaded, err := GetEvent(db, userX, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Texto corregido", reloaded.Descripcion)
	assert.Equal(t, event.Numero, reloaded.Numero)

	// Another user cannot edit it
	err = UpdateEvent(db, userY, event.ID, "Intrusión")
	assert.Error(t, err)
}

func TestDeleteEventScopedToOwner(t *testing.T) {
	db := setupEventTestDB(t)

	event, err := CreateEvent(db, userX, "Para borrar")
	assert.NoError(t, err)

	assert.Error(t, DeleteEvent(db, userY, event.ID))
	assert.NoError(t, DeleteEvent(db, userX, event.ID))

	_, err = GetEvent(db, userX, event.ID)
	assert.Error(t, err)
}

func TestListEventsNewestFirst(t *testing.T) {
	db := setupEventTestDB(t)

	_, err := CreateEvent(db, userX, "Primero")
	assert.NoError(t, err)
	second, err := CreateEvent(db, userX, "Segundo")
	assert.NoError(t, err)

	// Force distinct timestamps
	db.Model(&models.Event{}).Where("id = ?", second.ID).
		Update("created_at", second.CreatedAt.Add(time.Second))

	events, err := ListEvents(db, userX)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "Segundo", events[0].Descripcion)
}
