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

func setupEntityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.CaseRecord{}, &models.Person{}, &models.Lawyer{})
	assert.NoError(t, err)

	return db
}

const (
	userX = "11111111-1111-1111-1111-111111111111"
	userY = "22222222-2222-2222-2222-222222222222"
)

func TestSaveEntityValidation(t *testing.T) {
	db := setupEntityTestDB(t)

	// Missing juzgado
	err := SaveEntity(db, userX, NewAtestado(&models.CaseRecord{Numero: "2025-1353-001", Delito: "Robo"}))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	// Nothing was written
	var count int64
	db.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Missing documento on persona
	err = SaveEntity(db, userX, NewPersona(&models.Person{Nombre: "Ana", Apellido1: "García"}))
	assert.True(t, errors.Is(err, ErrValidation))

	// Missing tipo on letrado
	err = SaveEntity(db, userX, NewLetrado(&models.Lawyer{Nombre: "Luis Pérez", Numero: "4521"}))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSaveAndLoadEntitiesRoundtrip(t *testing.T) {
	db := setupEntityTestDB(t)

	err := SaveEntity(db, userX, NewAtestado(&models.CaseRecord{
		Numero: "2025-1353-001", Delito: "Robo con fuerza", Juzgado: "JPI nº 2 de Lugo",
	}))
	assert.NoError(t, err)

	err = SaveEntity(db, userX, NewPersona(&models.Person{
		Nombre: "Ana", Apellido1: "García", Documento: "12345678Z",
		Relacion: "Denunciante", Atestado: "2025-1353-001",
	}))
	assert.NoError(t, err)

	err = SaveEntity(db, userX, NewLetrado(&models.Lawyer{
		LetradoTipo: "Victima", Nombre: "Luis Pérez", Numero: "4521", Atestado: "2025-1353-001",
	}))
	assert.NoError(t, err)

	entities, loadErrs := LoadEntities(db, userX)
	assert.Nil(t, loadErrs)
	assert.Len(t, entities, 3)

	// Every loaded row belongs to userX
	for _, e := range entities {
		switch e.Kind {
		case KindAtestado:
			assert.Equal(t, userX, e.Atestado.Usuario)
		case KindPersona:
			assert.Equal(t, userX, e.Persona.Usuario)
		case KindLetrado:
			assert.Equal(t, userX, e.Letrado.Usuario)
		}
	}

	// Another user sees nothing
	entities, loadErrs = LoadEntities(db, userY)
	assert.Nil(t, loadErrs)
	assert.Empty(t, entities)
}

func TestLoadEntitiesSortedNewestFirst(t *testing.T) {
	db := setupEntityTestDB(t)

	old := time.Now().Add(-2 * time.Hour)
	mid := time.Now().Add(-1 * time.Hour)

	db.Create(&models.CaseRecord{Numero: "A-1", Delito: "x", Juzgado: "y", Usuario: userX, CreatedAt: old})
	db.Create(&models.Person{Nombre: "Ana", Apellido1: "García", Documento: "1", Usuario: userX, CreatedAt: mid})
	db.Create(&models.Lawyer{LetradoTipo: "Autor", Nombre: "Luis", Numero: "2", Usuario: userX, CreatedAt: time.Now()})

	entities, loadErrs := LoadEntities(db, userX)
	assert.Nil(t, loadErrs)
	assert.Len(t, entities, 3)
	assert.Equal(t, KindLetrado, entities[0].Kind)
	assert.Equal(t, KindPersona, entities[1].Kind)
	assert.Equal(t, KindAtestado, entities[2].Kind)
}

func TestUpdateEntityScopedToOwner(t *testing.T) {
	db := setupEntityTestDB(t)

	record := &models.CaseRecord{Numero: "2025-1353-001", Delito: "Robo", Juzgado: "JPI 1"}
	assert.NoError(t, SaveEntity(db, userX, NewAtestado(record)))

	// Owner can update
	record.Delito = "Hurto"
	assert.NoError(t, SaveEntity(db, userX, NewAtestado(record)))

	var reloaded models.CaseRecord
	db.First(&reloaded, record.ID)
	assert.Equal(t, "Hurto", reloaded.Delito)

	// Another user cannot touch the row
	record.Delito = "Estafa"
	err := SaveEntity(db, userY, NewAtestado(record))
	assert.Error(t, err)

	db.First(&reloaded, record.ID)
	assert.Equal(t, "Hurto", reloaded.Delito)
}

func TestFilterEntitiesCaseInsensitive(t *testing.T) {
	db := setupEntityTestDB(t)

	assert.NoError(t, SaveEntity(db, userX, NewAtestado(&models.CaseRecord{
		Numero: "2025-1353-001", Delito: "ROBO CON FUERZA", Juzgado: "JPI 1",
	})))
	assert.NoError(t, SaveEntity(db, userX, NewPersona(&models.Person{
		Nombre: "Ana", Apellido1: "García", Documento: "12345678Z",
	})))

	entities, _ := LoadEntities(db, userX)

	upper := FilterEntities(entities, "ROBO")
	lower := FilterEntities(entities, "robo")
	assert.Len(t, upper, 1)
	assert.Equal(t, len(upper), len(lower))
	assert.Equal(t, upper[0].Key(), lower[0].Key())

	// Filtering an already filtered list changes nothing
	again := FilterEntities(upper, "robo")
	assert.Equal(t, upper, again)

	// Empty filter matches everything
	assert.Len(t, FilterEntities(entities, "  "), 2)

	// Documento matches for personas
	byDoc := FilterEntities(entities, "12345678z")
	assert.Len(t, byDoc, 1)
	assert.Equal(t, KindPersona, byDoc[0].Kind)
}

func TestSortSelectedStablePartition(t *testing.T) {
	now := time.Now()
	entities := []Entity{
		NewAtestado(&models.CaseRecord{ID: 1, Numero: "A", CreatedAt: now}),
		NewPersona(&models.Person{ID: 2, Nombre: "Ana", CreatedAt: now}),
		NewAtestado(&models.CaseRecord{ID: 3, Numero: "B", CreatedAt: now}),
		NewLetrado(&models.Lawyer{ID: 4, Nombre: "Luis", CreatedAt: now}),
	}

	selected := map[string]bool{"persona-2": true, "letrado-4": true}

	sorted := SortSelected(entities, selected)
	assert.Equal(t, "persona-2", sorted[0].Key())
	assert.Equal(t, "letrado-4", sorted[1].Key())
	assert.Equal(t, "atestado-1", sorted[2].Key())
	assert.Equal(t, "atestado-3", sorted[3].Key())

	// Input slice untouched
	assert.Equal(t, "atestado-1", entities[0].Key())

	// No selection returns the same order
	same := SortSelected(entities, nil)
	assert.Equal(t, entities, same)
}

func TestDeleteEntityScopedToOwner(t *testing.T) {
	db := setupEntityTestDB(t)

	record := &models.CaseRecord{Numero: "2025-1353-001", Delito: "Robo", Juzgado: "JPI 1"}
	assert.NoError(t, SaveEntity(db, userX, NewAtestado(record)))

	// Another user's delete is a no-op
	assert.NoError(t, DeleteEntity(db, userY, KindAtestado, record.ID))
	var count int64
	db.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Owner's delete removes the row
	assert.NoError(t, DeleteEntity(db, userX, KindAtestado, record.ID))
	db.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteAllEntitiesLeavesOtherUsers(t *testing.T) {
	db := setupEntityTestDB(t)

	assert.NoError(t, SaveEntity(db, userX, NewAtestado(&models.CaseRecord{Numero: "X-1", Delito: "a", Juzgado: "b"})))
	assert.NoError(t, SaveEntity(db, userX, NewPersona(&models.Person{Nombre: "Ana", Apellido1: "García", Documento: "1"})))
	assert.NoError(t, SaveEntity(db, userX, NewLetrado(&models.Lawyer{LetradoTipo: "Autor", Nombre: "Luis", Numero: "2"})))
	assert.NoError(t, SaveEntity(db, userY, NewAtestado(&models.CaseRecord{Numero: "Y-1", Delito: "c", Juzgado: "d"})))

	errs := DeleteAllEntities(db, userX)
	assert.Nil(t, errs)

	entities, _ := LoadEntities(db, userX)
	assert.Empty(t, entities)

	entities, _ = LoadEntities(db, userY)
	assert.Len(t, entities, 1)
	assert.Equal(t, "Y-1", entities[0].Atestado.Numero)
}

func TestAvailableCaseNumbers(t *testing.T) {
	now := time.Now()
	entities := []Entity{
		NewAtestado(&models.CaseRecord{ID: 1, Numero: "2025-1353-002", CreatedAt: now}),
		NewPersona(&models.Person{ID: 2, Nombre: "Ana", CreatedAt: now}),
		NewAtestado(&models.CaseRecord{ID: 3, Numero: "2025-1353-001", CreatedAt: now}),
	}

	numbers := AvailableCaseNumbers(entities)
	assert.Equal(t, []string{"2025-1353-001", "2025-1353-002"}, numbers)
}

func TestParseEntityKind(t *testing.T) {
	kind, err := ParseEntityKind("persona")
	assert.NoError(t, err)
	assert.Equal(t, KindPersona, kind)

	_, err = ParseEntityKind("empresa")
	assert.Error(t, err)
}
