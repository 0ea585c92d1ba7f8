package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/stretchr/testify/assert"
)

func TestEventCreateHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	form := url.Values{}
	form.Set("descripcion", "Comparecencia del denunciante")

	c, rec := postForm(t, "/eventos", form, user)

	assert.NoError(t, EventCreateHandler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/eventos", rec.Header().Get("Location"))

	var event models.Event
	assert.NoError(t, testDB.First(&event, "usuario = ?", user.ID).Error)
	assert.Equal(t, 1, event.Numero)
	assert.Equal(t, "Comparecencia del denunciante", event.Descripcion)
}

func TestEventCreateHandlerEmptyDescriptionHTMX(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	form := url.Values{}
	form.Set("descripcion", "   ")

	c, rec := postForm(t, "/eventos", form, user)
	c.Request().Header.Set("HX-Request", "true")

	assert.NoError(t, EventCreateHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "La descripción es obligatoria")

	var count int64
	testDB.Model(&models.Event{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEventUpdateHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	event, err := services.CreateEvent(testDB, user.ID, "Texto original")
	assert.NoError(t, err)

	form := url.Values{}
	form.Set("descripcion", "Texto corregido")

	c, rec := postForm(t, "/eventos/1", form, user)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, EventUpdateHandler(c))
	assert.Equal(t, "/eventos", rec.Header().Get("Location"))

	var reloaded models.Event
	testDB.First(&reloaded, event.ID)
	assert.Equal(t, "Texto corregido", reloaded.Descripcion)
}

func TestEventDeleteHandlerScopedToOwner(t *testing.T) {
	testDB := setupTestDB(t)
	owner := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")
	intruder := createTestUser(t, testDB, "otro@example.com", "Str0ng!Password123")

	_, err := services.CreateEvent(testDB, owner.ID, "Evento del titular")
	assert.NoError(t, err)

	c, rec := postForm(t, "/eventos/1/borrar", url.Values{}, intruder)
	c.Request().Header.Set("HX-Request", "true")
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, EventDeleteHandler(c))
	assert.Contains(t, rec.Body.String(), "alert-error")

	var count int64
	testDB.Model(&models.Event{}).Count(&count)
	assert.Equal(t, int64(1), count)

	c, rec = postForm(t, "/eventos/1/borrar", url.Values{}, owner)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, EventDeleteHandler(c))
	assert.Equal(t, "/eventos", rec.Header().Get("Location"))

	testDB.Model(&models.Event{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
