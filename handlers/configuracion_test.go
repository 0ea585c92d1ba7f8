package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/stretchr/testify/assert"
)

func configForm() url.Values {
	form := url.Values{}
	form.Set("tip", "A12345")
	form.Set("comandancia", "Lugo")
	form.Set("compania", "Monforte de Lemos")
	form.Set("puesto", "Chantada")
	form.Set("localidad", "Chantada")
	form.Set("telefono", "982440000")
	form.Set("email", "chantada@guardiacivil.es")
	form.Set("direccion", "Rúa Uxío Novoneyra 1")
	form.Set("provincia", "Lugo")
	form.Set("cp", "27500")
	form.Set("partido_judicial", "Chantada")
	form.Set("codigo_unidad", "L-123")
	form.Set("zona", "Galicia")
	return form
}

func TestConfiguracionSaveHandlerCreates(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	c, rec := postForm(t, "/configuracion", configForm(), user)

	assert.NoError(t, ConfiguracionSaveHandler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/configuracion", rec.Header().Get("Location"))

	cfg, err := services.GetUnitConfig(testDB, user.ID)
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "Lugo", cfg.Comandancia)
	assert.Equal(t, "L-123", cfg.CodigoUnidad)
}

func TestConfiguracionSaveHandlerUpsertsSingleRow(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	c, _ := postForm(t, "/configuracion", configForm(), user)
	assert.NoError(t, ConfiguracionSaveHandler(c))

	form := configForm()
	form.Set("puesto", "Sarria")
	c, _ = postForm(t, "/configuracion", form, user)
	assert.NoError(t, ConfiguracionSaveHandler(c))

	var count int64
	testDB.Model(&models.UnitConfig{}).Where("usuario = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	cfg, err := services.GetUnitConfig(testDB, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Sarria", cfg.Puesto)
}

func TestConfiguracionSaveHandlerHTMXSuccess(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	c, rec := postForm(t, "/configuracion", configForm(), user)
	c.Request().Header.Set("HX-Request", "true")

	assert.NoError(t, ConfiguracionSaveHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Configuración guardada correctamente")
}
