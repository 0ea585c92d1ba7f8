package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"diligencias_app_go/middleware"
	"diligencias_app_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func postForm(t *testing.T, path string, form url.Values, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	_, c, rec := setupEcho(http.MethodPost, path, strings.NewReader(form.Encode()))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Set(middleware.ContextKeyUser, user)
	return c, rec
}

func TestEntitySaveHandlerCreatesAtestado(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	form := url.Values{}
	form.Set("kind", "atestado")
	form.Set("numero", "2025-C-001")
	form.Set("delito", "Robo con fuerza")
	form.Set("juzgado", "Juzgado nº 2 de Lugo")

	c, rec := postForm(t, "/entidades", form, user)

	assert.NoError(t, EntitySaveHandler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/entidades", rec.Header().Get("Location"))

	var record models.CaseRecord
	assert.NoError(t, testDB.First(&record, "numero = ?", "2025-C-001").Error)
	assert.Equal(t, user.ID, record.Usuario)
	assert.Equal(t, "Robo con fuerza", record.Delito)

	// The audit entry is written off the request path, so wait for it
	assert.Eventually(t, func() bool {
		var n int64
		testDB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID).Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	var audit models.AuditLog
	assert.NoError(t, testDB.First(&audit, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.AuditActionCreate, audit.Action)
}

func TestEntitySaveHandlerUpdatesExisting(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	record := &models.CaseRecord{Usuario: user.ID, Numero: "2025-C-001", Delito: "Robo", Juzgado: "Lugo"}
	assert.NoError(t, testDB.Create(record).Error)

	form := url.Values{}
	form.Set("kind", "atestado")
	form.Set("id", "1")
	form.Set("numero", "2025-C-001")
	form.Set("delito", "Hurto")
	form.Set("juzgado", "Lugo")

	c, rec := postForm(t, "/entidades", form, user)

	assert.NoError(t, EntitySaveHandler(c))
	assert.Equal(t, "/entidades", rec.Header().Get("Location"))

	var reloaded models.CaseRecord
	testDB.First(&reloaded, record.ID)
	assert.Equal(t, "Hurto", reloaded.Delito)
}

func TestEntitySaveHandlerValidationErrorHTMX(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	// Missing delito and juzgado
	form := url.Values{}
	form.Set("kind", "atestado")
	form.Set("numero", "2025-C-001")

	c, rec := postForm(t, "/entidades", form, user)
	c.Request().Header.Set("HX-Request", "true")

	assert.NoError(t, EntitySaveHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-error")

	var count int64
	testDB.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEntitySaveHandlerUnknownKind(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	form := url.Values{}
	form.Set("kind", "expediente")

	c, _ := postForm(t, "/entidades", form, user)

	err := EntitySaveHandler(c)
	assert.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestEntityDeleteHandlerScopedToOwner(t *testing.T) {
	testDB := setupTestDB(t)
	owner := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")
	intruder := createTestUser(t, testDB, "otro@example.com", "Str0ng!Password123")

	record := &models.CaseRecord{Usuario: owner.ID, Numero: "2025-C-001", Delito: "Robo", Juzgado: "Lugo"}
	assert.NoError(t, testDB.Create(record).Error)

	// Another user's delete leaves the row untouched
	c, _ := postForm(t, "/entidades/atestado/1/borrar", url.Values{}, intruder)
	c.SetParamNames("kind", "id")
	c.SetParamValues("atestado", "1")
	assert.NoError(t, EntityDeleteHandler(c))

	var count int64
	testDB.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The owner's delete removes it
	c, rec := postForm(t, "/entidades/atestado/1/borrar", url.Values{}, owner)
	c.SetParamNames("kind", "id")
	c.SetParamValues("atestado", "1")
	assert.NoError(t, EntityDeleteHandler(c))
	assert.Equal(t, "/entidades", rec.Header().Get("Location"))

	testDB.Model(&models.CaseRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEntitiesDeleteAllHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")
	other := createTestUser(t, testDB, "otro@example.com", "Str0ng!Password123")

	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: user.ID, Numero: "A", Delito: "x", Juzgado: "y"}).Error)
	assert.NoError(t, testDB.Create(&models.Person{Usuario: user.ID, Nombre: "Luis", Apellido1: "Pérez", Documento: "123"}).Error)
	assert.NoError(t, testDB.Create(&models.Lawyer{Usuario: user.ID, LetradoTipo: "Oficio", Nombre: "Eva", Numero: "99"}).Error)
	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: other.ID, Numero: "B", Delito: "x", Juzgado: "y"}).Error)

	c, rec := postForm(t, "/entidades/borrar-todo", url.Values{}, user)

	assert.NoError(t, EntitiesDeleteAllHandler(c))
	assert.Equal(t, "/entidades", rec.Header().Get("Location"))

	var count int64
	testDB.Model(&models.CaseRecord{}).Where("usuario = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	testDB.Model(&models.Person{}).Where("usuario = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	testDB.Model(&models.Lawyer{}).Where("usuario = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Other users keep their rows
	testDB.Model(&models.CaseRecord{}).Where("usuario = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEntityCountsForDeleteAllConfirmation(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")
	other := createTestUser(t, testDB, "otro@example.com", "Str0ng!Password123")

	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: user.ID, Numero: "A", Delito: "x", Juzgado: "y"}).Error)
	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: user.ID, Numero: "B", Delito: "x", Juzgado: "y"}).Error)
	assert.NoError(t, testDB.Create(&models.Person{Usuario: user.ID, Nombre: "Luis", Apellido1: "Pérez", Documento: "123"}).Error)
	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: other.ID, Numero: "C", Delito: "x", Juzgado: "y"}).Error)

	vm := entityCounts(user.ID)
	assert.Equal(t, int64(2), vm.Atestados)
	assert.Equal(t, int64(1), vm.Personas)
	assert.Equal(t, int64(0), vm.Letrados)
	assert.Equal(t, int64(3), vm.Total())
}

func TestLoadWarningsKeepFixedOrder(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	// Two of the three tables failing must always report in the same order
	assert.NoError(t, testDB.Migrator().DropTable(&models.Person{}))
	assert.NoError(t, testDB.Migrator().DropTable(&models.Lawyer{}))

	for i := 0; i < 5; i++ {
		_, c, _ := setupEcho(http.MethodGet, "/entidades", nil)
		c.Set(middleware.ContextKeyUser, user)

		vm := buildEntitiesViewModel(c, user.ID)
		assert.Equal(t, []string{
			"No se pudieron cargar las personas",
			"No se pudieron cargar los letrados",
		}, vm.Warnings)
	}
}

func TestEntitiesExportHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	assert.NoError(t, testDB.Create(&models.CaseRecord{Usuario: user.ID, Numero: "2025-C-001", Delito: "Robo", Juzgado: "Lugo"}).Error)

	_, c, rec := setupEcho(http.MethodGet, "/entidades/exportar", nil)
	c.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, EntitiesExportHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "entidades_")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
