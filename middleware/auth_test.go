package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"diligencias_app_go/db"
	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.User{}, &models.Session{})
	assert.NoError(t, err)

	db.DB = testDB
	return testDB
}

func TestGuardRedirect(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		path          string
		wantTarget    string
		wantOK        bool
	}{
		{"anonymous on protected page", false, "/entidades", "/login", false},
		{"anonymous on root", false, "/", "/login", false},
		{"anonymous on login", false, "/login", "", true},
		{"anonymous on signup", false, "/signup", "", true},
		{"anonymous on reset link", false, "/reset-password/abc", "", true},
		{"authenticated on protected page", true, "/entidades", "", true},
		{"authenticated on root", true, "/", "", true},
		{"authenticated on login", true, "/login", "/", false},
		{"authenticated on forgot password", true, "/forgot-password", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := GuardRedirect(tt.authenticated, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	setupAuthTestDB(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entidades", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuth()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthHTMXRedirect(t *testing.T) {
	setupAuthTestDB(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entidades", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuth()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestRequireAuthInvalidToken(t *testing.T) {
	setupAuthTestDB(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entidades", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuth()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthValidSession(t *testing.T) {
	testDB := setupAuthTestDB(t)

	user, err := services.RegisterUser(testDB, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)

	session, err := services.CreateSession(testDB, user.ID, "", "")
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entidades", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = RequireAuth()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, user.ID, GetCurrentUser(c).ID)
}

func TestRequireAuthInactiveUser(t *testing.T) {
	testDB := setupAuthTestDB(t)

	user, err := services.RegisterUser(testDB, "Ana García", "ana@example.com", "Str0ng!Password123")
	assert.NoError(t, err)

	session, err := services.CreateSession(testDB, user.ID, "", "")
	assert.NoError(t, err)

	testDB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entidades", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = RequireAuth()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGetUserScopedQuery(t *testing.T) {
	testDB := setupAuthTestDB(t)

	user := &models.User{Name: "Ana", Email: "ana@example.com", Password: "x", IsActive: true}
	assert.NoError(t, testDB.Create(user).Error)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Without a user the query matches nothing
	var count int64
	GetUserScopedQuery(c, testDB).Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
