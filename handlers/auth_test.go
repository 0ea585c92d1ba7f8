package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, testDB *gorm.DB, email, password string) *models.User {
	user, err := services.RegisterUser(testDB, "Ana García", email, password)
	assert.NoError(t, err)
	return user
}

func loginForm(email, password string) *strings.Reader {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	return strings.NewReader(form.Encode())
}

func TestLoginPostSuccess(t *testing.T) {
	testDB := setupTestDB(t)
	createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "Str0ng!Password123"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	err := LoginPostHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Session cookie was set
	cookies := rec.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookieName {
			sessionCookie = ck
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	// And the session is valid
	session, err := services.ValidateSession(testDB, sessionCookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
}

func TestLoginPostWrongPassword(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "wrong-password"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	err := LoginPostHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var reloaded models.User
	testDB.First(&reloaded, "id = ?", user.ID)
	assert.Equal(t, 1, reloaded.FailedLoginAttempts)
}

func TestLoginPostLockoutAfterFiveFailures(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	for i := 0; i < 5; i++ {
		_, c, _ := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "wrong-password"))
		c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.NoError(t, LoginPostHandler(c))
	}

	var reloaded models.User
	testDB.First(&reloaded, "id = ?", user.ID)
	assert.NotNil(t, reloaded.LockoutUntil)
	assert.True(t, reloaded.IsLockedOut())

	// Even the correct password is rejected while locked
	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "Str0ng!Password123"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.NoError(t, LoginPostHandler(c))
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPostLockoutExpires(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	past := time.Now().Add(-time.Minute)
	testDB.Model(&models.User{}).Where("id = ?", user.ID).Update("lockout_until", past)

	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "Str0ng!Password123"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.NoError(t, LoginPostHandler(c))
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginPostInactiveUser(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")
	testDB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("ana@example.com", "Str0ng!Password123"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.NoError(t, LoginPostHandler(c))
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPostUnknownEmailHTMX(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/login", loginForm("nobody@example.com", "whatever"))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request().Header.Set("HX-Request", "true")

	assert.NoError(t, LoginPostHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email o contraseña incorrectos")
}

func TestSignupPostCreatesUser(t *testing.T) {
	testDB := setupTestDB(t)

	form := url.Values{}
	form.Set("name", "Ana García")
	form.Set("email", "ana@example.com")
	form.Set("password", "Str0ng!Password123")
	form.Set("password_confirm", "Str0ng!Password123")

	_, c, rec := setupEcho(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.NoError(t, SignupPostHandler(c))
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var count int64
	testDB.Model(&models.User{}).Where("email = ?", "ana@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignupPostPasswordMismatch(t *testing.T) {
	testDB := setupTestDB(t)

	form := url.Values{}
	form.Set("name", "Ana García")
	form.Set("email", "ana@example.com")
	form.Set("password", "Str0ng!Password123")
	form.Set("password_confirm", "Different!Pass456")

	_, c, rec := setupEcho(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	c.Request().Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.NoError(t, SignupPostHandler(c))
	assert.Equal(t, "/signup", rec.Header().Get("Location"))

	var count int64
	testDB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLogoutDeletesSession(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestUser(t, testDB, "ana@example.com", "Str0ng!Password123")

	session, err := services.CreateSession(testDB, user.ID, "", "")
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
	c.Set(middleware.ContextKeyUser, user)

	assert.NoError(t, LogoutHandler(c))
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	_, err = services.ValidateSession(testDB, session.Token)
	assert.Error(t, err)
}
