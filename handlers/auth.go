package handlers

import (
	"net/http"
	"strings"
	"time"

	"diligencias_app_go/config"
	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

func init() {
	// Generate a real dummy hash at startup to ensure consistent timing
	hash, _ := services.HashPassword("dummy_password_for_timing_mitigation")
	if hash != "" {
		globalDummyHash = hash
	}
}

// Package level variable to hold the dummy hash
var globalDummyHash string = "$2a$10$X7.G.t8./.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t" // Fallback

// LoginHandler renders the login page
func LoginHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	component := pages.Login(c.Request().Context(), "Acceso | Gestor de Diligencias", csrfToken)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// LoginPostHandler handles the login form submission
func LoginPostHandler(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		if isHTMX(c) {
			return alertError(c, "El email y la contraseña son obligatorios")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	// Lockout check requires looking the user up; the generic error message
	// below still avoids confirming whether the account exists.
	var userPreCheck models.User
	if err := db.DB.Where("email = ?", email).First(&userPreCheck).Error; err == nil {
		if userPreCheck.IsLockedOut() {
			services.LogSecurityEvent("LOGIN_LOCKED_OUT", userPreCheck.ID, "Login attempt on locked account")
			if isHTMX(c) {
				return alertError(c, "Cuenta bloqueada temporalmente. Inténtelo más tarde.")
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}
	}

	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		// Timing attack mitigation: always run a bcrypt comparison
		services.VerifyPassword(globalDummyHash, password)

		if isHTMX(c) {
			return alertError(c, "Email o contraseña incorrectos")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if !services.VerifyPassword(user.Password, password) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockoutTime := time.Now().Add(15 * time.Minute)
			user.LockoutUntil = &lockoutTime
			user.FailedLoginAttempts = 0
			services.LogSecurityEvent("ACCOUNT_LOCKED", user.ID, "Account locked after repeated failed logins")
		}
		db.DB.Save(&user)

		if isHTMX(c) {
			return alertError(c, "Email o contraseña incorrectos")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	// Reset failed attempts on success
	if user.FailedLoginAttempts > 0 || user.LockoutUntil != nil {
		user.FailedLoginAttempts = 0
		user.LockoutUntil = nil
		db.DB.Save(&user)
	}

	if !user.IsActive {
		if isHTMX(c) {
			return alertError(c, "La cuenta está desactivada")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	session, err := services.CreateSession(db.DB, user.ID, ipAddress, userAgent)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	cfg := c.Get("config").(*config.Config)
	isProduction := cfg.Environment == "production"

	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(services.DefaultSessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)

	services.LogAuditEvent(db.DB, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Name,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}, models.AuditActionLogin, "User", user.ID, user.Name, "User logged in")

	now := time.Now()
	user.LastLoginAt = &now
	db.DB.Save(&user)

	return htmxRedirect(c, "/")
}

// SignupHandler renders the signup page
func SignupHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	component := pages.Signup(c.Request().Context(), "Crear cuenta | Gestor de Diligencias", csrfToken)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// SignupPostHandler handles the signup form submission
func SignupPostHandler(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")

	if name == "" || email == "" || password == "" {
		if isHTMX(c) {
			return alertError(c, "Todos los campos son obligatorios")
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	if password != passwordConfirm {
		if isHTMX(c) {
			return alertError(c, "Las contraseñas no coinciden")
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	user, err := services.RegisterUser(db.DB, name, email, password)
	if err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	services.LogSecurityEvent("USER_REGISTERED", user.ID, "New account created for "+email)

	return htmxRedirect(c, "/login")
}

// LogoutHandler handles user logout
func LogoutHandler(c echo.Context) error {
	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogAuditEvent(db.DB, services.AuditContext{
			UserID:    user.ID,
			UserName:  user.Name,
			IPAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		}, models.AuditActionLogout, "User", user.ID, user.Name, "User logged out")
	}

	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}

	cfg := c.Get("config").(*config.Config)
	isProduction := cfg.Environment == "production"

	clearCookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(clearCookie)

	return htmxRedirect(c, "/login")
}
