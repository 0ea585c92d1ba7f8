package middleware

import (
	"net/http"
	"strings"

	"diligencias_app_go/config"
	"diligencias_app_go/db"
	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "diligencias_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// publicPaths are reachable without a session. Everything else requires one.
var publicPaths = map[string]bool{
	"/login":           true,
	"/signup":          true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// GuardRedirect decides where a request for path should land given the
// session state. It returns the redirect target and false when the request
// must be diverted, or "" and true when the page can render. Unknown session
// state is treated as unauthenticated, so errors fail closed.
func GuardRedirect(authenticated bool, path string) (string, bool) {
	public := publicPaths[path] || strings.HasPrefix(path, "/reset-password/")
	if !authenticated && !public {
		return "/login", false
	}
	if authenticated && public {
		return "/", false
	}
	return "", true
}

// RequireAuth is middleware that requires authentication
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return redirectToLogin(c)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return redirectToLogin(c)
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return redirectToLogin(c)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RedirectIfAuthenticated sends logged-in users away from the public pages
// (login, signup, password reset) back to the dashboard.
func RedirectIfAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return next(c)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil || !session.User.IsActive {
				return next(c)
			}

			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Redirect", "/")
				return c.NoContent(http.StatusOK)
			}
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserScopedQuery returns a GORM query scoped to the current user's rows
func GetUserScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	currentUser := GetCurrentUser(c)
	if currentUser == nil {
		// Return query that matches nothing
		return db.Where("1 = 0")
	}
	return db.Where("usuario = ?", currentUser.ID)
}

func redirectToLogin(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
