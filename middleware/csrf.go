package middleware

import (
	"github.com/labstack/echo/v4"
)

// GetCSRFToken returns the CSRF token Echo stored on the context, or "" when
// none is set. Templates embed it as a hidden _csrf input on mutating forms.
func GetCSRFToken(c echo.Context) string {
	if token, ok := c.Get("csrf").(string); ok {
		return token
	}
	return ""
}
