package handlers

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request came from an htmx-powered element.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// htmxRedirect issues an HX-Redirect for htmx requests and a normal 303 for
// full page loads.
func htmxRedirect(c echo.Context, target string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// alertError renders an inline error fragment for htmx swaps.
func alertError(c echo.Context, msg string) error {
	return c.HTML(http.StatusOK, `<div class="alert alert-error"><span class="text-sm font-medium">`+html.EscapeString(msg)+`</span></div>`)
}

// alertSuccess renders an inline success fragment for htmx swaps.
func alertSuccess(c echo.Context, msg string) error {
	return c.HTML(http.StatusOK, `<div class="alert alert-success"><span class="text-sm font-medium">`+html.EscapeString(msg)+`</span></div>`)
}
