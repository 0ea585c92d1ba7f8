package handlers

import (
	"net/http"

	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// ConfiguracionPageHandler renders the unit configuration page
func ConfiguracionPageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	cfg, err := services.GetUnitConfig(db.DB, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo cargar la configuración")
	}

	vm := pages.ConfiguracionViewModel{Config: cfg}
	component := pages.Configuracion(c.Request().Context(), "Configuración | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// ConfiguracionSaveHandler upserts the unit configuration from the form
func ConfiguracionSaveHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	cfg := &models.UnitConfig{
		TIP:             c.FormValue("tip"),
		Comandancia:     c.FormValue("comandancia"),
		Compania:        c.FormValue("compania"),
		Puesto:          c.FormValue("puesto"),
		Localidad:       c.FormValue("localidad"),
		Telefono:        c.FormValue("telefono"),
		Email:           c.FormValue("email"),
		Direccion:       c.FormValue("direccion"),
		Provincia:       c.FormValue("provincia"),
		CP:              c.FormValue("cp"),
		PartidoJudicial: c.FormValue("partido_judicial"),
		CodigoUnidad:    c.FormValue("codigo_unidad"),
		Zona:            c.FormValue("zona"),
	}

	if err := services.SaveUnitConfig(db.DB, user.ID, cfg); err != nil {
		if isHTMX(c) {
			return alertError(c, "No se pudo guardar la configuración")
		}
		return c.Redirect(http.StatusSeeOther, "/configuracion")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionUpdate, "Configuracion",
		user.ID, "", "Updated unit configuration")

	if isHTMX(c) {
		return alertSuccess(c, "Configuración guardada correctamente")
	}
	return c.Redirect(http.StatusSeeOther, "/configuracion")
}
