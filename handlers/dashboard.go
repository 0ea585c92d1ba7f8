package handlers

import (
	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// DashboardHandler renders the main dashboard
func DashboardHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	count := func(model interface{}) int64 {
		var n int64
		db.DB.Model(model).Where("usuario = ?", user.ID).Count(&n)
		return n
	}

	vm := pages.DashboardViewModel{
		Atestados: count(&models.CaseRecord{}),
		Personas:  count(&models.Person{}),
		Letrados:  count(&models.Lawyer{}),
		Eventos:   count(&models.Event{}),
	}

	component := pages.Dashboard(c.Request().Context(), "Inicio | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
