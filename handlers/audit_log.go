package handlers

import (
	"net/http"

	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const auditLogPageSize = 50

// AuditLogPageHandler renders the user's recent activity log
func AuditLogPageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	var entries []models.AuditLog
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(auditLogPageSize).
		Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo cargar el registro de actividad")
	}

	component := pages.AuditLog(c.Request().Context(), "Actividad | Gestor de Diligencias", csrfToken, user, entries)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
