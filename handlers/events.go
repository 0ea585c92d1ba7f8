package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// EventsPageHandler renders the events page
func EventsPageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	events, err := services.ListEvents(db.DB, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudieron cargar los eventos")
	}

	component := pages.Eventos(c.Request().Context(), "Eventos | Gestor de Diligencias", csrfToken, user, events)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// EventCreateHandler handles the new event form submission
func EventCreateHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	event, err := services.CreateEvent(db.DB, user.ID, c.FormValue("descripcion"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) && isHTMX(c) {
			return alertError(c, "La descripción es obligatoria")
		}
		if isHTMX(c) {
			return alertError(c, "No se pudo crear el evento")
		}
		return c.Redirect(http.StatusSeeOther, "/eventos")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionCreate, "Evento",
		strconv.FormatUint(uint64(event.ID), 10), fmt.Sprintf("Evento %d", event.Numero), "Created event")

	return htmxRedirect(c, "/eventos")
}

// EventUpdateHandler handles edits to an existing event
func EventUpdateHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador no válido")
	}
	id := uint(parsed)

	if err := services.UpdateEvent(db.DB, user.ID, id, c.FormValue("descripcion")); err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/eventos")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionUpdate, "Evento",
		strconv.FormatUint(uint64(id), 10), "", "Updated event")

	return htmxRedirect(c, "/eventos")
}

// EventDeleteHandler deletes an event
func EventDeleteHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador no válido")
	}
	id := uint(parsed)

	if err := services.DeleteEvent(db.DB, user.ID, id); err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/eventos")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionDelete, "Evento",
		strconv.FormatUint(uint64(id), 10), "", "Deleted event")

	return htmxRedirect(c, "/eventos")
}
