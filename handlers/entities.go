package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"
	"diligencias_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// entityKindOrder fixes the display order of per-kind load warnings.
var entityKindOrder = []services.EntityKind{
	services.KindAtestado,
	services.KindPersona,
	services.KindLetrado,
}

var kindWarnings = map[services.EntityKind]string{
	services.KindAtestado: "No se pudieron cargar los atestados",
	services.KindPersona:  "No se pudieron cargar las personas",
	services.KindLetrado:  "No se pudieron cargar los letrados",
}

// buildEntitiesViewModel loads, filters and selection-sorts the user's
// entities according to the request's filtro and sel parameters.
func buildEntitiesViewModel(c echo.Context, userID string) partials.EntitiesViewModel {
	filter := c.QueryParam("filtro")

	selected := make(map[string]bool)
	for _, key := range c.QueryParams()["sel"] {
		selected[key] = true
	}

	entities, loadErrs := services.LoadEntities(db.DB, userID)

	var warnings []string
	for _, kind := range entityKindOrder {
		if loadErrs[kind] != nil {
			warnings = append(warnings, kindWarnings[kind])
		}
	}

	caseNumbers := services.AvailableCaseNumbers(entities)

	visible := services.SortSelected(services.FilterEntities(entities, filter), selected)

	defaultNumero := ""
	if cfg, err := services.GetUnitConfig(db.DB, userID); err == nil && cfg != nil {
		defaultNumero = services.DefaultCaseNumber(cfg.CodigoUnidad, time.Now())
	}

	return partials.EntitiesViewModel{
		Filter:            filter,
		Entities:          visible,
		Selected:          selected,
		Warnings:          warnings,
		CaseNumbers:       caseNumbers,
		DefaultCaseNumber: defaultNumero,
	}
}

// EntitiesPageHandler renders the entity manager page
func EntitiesPageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm := buildEntitiesViewModel(c, user.ID)

	component := pages.Entities(c.Request().Context(), "Entidades | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// EntityListHandler renders just the entity list fragment for htmx filter,
// selection and refresh requests
func EntityListHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm := buildEntitiesViewModel(c, user.ID)

	component := partials.EntityList(csrfToken, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// entityFromForm builds an Entity of the requested kind from form values.
func entityFromForm(c echo.Context, kind services.EntityKind, id uint) services.Entity {
	switch kind {
	case services.KindAtestado:
		return services.NewAtestado(&models.CaseRecord{
			ID:      id,
			Numero:  c.FormValue("numero"),
			Delito:  c.FormValue("delito"),
			Juzgado: c.FormValue("juzgado"),
		})
	case services.KindPersona:
		return services.NewPersona(&models.Person{
			ID:              id,
			Atestado:        c.FormValue("atestado"),
			Nombre:          c.FormValue("nombre"),
			Apellido1:       c.FormValue("apellido1"),
			Apellido2:       c.FormValue("apellido2"),
			Documento:       c.FormValue("documento"),
			FechaNacimiento: c.FormValue("fecha_nacimiento"),
			NacimientoLugar: c.FormValue("nacimiento_lugar"),
			Direccion:       c.FormValue("direccion"),
			Telefono:        c.FormValue("telefono"),
			Relacion:        c.FormValue("relacion"),
		})
	default:
		return services.NewLetrado(&models.Lawyer{
			ID:          id,
			LetradoTipo: c.FormValue("letrado_tipo"),
			Nombre:      c.FormValue("nombre"),
			Numero:      c.FormValue("numero"),
			Telefono:    c.FormValue("telefono"),
			Atestado:    c.FormValue("atestado"),
		})
	}
}

// EntitySaveHandler handles create and update submissions for all three kinds
func EntitySaveHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	kind, err := services.ParseEntityKind(c.FormValue("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Tipo de entidad desconocido")
	}

	var id uint
	if raw := c.FormValue("id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Identificador no válido")
		}
		id = uint(parsed)
	}

	entity := entityFromForm(c, kind, id)

	if err := services.SaveEntity(db.DB, user.ID, entity); err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/entidades")
	}

	action := models.AuditActionCreate
	description := fmt.Sprintf("Created %s", kind)
	if id != 0 {
		action = models.AuditActionUpdate
		description = fmt.Sprintf("Updated %s", kind)
	}
	services.LogAuditEvent(db.DB, auditCtx(c, user), action, "Entidad", entity.Key(), entity.Label(), description)

	return htmxRedirect(c, "/entidades")
}

// EntityDeleteHandler deletes a single entity
func EntityDeleteHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	kind, err := services.ParseEntityKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Tipo de entidad desconocido")
	}

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador no válido")
	}
	id := uint(parsed)

	// Fetch first so the audit entry can name what was removed
	label := ""
	if entity, err := services.GetEntity(db.DB, user.ID, kind, id); err == nil {
		label = entity.Label()
	}

	if err := services.DeleteEntity(db.DB, user.ID, kind, id); err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/entidades")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionDelete, "Entidad",
		fmt.Sprintf("%s-%d", kind, id), label, fmt.Sprintf("Deleted %s", kind))

	return htmxRedirect(c, "/entidades")
}

// entityCounts tallies the user's rows per entity table, shown on the
// delete-all confirmation page so the user sees what is about to go.
func entityCounts(userID string) pages.DeleteAllViewModel {
	count := func(model interface{}) int64 {
		var n int64
		db.DB.Model(model).Where("usuario = ?", userID).Count(&n)
		return n
	}
	return pages.DeleteAllViewModel{
		Atestados: count(&models.CaseRecord{}),
		Personas:  count(&models.Person{}),
		Letrados:  count(&models.Lawyer{}),
	}
}

// EntitiesDeleteAllConfirmHandler renders the dedicated confirmation page
// that enumerates everything a delete-all would destroy. The destructive
// POST only exists behind this page.
func EntitiesDeleteAllConfirmHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm := entityCounts(user.ID)

	component := pages.EntitiesDeleteAllConfirm(c.Request().Context(), "Eliminar todo | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// EntitiesDeleteAllHandler wipes all three entity tables for the current user
func EntitiesDeleteAllHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	if errs := services.DeleteAllEntities(db.DB, user.ID); errs != nil {
		if isHTMX(c) {
			return alertError(c, "No se pudieron eliminar todas las entidades. Inténtelo de nuevo.")
		}
		return c.Redirect(http.StatusSeeOther, "/entidades")
	}

	services.LogAuditEvent(db.DB, auditCtx(c, user), models.AuditActionDeleteAll, "Entidad",
		user.ID, "", "Deleted all entities")

	return htmxRedirect(c, "/entidades")
}

// EntitiesExportHandler streams the user's entities as an xlsx workbook
func EntitiesExportHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	buf, err := services.ExportEntitiesExcel(db.DB, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo generar el archivo")
	}

	filename := fmt.Sprintf("entidades_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func auditCtx(c echo.Context, user *models.User) services.AuditContext {
	return services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Name,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
