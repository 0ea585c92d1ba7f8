package handlers

import (
	"net/http"
	"time"

	"diligencias_app_go/config"
	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// DiligenciasPageHandler renders the diligencia catalog, optionally filtered
// by the q query parameter
func DiligenciasPageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm := pages.DiligenciasViewModel{
		Query: c.QueryParam("q"),
		Items: services.FilterDiligencias(c.QueryParam("q")),
	}

	component := pages.Diligencias(c.Request().Context(), "Diligencias | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// buildDocumentForm assembles the shared parts of every diligencia form: the
// renderer action URL, the user's atestado numbers and the hidden datos_*
// fields from the unit configuration.
func buildDocumentForm(c echo.Context, userID, title, rendererPath string) (pages.DocumentFormViewModel, error) {
	cfg := c.Get("config").(*config.Config)

	var numbers []string
	if err := db.DB.Model(&models.CaseRecord{}).
		Where("usuario = ?", userID).
		Order("numero ASC").
		Pluck("numero", &numbers).Error; err != nil {
		return pages.DocumentFormViewModel{}, err
	}

	unitCfg, err := services.GetUnitConfig(db.DB, userID)
	if err != nil {
		return pages.DocumentFormViewModel{}, err
	}

	return pages.DocumentFormViewModel{
		Title:        title,
		Action:       cfg.DocRendererURL + rendererPath,
		CaseNumbers:  numbers,
		HiddenFields: services.HiddenUnitFields(unitCfg),
		Today:        time.Now().Format("2006-01-02"),
	}, nil
}

// DiligenciaArchivoHandler renders the archive diligencia form
func DiligenciaArchivoHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm, err := buildDocumentForm(c, user.ID, "Diligencia de Archivo", services.ArchivoRenderPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo preparar el formulario")
	}

	component := pages.DiligenciaArchivo(c.Request().Context(), "Diligencia de Archivo | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// DiligenciaCaratulaHandler renders the cover page form
func DiligenciaCaratulaHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm, err := buildDocumentForm(c, user.ID, "Carátula", services.CaratulaRenderPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo preparar el formulario")
	}

	component := pages.DiligenciaCaratula(c.Request().Context(), "Carátula | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// DiligenciaAvisoLetradoHandler renders the lawyer notification form
func DiligenciaAvisoLetradoHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	csrfToken := middleware.GetCSRFToken(c)

	vm, err := buildDocumentForm(c, user.ID, "Diligencia de aviso letrado (detenido)", services.AvisoLetradoRenderPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo preparar el formulario")
	}

	component := pages.DiligenciaAvisoLetrado(c.Request().Context(), "Aviso letrado | Gestor de Diligencias", csrfToken, user, vm)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
