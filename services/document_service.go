package services

import (
	"strings"

	"diligencias_app_go/models"
)

// MissingUnitValue is sent to the document renderer for unit fields the user
// has not filled in yet, so the generated document marks the gap instead of
// rendering an empty string.
const MissingUnitValue = "VACIA"

// Renderer endpoint paths, relative to the configured document renderer URL.
const (
	ArchivoRenderPath      = "/procesar-diligencia-archivo"
	CaratulaRenderPath     = "/procesar-caratula-archivo"
	AvisoLetradoRenderPath = "/procesar-diligencia-aviso-letrado"
)

// DiligenciaType is a catalog entry describing one kind of police paperwork
// document. Entries with a FormPath have a dedicated form page; the rest are
// listed for reference only.
type DiligenciaType struct {
	ID          int
	Titulo      string
	Tipos       []string
	Descripcion string
	FormPath    string
}

// DiligenciaCatalog lists every document type known to the app, in the order
// they are shown on the diligencias index page.
var DiligenciaCatalog = []DiligenciaType{
	{ID: 1, Titulo: "Diligencia de Archivo", Tipos: []string{"Archivo"}, Descripcion: "Diligencia para el archivo de actuaciones", FormPath: "/diligencias/archivo"},
	{ID: 2, Titulo: "Carátula (Archivo)", Tipos: []string{"Archivo", "Carátula"}, Descripcion: "Carátula para procedimientos de archivo", FormPath: "/diligencias/caratula"},
	{ID: 3, Titulo: "Diligencia de aviso letrado (detenido)", Tipos: []string{"Letrado", "Aviso"}, Descripcion: "Aviso al letrado de persona detenida", FormPath: "/diligencias/aviso-letrado"},
	{ID: 4, Titulo: "Diligencia de información de derechos y de los elementos esenciales de las actuaciones para impugnar la detención", Tipos: []string{"Detenido", "Derechos"}, Descripcion: "Información de derechos del detenido"},
	{ID: 5, Titulo: "Diligencia de aviso a familiar o persona designada", Tipos: []string{"Detenido", "Aviso"}, Descripcion: "Aviso a familiar del detenido"},
	{ID: 6, Titulo: "Diligencia de aviso a Autoridad Judicial", Tipos: []string{"Aviso"}, Descripcion: "Comunicación a la autoridad judicial"},
	{ID: 7, Titulo: "Diligencia de Derechos delitos violentos/sexuales", Tipos: []string{"Sexual", "Derechos"}, Descripcion: "Derechos específicos para delitos violentos o sexuales"},
	{ID: 8, Titulo: "Diligencia de Solicitud medios telemáticos (VIOGEN)", Tipos: []string{"VIOGEN"}, Descripcion: "Solicitud de medios telemáticos del sistema VIOGEN"},
	{ID: 9, Titulo: "Diligencia de Manifestación detenido/investigado", Tipos: []string{"Detenido", "Manifestacion"}, Descripcion: "Manifestación del detenido o investigado"},
	{ID: 10, Titulo: "Diligencia de entrega de Plan de Seguridad", Tipos: []string{"VIOGEN"}, Descripcion: "Entrega del plan de seguridad a la víctima"},
	{ID: 11, Titulo: "Anexo", Tipos: []string{"Anexo"}, Descripcion: "Documentación anexa al procedimiento"},
	{ID: 12, Titulo: "Diligencia resumen", Tipos: []string{"JRDL", "JRSD", "JRD"}, Descripcion: "Resumen de las actuaciones realizadas"},
	{ID: 13, Titulo: "Diligencia haciendo constar renuncia del perjudicado a llevar a cabo acciones penales", Tipos: []string{"Renuncia", "VIOGEN", "VIODOM"}, Descripcion: "Renuncia del perjudicado a acciones penales"},
	{ID: 14, Titulo: "Dispensa de Denunciar", Tipos: []string{"Dispensa"}, Descripcion: "Dispensa del deber de denunciar"},
	{ID: 15, Titulo: "Derechos víctima VIOGEN", Tipos: []string{"VIOGEN", "Derechos"}, Descripcion: "Derechos específicos de víctimas en el sistema VIOGEN"},
	{ID: 16, Titulo: "Diligencia haciendo constar resultado de la valoración policial de RIESGO", Tipos: []string{"VIOGEN"}, Descripcion: "Resultado de la valoración policial de riesgo"},
	{ID: 17, Titulo: "Diligencia informando a la víctima del derecho de acceso a una vivienda de acogida", Tipos: []string{"VIOGEN", "Derechos"}, Descripcion: "Información sobre derecho a vivienda de acogida"},
	{ID: 18, Titulo: "Diligencia dirigida a FISCALÍA proponiendo solicitud a la autoridad judicial de Instalación de dispositivo telemático control", Tipos: []string{"VIOGEN"}, Descripcion: "Propuesta de dispositivo telemático de control"},
	{ID: 19, Titulo: "Diligencia de antecedentes del Sistema de Registro Integral de Seguimiento de Víctimas de Violencia de Género", Tipos: []string{"VIOGEN", "Antecedentes"}, Descripcion: "Antecedentes del sistema de seguimiento de víctimas"},
	{ID: 20, Titulo: "Diligencia informando a la víctima de caso con autor persistente", Tipos: []string{"VIOGEN"}, Descripcion: "Información sobre casos con autor persistente"},
	{ID: 21, Titulo: "Diligencia describiendo lesiones de la víctima", Tipos: []string{"Lesiones"}, Descripcion: "Descripción detallada de las lesiones de la víctima"},
	{ID: 22, Titulo: "Diligencia haciendo constar consulta en Intervención Central de Armas y Explosivos", Tipos: []string{"Consulta"}, Descripcion: "Consulta en base de datos de armas y explosivos"},
	{ID: 23, Titulo: "Consentimiento de la víctima para subir su fotografía al Sistema VIOGEN", Tipos: []string{"VIOGEN"}, Descripcion: "Consentimiento para fotografía en sistema VIOGEN"},
	{ID: 24, Titulo: "Carátula (Traspaso)", Tipos: []string{"Traspaso", "Carátula"}, Descripcion: "Carátula para procedimientos de traspaso"},
	{ID: 25, Titulo: "Acta de información de derechos a persona víctima de un delito", Tipos: []string{"Derechos"}, Descripcion: "Acta informativa de derechos de la víctima"},
	{ID: 26, Titulo: "Diligencia haciendo constar situación administrativa de la víctima extranjera", Tipos: []string{"Extranjero"}, Descripcion: "Situación administrativa de víctima extranjera"},
	{ID: 27, Titulo: "Diligencia haciendo constar situación administrativa del autor extranjero", Tipos: []string{"Extranjero"}, Descripcion: "Situación administrativa de autor extranjero"},
	{ID: 28, Titulo: "Diligencia de remisión/entrega de atestado", Tipos: []string{"Remisiones"}, Descripcion: "Remisión o entrega del atestado policial"},
	{ID: 29, Titulo: "Diligencia de traspaso", Tipos: []string{"Traspaso"}, Descripcion: "Traspaso de competencias o procedimiento"},
	{ID: 30, Titulo: "Diligencia de lectura de derechos investigado no detenido", Tipos: []string{"Investigado", "Derechos"}, Descripcion: "Lectura de derechos a investigado no detenido"},
	{ID: 31, Titulo: "Carátula", Tipos: []string{"Carátula"}, Descripcion: "Carátula general del procedimiento"},
}

// FilterDiligencias returns the catalog entries whose title, description or
// any type tag contains the query (case-insensitive). An empty query returns
// the full catalog.
func FilterDiligencias(query string) []DiligenciaType {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return DiligenciaCatalog
	}

	var matched []DiligenciaType
	for _, d := range DiligenciaCatalog {
		if strings.Contains(strings.ToLower(d.Titulo), query) ||
			strings.Contains(strings.ToLower(d.Descripcion), query) {
			matched = append(matched, d)
			continue
		}
		for _, t := range d.Tipos {
			if strings.Contains(strings.ToLower(t), query) {
				matched = append(matched, d)
				break
			}
		}
	}
	return matched
}

// FindDiligencia looks up a catalog entry by ID.
func FindDiligencia(id int) (DiligenciaType, bool) {
	for _, d := range DiligenciaCatalog {
		if d.ID == id {
			return d, true
		}
	}
	return DiligenciaType{}, false
}

// HiddenUnitFields maps the unit configuration to the hidden datos_* form
// fields each diligencia form posts to the renderer. Unset fields fall back
// to MissingUnitValue. A nil config yields all defaults.
func HiddenUnitFields(cfg *models.UnitConfig) map[string]string {
	fields := map[string]string{
		"datos_comandancia": MissingUnitValue,
		"datos_compania":    MissingUnitValue,
		"datos_puesto":      MissingUnitValue,
		"datos_localidad":   MissingUnitValue,
		"datos_telefono":    MissingUnitValue,
		"datos_email":       MissingUnitValue,
		"datos_direccion":   MissingUnitValue,
		"datos_provincia":   MissingUnitValue,
		"datos_cp":          MissingUnitValue,
	}
	if cfg == nil {
		return fields
	}

	set := func(name, value string) {
		if v := strings.TrimSpace(value); v != "" {
			fields[name] = v
		}
	}
	set("datos_comandancia", cfg.Comandancia)
	set("datos_compania", cfg.Compania)
	set("datos_puesto", cfg.Puesto)
	set("datos_localidad", cfg.Localidad)
	set("datos_telefono", cfg.Telefono)
	set("datos_email", cfg.Email)
	set("datos_direccion", cfg.Direccion)
	set("datos_provincia", cfg.Provincia)
	set("datos_cp", cfg.CP)
	return fields
}
