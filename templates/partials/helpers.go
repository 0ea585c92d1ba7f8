package partials

import (
	"fmt"
	"time"

	"diligencias_app_go/services"
)

var kindLabels = map[services.EntityKind]string{
	services.KindAtestado: "Atestado",
	services.KindPersona:  "Persona",
	services.KindLetrado:  "Letrado",
}

func kindLabel(kind services.EntityKind) string {
	return kindLabels[kind]
}

func deletePath(e services.Entity) string {
	return fmt.Sprintf("/entidades/%s/%d/borrar", e.Kind, e.ID())
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
