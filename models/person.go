package models

import (
	"time"
)

// Valid values for Person.Relacion.
var PersonRelations = []string{"Denunciante", "Denunciado", "Detenido", "Investigado", "Testigo"}

// Person is a party linked to an atestado (complainant, accused, detainee,
// suspect or witness). Atestado is a free-text reference to a CaseRecord
// numero, not a foreign key.
type Person struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Atestado        string `json:"atestado"`
	Nombre          string `gorm:"not null" json:"nombre"`
	Apellido1       string `gorm:"column:apellido1;not null" json:"apellido1"`
	Apellido2       string `gorm:"column:apellido2" json:"apellido2"`
	Documento       string `gorm:"not null" json:"documento"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	NacimientoLugar string `json:"nacimiento_lugar"`
	Direccion       string `json:"direccion"`
	Telefono        string `json:"telefono"`
	Relacion        string `json:"relacion"`

	Usuario string `gorm:"type:uuid;not null;index" json:"usuario"`
}

// FullName returns "Nombre Apellido1 Apellido2" without trailing spaces.
func (p *Person) FullName() string {
	name := p.Nombre
	if p.Apellido1 != "" {
		name += " " + p.Apellido1
	}
	if p.Apellido2 != "" {
		name += " " + p.Apellido2
	}
	return name
}

// TableName specifies the table name for Person model
func (Person) TableName() string {
	return "entidades_personas"
}
