package models

import (
	"time"
)

// Valid values for Lawyer.LetradoTipo.
var LawyerTypes = []string{"Victima", "Autor"}

// Lawyer is a letrado assisting either the victim or the author of the
// offense. Numero is the bar membership number; Atestado is a free-text
// reference to a CaseRecord numero.
type Lawyer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	LetradoTipo string `gorm:"not null" json:"letrado_tipo"`
	Nombre      string `gorm:"not null" json:"nombre"`
	Numero      string `gorm:"not null" json:"numero"`
	Telefono    string `json:"telefono"`
	Atestado    string `json:"atestado"`

	Usuario string `gorm:"type:uuid;not null;index" json:"usuario"`
}

// TableName specifies the table name for Lawyer model
func (Lawyer) TableName() string {
	return "entidades_letrados"
}
