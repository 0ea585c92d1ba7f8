package models

import (
	"time"
)

// UnitConfig holds the organizational data of the user's Guardia Civil unit.
// One row per user; every diligencia form reads it to fill the hidden
// datos_* fields sent to the document renderer.
type UnitConfig struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Usuario string `gorm:"type:uuid;not null;uniqueIndex" json:"usuario"`

	TIP             string `gorm:"column:tip" json:"tip"` // professional ID card number
	Comandancia     string `json:"comandancia"`
	Compania        string `json:"compania"`
	Puesto          string `json:"puesto"`
	Localidad       string `json:"localidad"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	Direccion       string `json:"direccion"`
	Provincia       string `json:"provincia"`
	CP              string `gorm:"column:cp" json:"cp"`
	PartidoJudicial string `json:"partido_judicial"`
	CodigoUnidad    string `json:"codigo_unidad"`
	Zona            string `json:"zona"`
}

// TableName specifies the table name for UnitConfig model
func (UnitConfig) TableName() string {
	return "datos"
}
