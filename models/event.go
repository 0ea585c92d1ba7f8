package models

import (
	"time"
)

// Event is an independent numbered log entry, not linked to the entity
// manager.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Numero      int       `gorm:"not null" json:"numero"`
	Descripcion string    `gorm:"type:text;not null" json:"descripcion"`
	Actualizado time.Time `gorm:"autoUpdateTime" json:"actualizado"`

	Usuario string `gorm:"type:uuid;not null;index" json:"usuario"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "eventos"
}
