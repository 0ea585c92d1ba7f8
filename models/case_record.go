package models

import (
	"time"
)

// CaseRecord is an atestado reference (DGS number, offense and court).
type CaseRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Numero  string `gorm:"not null" json:"numero"`
	Delito  string `gorm:"not null" json:"delito"`
	Juzgado string `gorm:"not null" json:"juzgado"`

	Usuario string `gorm:"type:uuid;not null;index" json:"usuario"`
}

// TableName specifies the table name for CaseRecord model
func (CaseRecord) TableName() string {
	return "entidades_dgs"
}
