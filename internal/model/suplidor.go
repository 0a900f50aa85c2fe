package model

import (
	"time"

	"github.com/google/uuid"
)

// Suplidor is a raw-material supplier with contact data.
type Suplidor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"index;not null"`
	Email     string
	Telefono  string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time

	MateriasPrimas []MateriaPrima `gorm:"foreignKey:SuplidorID"`
}

func (Suplidor) TableName() string { return "suplidores" }
