package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MateriaPrima is a production input bought from a supplier.
type MateriaPrima struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string          `gorm:"uniqueIndex;not null"`
	Nombre       string          `gorm:"index;not null"`
	Unidad       string          `gorm:"not null;default:'unidad'"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock        int             `gorm:"not null;default:0"`
	NivelReorden int             `gorm:"not null;default:5"`
	SuplidorID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Suplidor *Suplidor `gorm:"foreignKey:SuplidorID"`
}

func (MateriaPrima) TableName() string { return "materias_primas" }

// BajoStock reports whether the material needs replenishment.
func (m *MateriaPrima) BajoStock() bool { return m.Stock <= m.NivelReorden }
