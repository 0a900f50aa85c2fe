package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a finished cleaning product with retail and wholesale pricing.
type Producto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU           string          `gorm:"column:sku;uniqueIndex;not null"`
	Nombre        string          `gorm:"index;not null"`
	Unidad        string          `gorm:"not null;default:'unidad'"`
	PrecioDetalle decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioMayor   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock         int             `gorm:"not null;default:0"`
	NivelReorden  int             `gorm:"not null;default:5"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BajoStock reports whether the product needs replenishment.
func (p *Producto) BajoStock() bool { return p.Stock <= p.NivelReorden }
