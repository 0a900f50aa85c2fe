package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is a partial payment attached to a financial record. Exactly one of
// EgresoID / IngresoID is set.
type Pago struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EgresoID      *uuid.UUID      `gorm:"type:uuid;index"`
	IngresoID     *uuid.UUID      `gorm:"type:uuid;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Fecha         time.Time       `gorm:"not null"`
	RegistradoPor string          `gorm:"not null"`
	CreatedAt     time.Time
}
