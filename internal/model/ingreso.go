package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingreso is an income / account receivable, optionally linked to a client.
type Ingreso struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string          `gorm:"uniqueIndex;not null"`
	Descripcion   string          `gorm:"not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Fecha         time.Time       `gorm:"index;not null"`
	Categoria     string          `gorm:"not null;default:'Otro'"`
	ClienteID     *uuid.UUID      `gorm:"type:uuid;index"`
	RegistradoPor string          `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Pagos   []Pago   `gorm:"foreignKey:IngresoID;constraint:OnDelete:CASCADE"`
}

// Balance is the remaining amount owed by the client.
func (i *Ingreso) Balance() decimal.Decimal {
	return balance(i.Monto, i.Pagos)
}

// Saldado reports whether the record is settled (balance ≤ 0.01).
func (i *Ingreso) Saldado() bool { return i.Balance().LessThanOrEqual(umbralSaldado) }
