package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// umbralSaldado: a financial record whose balance falls at or below one
// cent counts as settled and leaves the pending-accounts view.
var umbralSaldado = decimal.NewFromFloat(0.01)

// Egreso is an expense / account payable, optionally linked to a supplier.
type Egreso struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string          `gorm:"uniqueIndex;not null"`
	Descripcion   string          `gorm:"not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Fecha         time.Time       `gorm:"index;not null"`
	Categoria     string          `gorm:"not null;default:'Otro'"`
	SuplidorID    *uuid.UUID      `gorm:"type:uuid;index"`
	RegistradoPor string          `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Suplidor *Suplidor `gorm:"foreignKey:SuplidorID"`
	Pagos    []Pago    `gorm:"foreignKey:EgresoID;constraint:OnDelete:CASCADE"`
}

// Balance is the remaining unpaid amount: monto minus the sum of payments.
// It never goes negative; AgregarPago enforces the invariant at write time.
func (e *Egreso) Balance() decimal.Decimal {
	return balance(e.Monto, e.Pagos)
}

// Saldado reports whether the record is settled (balance ≤ 0.01).
func (e *Egreso) Saldado() bool { return e.Balance().LessThanOrEqual(umbralSaldado) }

func balance(monto decimal.Decimal, pagos []Pago) decimal.Decimal {
	saldo := monto
	for _, p := range pagos {
		saldo = saldo.Sub(p.Monto)
	}
	return saldo
}
