package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearRegistroFinancieroRequest serves both egresos and ingresos.
// ContactoID links an egreso to a suplidor or an ingreso to a cliente.
type CrearRegistroFinancieroRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=2"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Fecha       string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Categoria   string          `json:"categoria"`
	ContactoID  *string         `json:"contacto_id" validate:"omitempty,uuid"`
}

type AgregarPagoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required,gt=0"`
	Fecha string          `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID            string          `json:"id"`
	Monto         decimal.Decimal `json:"monto"`
	Fecha         string          `json:"fecha"`
	RegistradoPor string          `json:"registrado_por"`
}

type RegistroFinancieroResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	Descripcion   string          `json:"descripcion"`
	Monto         decimal.Decimal `json:"monto"`
	Fecha         string          `json:"fecha"`
	Categoria     string          `json:"categoria"`
	ContactoID    *string         `json:"contacto_id"`
	Contacto      string          `json:"contacto,omitempty"` // resolved name
	RegistradoPor string          `json:"registrado_por"`
	Balance       decimal.Decimal `json:"balance"`
	Saldado       bool            `json:"saldado"`
	Pagos         []PagoResponse  `json:"pagos"`
}
