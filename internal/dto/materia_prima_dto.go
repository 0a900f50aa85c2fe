package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMateriaPrimaRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Unidad       string          `json:"unidad"        validate:"required"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	NivelReorden int             `json:"nivel_reorden" validate:"min=0"`
	SuplidorID   *string         `json:"suplidor_id"   validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MateriaPrimaResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Unidad       string          `json:"unidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Stock        int             `json:"stock"`
	NivelReorden int             `json:"nivel_reorden"`
	BajoStock    bool            `json:"bajo_stock"`
	SuplidorID   *string         `json:"suplidor_id"`
	Suplidor     string          `json:"suplidor,omitempty"` // resolved name
}

// AlertaStockResponse flags an item at or below its reorder level.
type AlertaStockResponse struct {
	Tipo         string `json:"tipo"` // producto | materia_prima
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Stock        int    `json:"stock"`
	NivelReorden int    `json:"nivel_reorden"`
}
