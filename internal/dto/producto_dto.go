package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU           string          `json:"sku"            validate:"required,min=1"`
	Nombre        string          `json:"nombre"         validate:"required,min=2"`
	Unidad        string          `json:"unidad"         validate:"required"`
	PrecioDetalle decimal.Decimal `json:"precio_detalle" validate:"min=0"`
	PrecioMayor   decimal.Decimal `json:"precio_mayor"   validate:"min=0"`
	Stock         int             `json:"stock"          validate:"min=0"`
	NivelReorden  int             `json:"nivel_reorden"  validate:"min=0"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Nombre        string          `json:"nombre"`
	Unidad        string          `json:"unidad"`
	PrecioDetalle decimal.Decimal `json:"precio_detalle"`
	PrecioMayor   decimal.Decimal `json:"precio_mayor"`
	Stock         int             `json:"stock"`
	NivelReorden  int             `json:"nivel_reorden"`
	BajoStock     bool            `json:"bajo_stock"`
}

// ConsultaProductoResponse is the public, cacheable price-check projection.
type ConsultaProductoResponse struct {
	Nombre        string          `json:"nombre"`
	Unidad        string          `json:"unidad"`
	PrecioDetalle decimal.Decimal `json:"precio_detalle"`
	PrecioMayor   decimal.Decimal `json:"precio_mayor"`
	Stock         int             `json:"stock"`
}
