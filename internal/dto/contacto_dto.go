package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearContactoRequest serves both clientes and suplidores; the two share
// the same contact shape.
type CrearContactoRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ContactoResponse struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}
