package dto

// ImportarResponse summarizes a bulk CSV import. Rows are never rejected
// for bad cell values (they get typed defaults); a row is only skipped when
// its identifier or natural key already exists in the collection.
type ImportarResponse struct {
	TotalFilas int           `json:"total_filas"`
	Importadas int           `json:"importadas"`
	Omitidas   int           `json:"omitidas"`
	Detalle    []FilaOmitida `json:"detalle,omitempty"`
}

type FilaOmitida struct {
	Fila   int    `json:"fila"` // 1-based data row number
	Codigo string `json:"codigo,omitempty"`
	Motivo string `json:"motivo"`
}
