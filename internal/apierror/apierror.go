// Package apierror provides standardized error response structures for the
// API. All errors returned to clients go through this package so internal
// details (stack traces, DB errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ImportError carries the columns missing from a rejected CSV import so the
// UI can show them verbatim.
type ImportError struct {
	Detail   string   `json:"detail"`
	Columnas []string `json:"columnas,omitempty"`
}

func NewImport(msg string, columnas []string) *ImportError {
	return &ImportError{Detail: msg, Columnas: columnas}
}
