package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// status codes; everything else surfaces as a 500 through the error
// middleware.
var (
	ErrNoEncontrado      = errors.New("registro no encontrado")
	ErrCodigoDuplicado   = errors.New("el codigo ya existe")
	ErrSinRegistros      = errors.New("no hay registros para exportar")
	ErrPagoExcedeBalance = errors.New("el pago excede el balance pendiente")
	ErrMontoInvalido     = errors.New("el monto debe ser mayor que cero")
	ErrCredenciales      = errors.New("credenciales invalidas")
	ErrUsuarioInactivo   = errors.New("usuario desactivado")
	ErrStockNegativo     = errors.New("el ajuste dejaria el stock en negativo")
)
