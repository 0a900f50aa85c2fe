package csvio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEntradaVacia signals a file with no data rows (header only or nothing).
var ErrEntradaVacia = errors.New("el archivo esta vacio o solo contiene el encabezado")

// ErrorColumnasFaltantes lists the required columns absent from the header
// row. The message is surfaced verbatim to the user, so it names every
// missing column.
type ErrorColumnasFaltantes struct {
	Columnas []string // sorted
}

func (e *ErrorColumnasFaltantes) Error() string {
	return fmt.Sprintf("faltan columnas requeridas: %s", strings.Join(e.Columnas, ", "))
}
