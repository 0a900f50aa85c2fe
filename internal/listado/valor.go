// Package listado produces filtered, ordered views of in-memory record
// collections. Filtering and sorting are pure: the source slice is never
// mutated and identical inputs always yield identical output (the sort is
// stable, so ties keep the original collection order).
package listado

import (
	"time"

	"github.com/shopspring/decimal"
)

// clase discriminates the comparable value extracted from a record field.
type clase int

const (
	claseFaltante clase = iota
	claseNumero
	claseFecha
	claseTexto
)

// Valor is the comparable projection of one record field. Records missing
// the sort key project to Faltante() and sort to the end regardless of
// direction.
type Valor struct {
	clase  clase
	numero decimal.Decimal
	fecha  time.Time
	texto  string
}

func Faltante() Valor { return Valor{clase: claseFaltante} }

func Numero(n decimal.Decimal) Valor { return Valor{clase: claseNumero, numero: n} }

func Fecha(t time.Time) Valor { return Valor{clase: claseFecha, fecha: t} }

func Texto(s string) Valor {
	if s == "" {
		return Faltante()
	}
	return Valor{clase: claseTexto, texto: s}
}
