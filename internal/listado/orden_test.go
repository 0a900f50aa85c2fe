package listado

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articulo struct {
	nombre string
	precio *decimal.Decimal
	fecha  time.Time
}

func precio(s string) *decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return &d
}

func valorArticulo(a articulo, clave string) Valor {
	switch clave {
	case "nombre":
		return Texto(a.nombre)
	case "precio":
		if a.precio == nil {
			return Faltante()
		}
		return Numero(*a.precio)
	case "fecha":
		return Fecha(a.fecha)
	default:
		return Faltante()
	}
}

func nombres(items []articulo) []string {
	salida := make([]string, len(items))
	for i, a := range items {
		salida[i] = a.nombre
	}
	return salida
}

func TestOrdenarNumerico(t *testing.T) {
	items := []articulo{
		{nombre: "b", precio: precio("10.00")},
		{nombre: "a", precio: precio("2.50")},
		{nombre: "c", precio: precio("7.25")},
	}

	asc := Ordenar(items, Orden{Clave: "precio"}, valorArticulo)
	assert.Equal(t, []string{"a", "c", "b"}, nombres(asc))

	desc := Ordenar(items, Orden{Clave: "precio", Descendente: true}, valorArticulo)
	assert.Equal(t, []string{"b", "c", "a"}, nombres(desc))
}

func TestOrdenarTextoConscienteDeNumeros(t *testing.T) {
	items := []articulo{
		{nombre: "prod10"},
		{nombre: "prod2"},
		{nombre: "Prod1"},
	}
	asc := Ordenar(items, Orden{Clave: "nombre"}, valorArticulo)
	// "prod2" before "prod10": numeric-aware, case-insensitive collation.
	assert.Equal(t, []string{"Prod1", "prod2", "prod10"}, nombres(asc))
}

func TestOrdenarFaltantesAlFinalEnAmbasDirecciones(t *testing.T) {
	items := []articulo{
		{nombre: "sin precio"},
		{nombre: "caro", precio: precio("100")},
		{nombre: "barato", precio: precio("1")},
	}

	asc := Ordenar(items, Orden{Clave: "precio"}, valorArticulo)
	require.Equal(t, "sin precio", asc[2].nombre)

	desc := Ordenar(items, Orden{Clave: "precio", Descendente: true}, valorArticulo)
	require.Equal(t, "sin precio", desc[2].nombre)
	assert.Equal(t, "caro", desc[0].nombre)
}

func TestOrdenarAlternarInvierteElResto(t *testing.T) {
	items := []articulo{
		{nombre: "b", precio: precio("20")},
		{nombre: "sin precio"},
		{nombre: "a", precio: precio("10")},
	}

	orden := Orden{Clave: "precio"}
	asc := Ordenar(items, orden, valorArticulo)

	orden.Alternar("precio")
	assert.True(t, orden.Descendente)
	desc := Ordenar(items, orden, valorArticulo)

	// Present values reverse; the missing one stays last on both sides.
	assert.Equal(t, []string{"a", "b", "sin precio"}, nombres(asc))
	assert.Equal(t, []string{"b", "a", "sin precio"}, nombres(desc))
}

func TestAlternarClaveNuevaReiniciaAscendente(t *testing.T) {
	orden := Orden{Clave: "fecha", Descendente: true}
	orden.Alternar("nombre")
	assert.Equal(t, "nombre", orden.Clave)
	assert.False(t, orden.Descendente)
}

func TestOrdenarEsEstableYPuro(t *testing.T) {
	mismo := precio("5")
	items := []articulo{
		{nombre: "primero", precio: mismo},
		{nombre: "segundo", precio: mismo},
		{nombre: "tercero", precio: mismo},
	}

	resultado := Ordenar(items, Orden{Clave: "precio"}, valorArticulo)
	assert.Equal(t, []string{"primero", "segundo", "tercero"}, nombres(resultado))

	// Input slice untouched.
	desordenado := []articulo{
		{nombre: "z", precio: precio("9")},
		{nombre: "a", precio: precio("1")},
	}
	_ = Ordenar(desordenado, Orden{Clave: "precio"}, valorArticulo)
	assert.Equal(t, []string{"z", "a"}, nombres(desordenado))
}

func TestOrdenarPorFecha(t *testing.T) {
	items := []articulo{
		{nombre: "medio", fecha: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{nombre: "nuevo", fecha: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{nombre: "viejo", fecha: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	desc := Ordenar(items, OrdenPorDefecto(), valorArticulo)
	assert.Equal(t, []string{"nuevo", "medio", "viejo"}, nombres(desc))
}
