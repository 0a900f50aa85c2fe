package listado

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type registro struct {
	nombre    string
	categoria string
	fecha     time.Time
}

func fecha(dia int) time.Time {
	return time.Date(2026, time.March, dia, 14, 30, 0, 0, time.Local)
}

var muestra = []registro{
	{"Renta local", "Servicios", fecha(1)},
	{"Cloro industrial", "Materia prima", fecha(3)},
	{"Sueldo Ana", "Nomina", fecha(5)},
	{"Renta camion", "Transporte", fecha(8)},
	{"Jabon liquido", "Materia prima", fecha(12)},
}

func TestRangoFechasInclusivo(t *testing.T) {
	desde := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local)
	hasta := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.Local)

	resultado := Aplicar(muestra,
		RangoFechas(func(r registro) time.Time { return r.fecha }, &desde, &hasta))

	// Both boundary days included: 3, 5 and 8 of five records.
	assert.Len(t, resultado, 3)
	assert.Equal(t, "Cloro industrial", resultado[0].nombre)
	assert.Equal(t, "Renta camion", resultado[2].nombre)
}

func TestRangoFechasIncluyeTodoElDiaFinal(t *testing.T) {
	hasta := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.Local)
	tarde := registro{"Compra tarde", "Otro", time.Date(2026, time.March, 12, 23, 50, 0, 0, time.Local)}

	resultado := Aplicar([]registro{tarde},
		RangoFechas(func(r registro) time.Time { return r.fecha }, nil, &hasta))
	assert.Len(t, resultado, 1)
}

func TestRangoFechasSinLimitesNoFiltra(t *testing.T) {
	resultado := Aplicar(muestra,
		RangoFechas(func(r registro) time.Time { return r.fecha }, nil, nil))
	assert.Len(t, resultado, len(muestra))
}

func TestContieneTextoIgnoraMayusculas(t *testing.T) {
	resultado := Aplicar(muestra,
		ContieneTexto("RENTA", func(r registro) string { return r.nombre }))
	assert.Len(t, resultado, 2)
}

func TestContieneTextoVacioNoFiltra(t *testing.T) {
	resultado := Aplicar(muestra,
		ContieneTexto("  ", func(r registro) string { return r.nombre }))
	assert.Len(t, resultado, len(muestra))
}

func TestContieneTextoVariosCampos(t *testing.T) {
	resultado := Aplicar(muestra,
		ContieneTexto("nomina",
			func(r registro) string { return r.nombre },
			func(r registro) string { return r.categoria },
		))
	assert.Len(t, resultado, 1)
	assert.Equal(t, "Sueldo Ana", resultado[0].nombre)
}

func TestCoincideExactoConSentinela(t *testing.T) {
	campo := func(r registro) string { return r.categoria }

	assert.Len(t, Aplicar(muestra, CoincideExacto("all", campo)), len(muestra))
	assert.Len(t, Aplicar(muestra, CoincideExacto("", campo)), len(muestra))
	assert.Len(t, Aplicar(muestra, CoincideExacto("Materia prima", campo)), 2)
	assert.Len(t, Aplicar(muestra, CoincideExacto("materia prima", campo)), 0) // exact, not fuzzy
}

func TestAplicarCombinaConAND(t *testing.T) {
	desde := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)

	resultado := Aplicar(muestra,
		RangoFechas(func(r registro) time.Time { return r.fecha }, &desde, nil),
		ContieneTexto("renta", func(r registro) string { return r.nombre }),
	)
	// "Renta local" passes text but not date; "Renta camion" passes both.
	assert.Len(t, resultado, 1)
	assert.Equal(t, "Renta camion", resultado[0].nombre)
}

func TestAplicarConservaOrdenDeEntrada(t *testing.T) {
	resultado := Aplicar(muestra, func(registro) bool { return true })
	for i := range muestra {
		assert.Equal(t, muestra[i].nombre, resultado[i].nombre)
	}
}
