package csvio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importar(t *testing.T, e *Esquema, texto string) []Fila {
	t.Helper()
	doc, err := Deserializar(texto)
	require.NoError(t, err)
	filas, err := e.Importar(doc)
	require.NoError(t, err)
	return filas
}

func TestImportarColumnasFaltantesOrdenadas(t *testing.T) {
	doc, err := Deserializar("nombre\nana\n")
	require.NoError(t, err)

	_, err = EsquemaSuplidor.Importar(doc)
	var faltantes *ErrorColumnasFaltantes
	require.ErrorAs(t, err, &faltantes)

	// All missing columns reported at once, sorted.
	assert.Equal(t, []string{"direccion", "email", "telefono"}, faltantes.Columnas)
	assert.Equal(t, "faltan columnas requeridas: direccion, email, telefono", err.Error())
}

func TestImportarCoercionNuncaFalla(t *testing.T) {
	filas := importar(t, EsquemaProducto,
		"nombre,sku,unidad,precioventadetalle,precioventamayor,stock,nivelreorden\n"+
			",P-1,galon,abc,10.50,xyz,\n")

	require.Len(t, filas, 1)
	f := filas[0]
	assert.Equal(t, "N/A", f["nombre"])
	assert.Equal(t, "0", f["precioventadetalle"])
	assert.Equal(t, "10.5", f["precioventamayor"])
	assert.Equal(t, 0, f.Entero("stock"))
	assert.Equal(t, 0, f.Entero("nivelreorden"))
}

func TestImportarCategoriaVaciaEsOtro(t *testing.T) {
	filas := importar(t, EsquemaEgreso,
		"descripcion,monto,fecha,categoria\nrenta,100,2026-01-15,\n")
	assert.Equal(t, "Otro", filas[0]["categoria"])
}

func TestImportarFechaInvalidaEsHoy(t *testing.T) {
	filas := importar(t, EsquemaEgreso,
		"descripcion,monto,fecha,categoria\nrenta,100,15/01/2026,Servicios\n")
	assert.Equal(t, time.Now().Format("2006-01-02"), filas[0]["fecha"])
}

func TestImportarFechaValidaSeConserva(t *testing.T) {
	filas := importar(t, EsquemaEgreso,
		"descripcion,monto,fecha,categoria\nrenta,100,2026-01-15,Servicios\n")
	assert.Equal(t, "2026-01-15", filas[0]["fecha"])
}

func TestImportarIdentificadorVacioQuedaEnBlanco(t *testing.T) {
	filas := importar(t, EsquemaSuplidor,
		"codigo,nombre,email,telefono,direccion\n,Quimicos SA,q@sa.do,809,Santo Domingo\n")
	assert.Equal(t, "", filas[0]["codigo"])
}

func TestImportarIgnoraColumnasExtra(t *testing.T) {
	filas := importar(t, EsquemaSuplidor,
		"codigo,nombre,email,telefono,direccion,extra\nS-1,Quimicos,q@sa.do,809,SD,basura\n")
	require.Len(t, filas, 1)
	_, ok := filas[0]["extra"]
	assert.False(t, ok)
}

func TestImportarFilaCortaUsaDefaults(t *testing.T) {
	// Row shorter than the header: trailing fields coerce from empty.
	filas := importar(t, EsquemaSuplidor,
		"codigo,nombre,email,telefono,direccion\nS-1,Quimicos\n")
	f := filas[0]
	assert.Equal(t, "Quimicos", f["nombre"])
	assert.Equal(t, "N/A", f["email"])
	assert.Equal(t, "N/A", f["direccion"])
}
