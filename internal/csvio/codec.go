// Package csvio implements the CSV layer shared by every import/export
// surface: a writer that produces spreadsheet-friendly CSV text and a
// reader that reconstructs headers and rows from uploaded files.
//
// The reader is intentionally NOT quote-aware: it splits each line on the
// raw delimiter, matching the format the frontend has always produced and
// consumed. The writer, in contrast, quotes values containing the delimiter
// or quotes (doubling embedded quotes), so a value like `Renta, servicios`
// survives a spreadsheet round trip even though this reader would split it.
// Embedded newlines inside a value are not escaped at all. Both asymmetries
// are known limitations of the format, not bugs.
package csvio

import "strings"

// Delimitador is the only separator the format supports.
const Delimitador = ","

// bom makes Excel and LibreOffice open the export as UTF-8.
const bom = "\ufeff"

// Registro is a flat record with a stable field order. Field order matters:
// the header line of an export is the field order of the first record.
type Registro struct {
	campos  []string
	valores map[string]string
}

// NuevoRegistro returns an empty record.
func NuevoRegistro() *Registro {
	return &Registro{valores: make(map[string]string)}
}

// Set stores a value under campo, preserving first-insertion order.
func (r *Registro) Set(campo, valor string) *Registro {
	if _, ok := r.valores[campo]; !ok {
		r.campos = append(r.campos, campo)
	}
	r.valores[campo] = valor
	return r
}

// Campos returns the field names in insertion order.
func (r *Registro) Campos() []string { return r.campos }

// Valor returns the stored value; missing fields render as empty string.
func (r *Registro) Valor(campo string) string { return r.valores[campo] }

// Serializar converts records to CSV text. An empty input produces an empty
// string; callers must short-circuit and surface "nothing to export" before
// offering a download. Column order is taken from the first record.
func Serializar(registros []*Registro) string {
	if len(registros) == 0 {
		return ""
	}

	campos := registros[0].Campos()
	lineas := make([]string, 0, len(registros)+1)
	lineas = append(lineas, strings.Join(campos, Delimitador))

	for _, reg := range registros {
		celdas := make([]string, len(campos))
		for i, campo := range campos {
			celdas[i] = escapar(reg.Valor(campo))
		}
		lineas = append(lineas, strings.Join(celdas, Delimitador))
	}

	return bom + strings.Join(lineas, "\n")
}

// escapar doubles embedded quotes and wraps the value in quotes when it
// contains the delimiter or a quote. Newlines are left untouched.
func escapar(valor string) string {
	if !strings.Contains(valor, Delimitador) && !strings.Contains(valor, `"`) {
		return valor
	}
	return `"` + strings.ReplaceAll(valor, `"`, `""`) + `"`
}

// Documento is the raw result of parsing an uploaded CSV file.
type Documento struct {
	// Encabezados are lower-cased and trimmed for matching against schemas.
	Encabezados []string
	Filas       [][]string
}

// Deserializar splits text into a header row plus data rows. Lines may end
// in CRLF or LF; fully blank lines are discarded. Fewer than two meaningful
// lines (header only, or nothing) is ErrEntradaVacia.
func Deserializar(texto string) (*Documento, error) {
	texto = strings.TrimPrefix(texto, bom)

	var lineas []string
	for _, linea := range strings.Split(strings.ReplaceAll(texto, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(linea) == "" {
			continue
		}
		lineas = append(lineas, linea)
	}
	if len(lineas) < 2 {
		return nil, ErrEntradaVacia
	}

	crudos := strings.Split(lineas[0], Delimitador)
	encabezados := make([]string, len(crudos))
	for i, e := range crudos {
		encabezados[i] = strings.ToLower(strings.TrimSpace(e))
	}

	filas := make([][]string, 0, len(lineas)-1)
	for _, linea := range lineas[1:] {
		filas = append(filas, strings.Split(linea, Delimitador))
	}

	return &Documento{Encabezados: encabezados, Filas: filas}, nil
}
