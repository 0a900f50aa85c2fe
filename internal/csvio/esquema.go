package csvio

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TipoCampo selects the coercion rule applied to a raw cell.
type TipoCampo int

const (
	// Texto keeps the trimmed value; empty cells become "N/A".
	Texto TipoCampo = iota
	// Numero parses the cell as a decimal number; unparsable cells become "0".
	Numero
	// Fecha validates YYYY-MM-DD; invalid or empty cells become today.
	Fecha
	// Categoria keeps the trimmed value; empty cells become "Otro".
	Categoria
	// Identificador keeps the trimmed value; empty cells stay blank so the
	// storage layer assigns a fresh identifier.
	Identificador
)

// Esquema is the per-domain import contract: which headers must be present
// and how each recognized field is coerced. One schema per entity replaces
// the per-page copies the frontend used to carry.
type Esquema struct {
	Requeridos []string
	Campos     map[string]TipoCampo
}

// Fila is one coerced data row. Every recognized field is present with a
// valid value: numeric fields hold a canonical decimal string, dates hold
// YYYY-MM-DD, and only Identificador fields may be blank.
type Fila map[string]string

// Importar validates the header contract and coerces every data row.
// Header validation is all-or-nothing; row coercion never fails, so a
// malformed cell yields its typed default instead of aborting the batch.
func (e *Esquema) Importar(doc *Documento) ([]Fila, error) {
	if err := e.validarEncabezados(doc.Encabezados); err != nil {
		return nil, err
	}

	posiciones := make(map[string]int, len(doc.Encabezados))
	for i, enc := range doc.Encabezados {
		posiciones[enc] = i
	}

	filas := make([]Fila, 0, len(doc.Filas))
	for _, cruda := range doc.Filas {
		fila := make(Fila, len(e.Campos))
		for campo, tipo := range e.Campos {
			crudo := ""
			if pos, ok := posiciones[campo]; ok && pos < len(cruda) {
				crudo = cruda[pos]
			}
			fila[campo] = coercer(crudo, tipo)
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

func (e *Esquema) validarEncabezados(encabezados []string) error {
	presentes := make(map[string]bool, len(encabezados))
	for _, enc := range encabezados {
		presentes[enc] = true
	}

	var faltantes []string
	for _, req := range e.Requeridos {
		if !presentes[req] {
			faltantes = append(faltantes, req)
		}
	}
	if len(faltantes) > 0 {
		sort.Strings(faltantes)
		return &ErrorColumnasFaltantes{Columnas: faltantes}
	}
	return nil
}

func coercer(crudo string, tipo TipoCampo) string {
	valor := strings.TrimSpace(crudo)
	switch tipo {
	case Numero:
		n, err := decimal.NewFromString(valor)
		if err != nil {
			return "0"
		}
		return n.String()
	case Fecha:
		if _, err := time.Parse("2006-01-02", valor); err != nil {
			return time.Now().Format("2006-01-02")
		}
		return valor
	case Categoria:
		if valor == "" {
			return "Otro"
		}
		return valor
	case Identificador:
		return valor
	default:
		if valor == "" {
			return "N/A"
		}
		return valor
	}
}

// Numero returns the field as a decimal. Coerced rows always hold a valid
// number, so the fallback only fires on fields outside the schema.
func (f Fila) Numero(campo string) decimal.Decimal {
	n, err := decimal.NewFromString(f[campo])
	if err != nil {
		return decimal.Zero
	}
	return n
}

// Entero returns the field truncated to an int.
func (f Fila) Entero(campo string) int {
	return int(f.Numero(campo).IntPart())
}

// ── Per-domain schemas ───────────────────────────────────────────────────────

// EsquemaSuplidor also serves clients; both contact types share the contract.
var EsquemaSuplidor = &Esquema{
	Requeridos: []string{"nombre", "email", "telefono", "direccion"},
	Campos: map[string]TipoCampo{
		"codigo":    Identificador,
		"nombre":    Texto,
		"email":     Texto,
		"telefono":  Texto,
		"direccion": Texto,
	},
}

var EsquemaCliente = EsquemaSuplidor

var EsquemaProducto = &Esquema{
	Requeridos: []string{
		"nombre", "sku", "unidad", "precioventadetalle",
		"precioventamayor", "stock", "nivelreorden",
	},
	Campos: map[string]TipoCampo{
		"sku":                Identificador,
		"nombre":             Texto,
		"unidad":             Texto,
		"precioventadetalle": Numero,
		"precioventamayor":   Numero,
		"stock":              Numero,
		"nivelreorden":       Numero,
	},
}

var EsquemaMateriaPrima = &Esquema{
	Requeridos: []string{
		"nombre", "unidad", "preciocompra", "stock", "nivelreorden", "suplidor",
	},
	Campos: map[string]TipoCampo{
		"codigo":       Identificador,
		"nombre":       Texto,
		"unidad":       Texto,
		"preciocompra": Numero,
		"stock":        Numero,
		"nivelreorden": Numero,
		"suplidor":     Texto,
	},
}

// EsquemaEgreso also serves income records; both are financial records with
// the same import contract.
var EsquemaEgreso = &Esquema{
	Requeridos: []string{"descripcion", "monto", "fecha", "categoria"},
	Campos: map[string]TipoCampo{
		"codigo":      Identificador,
		"descripcion": Texto,
		"monto":       Numero,
		"fecha":       Fecha,
		"categoria":   Categoria,
	},
}

var EsquemaIngreso = EsquemaEgreso
