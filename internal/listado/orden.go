package listado

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Orden holds the active sort key and direction.
type Orden struct {
	Clave       string
	Descendente bool
}

// OrdenPorDefecto is the list default for financial views: newest first.
func OrdenPorDefecto() Orden {
	return Orden{Clave: "fecha", Descendente: true}
}

// Alternar implements the header-click contract: selecting the current key
// flips the direction, selecting a new key resets to ascending.
func (o *Orden) Alternar(clave string) {
	if o.Clave == clave {
		o.Descendente = !o.Descendente
		return
	}
	o.Clave = clave
	o.Descendente = false
}

// Text columns compare with Spanish collation; Numeric makes "prod10" sort
// after "prod2" and Loose ignores case and accents.
var (
	colladorOnce sync.Once
	collador     *collate.Collator
)

func comparadorTexto() *collate.Collator {
	colladorOnce.Do(func() {
		collador = collate.New(language.Spanish, collate.Numeric, collate.Loose)
	})
	return collador
}

// Ordenar returns a sorted copy of items. valor projects each record onto
// the comparable value for the given key (resolving joined fields first,
// e.g. a contact name looked up by foreign id). Records missing the value
// sort to the end in both directions; ties keep input order.
func Ordenar[T any](items []T, orden Orden, valor func(T, string) Valor) []T {
	resultado := make([]T, len(items))
	copy(resultado, items)

	direccion := 1
	if orden.Descendente {
		direccion = -1
	}

	sort.SliceStable(resultado, func(i, j int) bool {
		a := valor(resultado[i], orden.Clave)
		b := valor(resultado[j], orden.Clave)

		// Missing values go last regardless of direction.
		if a.clase == claseFaltante || b.clase == claseFaltante {
			return a.clase != claseFaltante && b.clase == claseFaltante
		}

		return direccion*comparar(a, b) < 0
	})
	return resultado
}

func comparar(a, b Valor) int {
	switch {
	case a.clase == claseNumero && b.clase == claseNumero:
		return a.numero.Cmp(b.numero)
	case a.clase == claseFecha && b.clase == claseFecha:
		switch {
		case a.fecha.Before(b.fecha):
			return -1
		case a.fecha.After(b.fecha):
			return 1
		default:
			return 0
		}
	default:
		return comparadorTexto().CompareString(textoDe(a), textoDe(b))
	}
}

func textoDe(v Valor) string {
	switch v.clase {
	case claseNumero:
		return v.numero.String()
	case claseFecha:
		return v.fecha.Format("2006-01-02 15:04:05")
	default:
		return v.texto
	}
}
