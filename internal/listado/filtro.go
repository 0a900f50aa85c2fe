package listado

import (
	"strings"
	"time"
)

// Filtro is one optional predicate; active filters combine with logical AND.
type Filtro[T any] func(T) bool

// TodosSentinela is the exact-match value meaning "no filtering".
const TodosSentinela = "all"

// Aplicar returns the records accepted by every filter, in input order.
func Aplicar[T any](items []T, filtros ...Filtro[T]) []T {
	resultado := make([]T, 0, len(items))
	for _, item := range items {
		acepta := true
		for _, f := range filtros {
			if !f(item) {
				acepta = false
				break
			}
		}
		if acepta {
			resultado = append(resultado, item)
		}
	}
	return resultado
}

// RangoFechas keeps records whose date falls within [desde 00:00:00,
// hasta 23:59:59] inclusive, at local midnight. A nil bound leaves that
// side unbounded; both nil means no filtering.
func RangoFechas[T any](campo func(T) time.Time, desde, hasta *time.Time) Filtro[T] {
	var inicio, fin time.Time
	if desde != nil {
		d := *desde
		inicio = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	if hasta != nil {
		h := *hasta
		fin = time.Date(h.Year(), h.Month(), h.Day(), 23, 59, 59, 0, h.Location())
	}
	return func(item T) bool {
		fecha := campo(item)
		if desde != nil && fecha.Before(inicio) {
			return false
		}
		if hasta != nil && fecha.After(fin) {
			return false
		}
		return true
	}
}

// ContieneTexto keeps records where any configured field contains the search
// term, case-insensitively. An empty term means no filtering.
func ContieneTexto[T any](termino string, campos ...func(T) string) Filtro[T] {
	termino = strings.ToLower(strings.TrimSpace(termino))
	return func(item T) bool {
		if termino == "" {
			return true
		}
		for _, campo := range campos {
			if strings.Contains(strings.ToLower(campo(item)), termino) {
				return true
			}
		}
		return false
	}
}

// CoincideExacto keeps records whose field equals the selected value. The
// sentinel "all" and the empty string mean no filtering.
func CoincideExacto[T any](valor string, campo func(T) string) Filtro[T] {
	return func(item T) bool {
		if valor == "" || valor == TodosSentinela {
			return true
		}
		return campo(item) == valor
	}
}
