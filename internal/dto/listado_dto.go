package dto

import (
	"time"

	"gestionhomeclean/internal/listado"
)

// FiltroListado is the query-string contract shared by every list and export
// endpoint. All filters are optional and combine with AND; "all" or empty
// disables an exact-match filter.
type FiltroListado struct {
	Desde         string `form:"desde"`  // YYYY-MM-DD inclusive
	Hasta         string `form:"hasta"`  // YYYY-MM-DD inclusive
	Buscar        string `form:"buscar"` // free text, case-insensitive
	Categoria     string `form:"categoria"`
	RegistradoPor string `form:"registrado_por"`
	Contacto      string `form:"contacto"` // linked cliente/suplidor id
	Orden         string `form:"orden"`    // sort key
	Dir           string `form:"dir"`      // asc | desc
}

// RangoFechas parses the bounds; a malformed or empty bound is treated as
// unbounded on that side.
func (f *FiltroListado) RangoFechas() (desde, hasta *time.Time) {
	if t, err := time.ParseInLocation("2006-01-02", f.Desde, time.Local); err == nil {
		desde = &t
	}
	if t, err := time.ParseInLocation("2006-01-02", f.Hasta, time.Local); err == nil {
		hasta = &t
	}
	return desde, hasta
}

// OrdenActivo resolves the sort state: no key means the view default.
func (f *FiltroListado) OrdenActivo(porDefecto listado.Orden) listado.Orden {
	if f.Orden == "" {
		return porDefecto
	}
	return listado.Orden{Clave: f.Orden, Descendente: f.Dir == "desc"}
}
