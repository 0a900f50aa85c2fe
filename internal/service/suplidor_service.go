package service

import (
	"context"
	"strings"
	"time"

	"gestionhomeclean/internal/csvio"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/listado"
	"gestionhomeclean/internal/model"
	"gestionhomeclean/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SuplidorService exposes supplier management: CRUD, filtered listing and
// the CSV import/export surface.
type SuplidorService interface {
	Crear(ctx context.Context, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ContactoResponse, error)
	Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ContactoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error)
	Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error)
}

type suplidorService struct {
	repo repository.SuplidorRepository
}

func NewSuplidorService(repo repository.SuplidorRepository) SuplidorService {
	return &suplidorService{repo: repo}
}

func (s *suplidorService) Crear(ctx context.Context, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error) {
	suplidor := &model.Suplidor{
		ID:        uuid.New(),
		Codigo:    generarCodigo("SUP"),
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, suplidor); err != nil {
		return nil, err
	}
	resp := suplidorToResponse(suplidor)
	return &resp, nil
}

func (s *suplidorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ContactoResponse, error) {
	suplidor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := suplidorToResponse(suplidor)
	return &resp, nil
}

func (s *suplidorService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ContactoResponse, error) {
	suplidores, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.ContactoResponse, 0, len(suplidores))
	for i := range suplidores {
		resultado = append(resultado, suplidorToResponse(&suplidores[i]))
	}
	return resultado, nil
}

// filtrar is the shared pipeline behind Listar and Exportar: the export
// always mirrors what the list view shows.
func (s *suplidorService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.Suplidor, error) {
	suplidores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	desde, hasta := filtro.RangoFechas()
	suplidores = listado.Aplicar(suplidores,
		listado.RangoFechas(func(s model.Suplidor) time.Time { return s.CreatedAt }, desde, hasta),
		listado.ContieneTexto(filtro.Buscar,
			func(s model.Suplidor) string { return s.Nombre },
			func(s model.Suplidor) string { return s.Email },
			func(s model.Suplidor) string { return s.Telefono },
		),
	)

	orden := filtro.OrdenActivo(listado.Orden{Clave: "nombre"})
	return listado.Ordenar(suplidores, orden, valorSuplidor), nil
}

func valorSuplidor(s model.Suplidor, clave string) listado.Valor {
	switch clave {
	case "nombre":
		return listado.Texto(s.Nombre)
	case "codigo":
		return listado.Texto(s.Codigo)
	case "email":
		return listado.Texto(s.Email)
	case "telefono":
		return listado.Texto(s.Telefono)
	case "direccion":
		return listado.Texto(s.Direccion)
	case "fecha":
		return listado.Fecha(s.CreatedAt)
	default:
		return listado.Faltante()
	}
}

func (s *suplidorService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error) {
	suplidor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	suplidor.Nombre = req.Nombre
	suplidor.Email = req.Email
	suplidor.Telefono = req.Telefono
	suplidor.Direccion = req.Direccion
	if err := s.repo.Update(ctx, suplidor); err != nil {
		return nil, err
	}
	resp := suplidorToResponse(suplidor)
	return &resp, nil
}

func (s *suplidorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Importar parses the uploaded CSV, coerces every row and inserts the batch.
// Rows whose codigo collides with an existing supplier (or an earlier row of
// the same file) are skipped, never overwritten.
func (s *suplidorService) Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaSuplidor.Importar(doc)
	if err != nil {
		return nil, err
	}

	existentes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vistos := make(map[string]bool, len(existentes))
	for _, e := range existentes {
		vistos[strings.ToLower(e.Codigo)] = true
	}

	resp := &dto.ImportarResponse{TotalFilas: len(filas)}
	lote := make([]*model.Suplidor, 0, len(filas))
	for i, fila := range filas {
		codigo := fila["codigo"]
		if codigo == "" {
			codigo = generarCodigo("SUP")
		}
		if vistos[strings.ToLower(codigo)] {
			resp.Omitidas++
			resp.Detalle = append(resp.Detalle, dto.FilaOmitida{
				Fila: i + 1, Codigo: codigo, Motivo: "codigo duplicado",
			})
			continue
		}
		vistos[strings.ToLower(codigo)] = true
		lote = append(lote, &model.Suplidor{
			ID:        uuid.New(),
			Codigo:    codigo,
			Nombre:    fila["nombre"],
			Email:     fila["email"],
			Telefono:  fila["telefono"],
			Direccion: fila["direccion"],
		})
	}

	if err := s.repo.CreateLote(ctx, lote); err != nil {
		return nil, err
	}
	resp.Importadas = len(lote)
	log.Info().Int("importadas", resp.Importadas).Int("omitidas", resp.Omitidas).
		Msg("importacion de suplidores completada")
	return resp, nil
}

// Exportar serializes the filtered supplier list. An empty result is an
// error so the handler never offers a headerless download.
func (s *suplidorService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	suplidores, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(suplidores) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(suplidores))
	for _, sup := range suplidores {
		registros = append(registros, csvio.NuevoRegistro().
			Set("codigo", sup.Codigo).
			Set("nombre", sup.Nombre).
			Set("email", sup.Email).
			Set("telefono", sup.Telefono).
			Set("direccion", sup.Direccion))
	}
	return csvio.Serializar(registros), nil
}

func suplidorToResponse(s *model.Suplidor) dto.ContactoResponse {
	return dto.ContactoResponse{
		ID:        s.ID.String(),
		Codigo:    s.Codigo,
		Nombre:    s.Nombre,
		Email:     s.Email,
		Telefono:  s.Telefono,
		Direccion: s.Direccion,
	}
}
