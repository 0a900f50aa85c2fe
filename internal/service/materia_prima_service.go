package service

import (
	"context"
	"strings"

	"gestionhomeclean/internal/csvio"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/listado"
	"gestionhomeclean/internal/model"
	"gestionhomeclean/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MateriaPrimaService interface {
	Crear(ctx context.Context, req *dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error)
	Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.MateriaPrimaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error)
	Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error)
}

type materiaPrimaService struct {
	repo       repository.MateriaPrimaRepository
	suplidores repository.SuplidorRepository
}

func NewMateriaPrimaService(repo repository.MateriaPrimaRepository, suplidores repository.SuplidorRepository) MateriaPrimaService {
	return &materiaPrimaService{repo: repo, suplidores: suplidores}
}

func (s *materiaPrimaService) Crear(ctx context.Context, req *dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	suplidorID, err := s.resolverSuplidor(ctx, req.SuplidorID)
	if err != nil {
		return nil, err
	}

	materia := &model.MateriaPrima{
		ID:           uuid.New(),
		Codigo:       generarCodigo("MAT"),
		Nombre:       req.Nombre,
		Unidad:       req.Unidad,
		PrecioCompra: req.PrecioCompra,
		Stock:        req.Stock,
		NivelReorden: req.NivelReorden,
		SuplidorID:   suplidorID,
	}
	if err := s.repo.Create(ctx, materia); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, materia.ID)
}

// resolverSuplidor validates the optional supplier link before persisting.
func (s *materiaPrimaService) resolverSuplidor(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.suplidores.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &id, nil
}

func (s *materiaPrimaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error) {
	materia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := materiaToResponse(materia)
	return &resp, nil
}

func (s *materiaPrimaService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.MateriaPrimaResponse, error) {
	materias, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.MateriaPrimaResponse, 0, len(materias))
	for i := range materias {
		resultado = append(resultado, materiaToResponse(&materias[i]))
	}
	return resultado, nil
}

func (s *materiaPrimaService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.MateriaPrima, error) {
	materias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	materias = listado.Aplicar(materias,
		listado.ContieneTexto(filtro.Buscar,
			func(m model.MateriaPrima) string { return m.Nombre },
			func(m model.MateriaPrima) string { return m.Codigo },
		),
		listado.CoincideExacto(filtro.Contacto, func(m model.MateriaPrima) string {
			if m.SuplidorID == nil {
				return ""
			}
			return m.SuplidorID.String()
		}),
	)

	orden := filtro.OrdenActivo(listado.Orden{Clave: "nombre"})
	return listado.Ordenar(materias, orden, valorMateria), nil
}

// valorMateria projects the sort key; "suplidor" resolves the joined
// supplier name so the column orders by what the user actually sees.
func valorMateria(m model.MateriaPrima, clave string) listado.Valor {
	switch clave {
	case "nombre":
		return listado.Texto(m.Nombre)
	case "codigo":
		return listado.Texto(m.Codigo)
	case "precio_compra":
		return listado.Numero(m.PrecioCompra)
	case "stock":
		return listado.Numero(decimalDeEntero(m.Stock))
	case "suplidor":
		if m.Suplidor == nil {
			return listado.Faltante()
		}
		return listado.Texto(m.Suplidor.Nombre)
	case "fecha":
		return listado.Fecha(m.CreatedAt)
	default:
		return listado.Faltante()
	}
}

func (s *materiaPrimaService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	materia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	suplidorID, err := s.resolverSuplidor(ctx, req.SuplidorID)
	if err != nil {
		return nil, err
	}

	materia.Nombre = req.Nombre
	materia.Unidad = req.Unidad
	materia.PrecioCompra = req.PrecioCompra
	materia.Stock = req.Stock
	materia.NivelReorden = req.NivelReorden
	materia.SuplidorID = suplidorID
	materia.Suplidor = nil
	if err := s.repo.Update(ctx, materia); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *materiaPrimaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Importar links each row to a supplier by name when one matches; unknown
// supplier names leave the material unlinked rather than failing the row.
func (s *materiaPrimaService) Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaMateriaPrima.Importar(doc)
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

	suplidores, err := s.suplidores.List(ctx)
	if err != nil {
		return nil, err
	}
	porNombre := make(map[string]uuid.UUID, len(suplidores))
	for _, sup := range suplidores {
		porNombre[strings.ToLower(sup.Nombre)] = sup.ID
	}

	resp := &dto.ImportarResponse{TotalFilas: len(filas)}
	lote := make([]*model.MateriaPrima, 0, len(filas))
	for i, fila := range filas {
		codigo := fila["codigo"]
		if codigo == "" {
			codigo = generarCodigo("MAT")
		}
		if vistos[strings.ToLower(codigo)] {
			resp.Omitidas++
			resp.Detalle = append(resp.Detalle, dto.FilaOmitida{
				Fila: i + 1, Codigo: codigo, Motivo: "codigo duplicado",
			})
			continue
		}
		vistos[strings.ToLower(codigo)] = true

		var suplidorID *uuid.UUID
		if id, ok := porNombre[strings.ToLower(fila["suplidor"])]; ok {
			suplidorID = &id
		}

		lote = append(lote, &model.MateriaPrima{
			ID:           uuid.New(),
			Codigo:       codigo,
			Nombre:       fila["nombre"],
			Unidad:       fila["unidad"],
			PrecioCompra: fila.Numero("preciocompra"),
			Stock:        fila.Entero("stock"),
			NivelReorden: fila.Entero("nivelreorden"),
			SuplidorID:   suplidorID,
		})
	}

	if err := s.repo.CreateLote(ctx, lote); err != nil {
		return nil, err
	}
	resp.Importadas = len(lote)
	log.Info().Int("importadas", resp.Importadas).Int("omitidas", resp.Omitidas).
		Msg("importacion de materias primas completada")
	return resp, nil
}

func (s *materiaPrimaService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	materias, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(materias) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(materias))
	for _, m := range materias {
		suplidor := ""
		if m.Suplidor != nil {
			suplidor = m.Suplidor.Nombre
		}
		registros = append(registros, csvio.NuevoRegistro().
			Set("codigo", m.Codigo).
			Set("nombre", m.Nombre).
			Set("unidad", m.Unidad).
			Set("preciocompra", m.PrecioCompra.String()).
			Set("stock", entero(m.Stock)).
			Set("nivelreorden", entero(m.NivelReorden)).
			Set("suplidor", suplidor))
	}
	return csvio.Serializar(registros), nil
}

func materiaToResponse(m *model.MateriaPrima) dto.MateriaPrimaResponse {
	resp := dto.MateriaPrimaResponse{
		ID:           m.ID.String(),
		Codigo:       m.Codigo,
		Nombre:       m.Nombre,
		Unidad:       m.Unidad,
		PrecioCompra: m.PrecioCompra,
		Stock:        m.Stock,
		NivelReorden: m.NivelReorden,
		BajoStock:    m.BajoStock(),
	}
	if m.SuplidorID != nil {
		id := m.SuplidorID.String()
		resp.SuplidorID = &id
	}
	if m.Suplidor != nil {
		resp.Suplidor = m.Suplidor.Nombre
	}
	return resp
}
