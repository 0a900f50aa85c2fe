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

type ClienteService interface {
	Crear(ctx context.Context, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ContactoResponse, error)
	Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ContactoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error)
	Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error) {
	cliente := &model.Cliente{
		ID:        uuid.New(),
		Codigo:    generarCodigo("CLI"),
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ContactoResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ContactoResponse, error) {
	clientes, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.ContactoResponse, 0, len(clientes))
	for i := range clientes {
		resultado = append(resultado, clienteToResponse(&clientes[i]))
	}
	return resultado, nil
}

func (s *clienteService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.Cliente, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	desde, hasta := filtro.RangoFechas()
	clientes = listado.Aplicar(clientes,
		listado.RangoFechas(func(c model.Cliente) time.Time { return c.CreatedAt }, desde, hasta),
		listado.ContieneTexto(filtro.Buscar,
			func(c model.Cliente) string { return c.Nombre },
			func(c model.Cliente) string { return c.Email },
			func(c model.Cliente) string { return c.Telefono },
		),
	)

	orden := filtro.OrdenActivo(listado.Orden{Clave: "nombre"})
	return listado.Ordenar(clientes, orden, valorCliente), nil
}

func valorCliente(c model.Cliente, clave string) listado.Valor {
	switch clave {
	case "nombre":
		return listado.Texto(c.Nombre)
	case "codigo":
		return listado.Texto(c.Codigo)
	case "email":
		return listado.Texto(c.Email)
	case "telefono":
		return listado.Texto(c.Telefono)
	case "direccion":
		return listado.Texto(c.Direccion)
	case "fecha":
		return listado.Fecha(c.CreatedAt)
	default:
		return listado.Faltante()
	}
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearContactoRequest) (*dto.ContactoResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	cliente.Nombre = req.Nombre
	cliente.Email = req.Email
	cliente.Telefono = req.Telefono
	cliente.Direccion = req.Direccion
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *clienteService) Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaCliente.Importar(doc)
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
	lote := make([]*model.Cliente, 0, len(filas))
	for i, fila := range filas {
		codigo := fila["codigo"]
		if codigo == "" {
			codigo = generarCodigo("CLI")
		}
		if vistos[strings.ToLower(codigo)] {
			resp.Omitidas++
			resp.Detalle = append(resp.Detalle, dto.FilaOmitida{
				Fila: i + 1, Codigo: codigo, Motivo: "codigo duplicado",
			})
			continue
		}
		vistos[strings.ToLower(codigo)] = true
		lote = append(lote, &model.Cliente{
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
		Msg("importacion de clientes completada")
	return resp, nil
}

func (s *clienteService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	clientes, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(clientes) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(clientes))
	for _, cli := range clientes {
		registros = append(registros, csvio.NuevoRegistro().
			Set("codigo", cli.Codigo).
			Set("nombre", cli.Nombre).
			Set("email", cli.Email).
			Set("telefono", cli.Telefono).
			Set("direccion", cli.Direccion))
	}
	return csvio.Serializar(registros), nil
}

func clienteToResponse(c *model.Cliente) dto.ContactoResponse {
	return dto.ContactoResponse{
		ID:        c.ID.String(),
		Codigo:    c.Codigo,
		Nombre:    c.Nombre,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
	}
}
