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

// IngresoService mirrors EgresoService for the income side: accounts
// receivable instead of payable, linked to clients instead of suppliers.
type IngresoService interface {
	Crear(ctx context.Context, req *dto.CrearRegistroFinancieroRequest, usuario string) (*dto.RegistroFinancieroResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.RegistroFinancieroResponse, error)
	Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error)
	Pendientes(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearRegistroFinancieroRequest) (*dto.RegistroFinancieroResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	AgregarPago(ctx context.Context, id uuid.UUID, req *dto.AgregarPagoRequest, usuario string) (*dto.RegistroFinancieroResponse, error)
	EliminarPago(ctx context.Context, id, pagoID uuid.UUID) (*dto.RegistroFinancieroResponse, error)
	Importar(ctx context.Context, contenido string, usuario string) (*dto.ImportarResponse, error)
	Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error)
}

type ingresoService struct {
	repo     repository.IngresoRepository
	clientes repository.ClienteRepository
}

func NewIngresoService(repo repository.IngresoRepository, clientes repository.ClienteRepository) IngresoService {
	return &ingresoService{repo: repo, clientes: clientes}
}

func (s *ingresoService) Crear(ctx context.Context, req *dto.CrearRegistroFinancieroRequest, usuario string) (*dto.RegistroFinancieroResponse, error) {
	if req.Monto.Sign() <= 0 {
		return nil, ErrMontoInvalido
	}
	fecha, _ := time.ParseInLocation("2006-01-02", req.Fecha, time.Local)

	var clienteID *uuid.UUID
	if req.ContactoID != nil && *req.ContactoID != "" {
		id, err := uuid.Parse(*req.ContactoID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		if _, err := s.clientes.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNoEncontrado
			}
			return nil, err
		}
		clienteID = &id
	}

	categoria := req.Categoria
	if categoria == "" {
		categoria = "Otro"
	}

	ingreso := &model.Ingreso{
		ID:            uuid.New(),
		Codigo:        generarCodigo("ING"),
		Descripcion:   req.Descripcion,
		Monto:         req.Monto,
		Fecha:         fecha,
		Categoria:     categoria,
		ClienteID:     clienteID,
		RegistradoPor: usuario,
	}
	if err := s.repo.Create(ctx, ingreso); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, ingreso.ID)
}

func (s *ingresoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.RegistroFinancieroResponse, error) {
	ingreso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := s.toResponse(ingreso)
	return &resp, nil
}

func (s *ingresoService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error) {
	ingresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return s.aResponses(ingresos), nil
}

func (s *ingresoService) Pendientes(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error) {
	ingresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	ingresos = listado.Aplicar(ingresos, func(i model.Ingreso) bool { return !i.Saldado() })
	return s.aResponses(ingresos), nil
}

func (s *ingresoService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.Ingreso, error) {
	ingresos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	desde, hasta := filtro.RangoFechas()
	ingresos = listado.Aplicar(ingresos,
		listado.RangoFechas(func(i model.Ingreso) time.Time { return i.Fecha }, desde, hasta),
		listado.ContieneTexto(filtro.Buscar,
			func(i model.Ingreso) string { return i.Descripcion },
			func(i model.Ingreso) string { return i.Codigo },
		),
		listado.CoincideExacto(filtro.Categoria, func(i model.Ingreso) string { return i.Categoria }),
		listado.CoincideExacto(filtro.RegistradoPor, func(i model.Ingreso) string { return i.RegistradoPor }),
		listado.CoincideExacto(filtro.Contacto, func(i model.Ingreso) string {
			if i.ClienteID == nil {
				return ""
			}
			return i.ClienteID.String()
		}),
	)

	orden := filtro.OrdenActivo(listado.OrdenPorDefecto())
	return listado.Ordenar(ingresos, orden, valorIngreso), nil
}

func valorIngreso(i model.Ingreso, clave string) listado.Valor {
	switch clave {
	case "fecha":
		return listado.Fecha(i.Fecha)
	case "monto":
		return listado.Numero(i.Monto)
	case "balance":
		return listado.Numero(i.Balance())
	case "descripcion":
		return listado.Texto(i.Descripcion)
	case "categoria":
		return listado.Texto(i.Categoria)
	case "codigo":
		return listado.Texto(i.Codigo)
	case "cliente":
		if i.Cliente == nil {
			return listado.Faltante()
		}
		return listado.Texto(i.Cliente.Nombre)
	default:
		return listado.Faltante()
	}
}

func (s *ingresoService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearRegistroFinancieroRequest) (*dto.RegistroFinancieroResponse, error) {
	ingreso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.Monto.Sign() <= 0 {
		return nil, ErrMontoInvalido
	}
	fecha, _ := time.ParseInLocation("2006-01-02", req.Fecha, time.Local)
	ingreso.Descripcion = req.Descripcion
	ingreso.Monto = req.Monto
	ingreso.Fecha = fecha
	if req.Categoria != "" {
		ingreso.Categoria = req.Categoria
	}
	if req.ContactoID != nil && *req.ContactoID != "" {
		cid, err := uuid.Parse(*req.ContactoID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		ingreso.ClienteID = &cid
	} else {
		ingreso.ClienteID = nil
	}
	ingreso.Cliente = nil
	if err := s.repo.Update(ctx, ingreso); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *ingresoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AgregarPago mirrors the expense side: positive amount, never more than
// the outstanding balance, checked and inserted under a row lock.
func (s *ingresoService) AgregarPago(ctx context.Context, id uuid.UUID, req *dto.AgregarPagoRequest, usuario string) (*dto.RegistroFinancieroResponse, error) {
	if req.Monto.Sign() <= 0 {
		return nil, ErrMontoInvalido
	}
	fecha, _ := time.ParseInLocation("2006-01-02", req.Fecha, time.Local)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ingreso, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoEncontrado
			}
			return err
		}
		if req.Monto.GreaterThan(ingreso.Balance()) {
			return ErrPagoExcedeBalance
		}
		return s.repo.AgregarPagoTx(tx, &model.Pago{
			ID:            uuid.New(),
			IngresoID:     &ingreso.ID,
			Monto:         req.Monto,
			Fecha:         fecha,
			RegistradoPor: usuario,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	log.Info().Str("ingreso", id.String()).Str("monto", req.Monto.String()).
		Str("usuario", usuario).Msg("pago registrado")
	return s.Obtener(ctx, id)
}

func (s *ingresoService) EliminarPago(ctx context.Context, id, pagoID uuid.UUID) (*dto.RegistroFinancieroResponse, error) {
	ingreso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	existe := false
	for _, p := range ingreso.Pagos {
		if p.ID == pagoID {
			existe = true
			break
		}
	}
	if !existe {
		return nil, ErrNoEncontrado
	}
	if err := s.repo.EliminarPago(ctx, pagoID); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *ingresoService) Importar(ctx context.Context, contenido string, usuario string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaIngreso.Importar(doc)
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
	lote := make([]*model.Ingreso, 0, len(filas))
	for i, fila := range filas {
		codigo := fila["codigo"]
		if codigo == "" {
			codigo = generarCodigo("ING")
		}
		if vistos[strings.ToLower(codigo)] {
			resp.Omitidas++
			resp.Detalle = append(resp.Detalle, dto.FilaOmitida{
				Fila: i + 1, Codigo: codigo, Motivo: "codigo duplicado",
			})
			continue
		}
		vistos[strings.ToLower(codigo)] = true

		fecha, _ := time.ParseInLocation("2006-01-02", fila["fecha"], time.Local)
		lote = append(lote, &model.Ingreso{
			ID:            uuid.New(),
			Codigo:        codigo,
			Descripcion:   fila["descripcion"],
			Monto:         fila.Numero("monto"),
			Fecha:         fecha,
			Categoria:     fila["categoria"],
			RegistradoPor: usuario,
		})
	}

	if err := s.repo.CreateLote(ctx, lote); err != nil {
		return nil, err
	}
	resp.Importadas = len(lote)
	log.Info().Int("importadas", resp.Importadas).Int("omitidas", resp.Omitidas).
		Msg("importacion de ingresos completada")
	return resp, nil
}

func (s *ingresoService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	ingresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(ingresos) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(ingresos))
	for _, i := range ingresos {
		registros = append(registros, csvio.NuevoRegistro().
			Set("codigo", i.Codigo).
			Set("descripcion", i.Descripcion).
			Set("monto", i.Monto.String()).
			Set("fecha", i.Fecha.Format("2006-01-02")).
			Set("categoria", i.Categoria).
			Set("balance", i.Balance().String()))
	}
	return csvio.Serializar(registros), nil
}

func (s *ingresoService) aResponses(ingresos []model.Ingreso) []dto.RegistroFinancieroResponse {
	resultado := make([]dto.RegistroFinancieroResponse, 0, len(ingresos))
	for i := range ingresos {
		resultado = append(resultado, s.toResponse(&ingresos[i]))
	}
	return resultado
}

func (s *ingresoService) toResponse(i *model.Ingreso) dto.RegistroFinancieroResponse {
	resp := dto.RegistroFinancieroResponse{
		ID:            i.ID.String(),
		Codigo:        i.Codigo,
		Descripcion:   i.Descripcion,
		Monto:         i.Monto,
		Fecha:         i.Fecha.Format("2006-01-02"),
		Categoria:     i.Categoria,
		RegistradoPor: i.RegistradoPor,
		Balance:       i.Balance(),
		Saldado:       i.Saldado(),
		Pagos:         make([]dto.PagoResponse, 0, len(i.Pagos)),
	}
	if i.ClienteID != nil {
		id := i.ClienteID.String()
		resp.ContactoID = &id
		if i.Cliente != nil {
			resp.Contacto = i.Cliente.Nombre
		}
	}
	for _, p := range i.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			ID:            p.ID.String(),
			Monto:         p.Monto,
			Fecha:         p.Fecha.Format("2006-01-02"),
			RegistradoPor: p.RegistradoPor,
		})
	}
	return resp
}
