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

// EgresoService manages expenses: CRUD, partial payments against the
// outstanding balance, the pending-accounts view and CSV import/export.
type EgresoService interface {
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

type egresoService struct {
	repo       repository.EgresoRepository
	suplidores repository.SuplidorRepository
}

func NewEgresoService(repo repository.EgresoRepository, suplidores repository.SuplidorRepository) EgresoService {
	return &egresoService{repo: repo, suplidores: suplidores}
}

func (s *egresoService) Crear(ctx context.Context, req *dto.CrearRegistroFinancieroRequest, usuario string) (*dto.RegistroFinancieroResponse, error) {
	if req.Monto.Sign() <= 0 {
		return nil, ErrMontoInvalido
	}
	fecha, _ := time.ParseInLocation("2006-01-02", req.Fecha, time.Local)

	var suplidorID *uuid.UUID
	if req.ContactoID != nil && *req.ContactoID != "" {
		id, err := uuid.Parse(*req.ContactoID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		if _, err := s.suplidores.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNoEncontrado
			}
			return nil, err
		}
		suplidorID = &id
	}

	categoria := req.Categoria
	if categoria == "" {
		categoria = "Otro"
	}

	egreso := &model.Egreso{
		ID:            uuid.New(),
		Codigo:        generarCodigo("EGR"),
		Descripcion:   req.Descripcion,
		Monto:         req.Monto,
		Fecha:         fecha,
		Categoria:     categoria,
		SuplidorID:    suplidorID,
		RegistradoPor: usuario,
	}
	if err := s.repo.Create(ctx, egreso); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, egreso.ID)
}

func (s *egresoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.RegistroFinancieroResponse, error) {
	egreso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := s.toResponse(egreso)
	return &resp, nil
}

func (s *egresoService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error) {
	egresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return s.aResponses(egresos), nil
}

// Pendientes lists expenses still carrying a balance. Settled records
// (balance at or below one cent) are excluded.
func (s *egresoService) Pendientes(ctx context.Context, filtro *dto.FiltroListado) ([]dto.RegistroFinancieroResponse, error) {
	egresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	egresos = listado.Aplicar(egresos, func(e model.Egreso) bool { return !e.Saldado() })
	return s.aResponses(egresos), nil
}

func (s *egresoService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.Egreso, error) {
	egresos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	desde, hasta := filtro.RangoFechas()
	egresos = listado.Aplicar(egresos,
		listado.RangoFechas(func(e model.Egreso) time.Time { return e.Fecha }, desde, hasta),
		listado.ContieneTexto(filtro.Buscar,
			func(e model.Egreso) string { return e.Descripcion },
			func(e model.Egreso) string { return e.Codigo },
		),
		listado.CoincideExacto(filtro.Categoria, func(e model.Egreso) string { return e.Categoria }),
		listado.CoincideExacto(filtro.RegistradoPor, func(e model.Egreso) string { return e.RegistradoPor }),
		listado.CoincideExacto(filtro.Contacto, func(e model.Egreso) string {
			if e.SuplidorID == nil {
				return ""
			}
			return e.SuplidorID.String()
		}),
	)

	orden := filtro.OrdenActivo(listado.OrdenPorDefecto())
	return listado.Ordenar(egresos, orden, valorEgreso), nil
}

func valorEgreso(e model.Egreso, clave string) listado.Valor {
	switch clave {
	case "fecha":
		return listado.Fecha(e.Fecha)
	case "monto":
		return listado.Numero(e.Monto)
	case "balance":
		return listado.Numero(e.Balance())
	case "descripcion":
		return listado.Texto(e.Descripcion)
	case "categoria":
		return listado.Texto(e.Categoria)
	case "codigo":
		return listado.Texto(e.Codigo)
	case "suplidor":
		if e.Suplidor == nil {
			return listado.Faltante()
		}
		return listado.Texto(e.Suplidor.Nombre)
	default:
		return listado.Faltante()
	}
}

func (s *egresoService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearRegistroFinancieroRequest) (*dto.RegistroFinancieroResponse, error) {
	egreso, err := s.repo.FindByID(ctx, id)
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
	egreso.Descripcion = req.Descripcion
	egreso.Monto = req.Monto
	egreso.Fecha = fecha
	if req.Categoria != "" {
		egreso.Categoria = req.Categoria
	}
	if req.ContactoID != nil && *req.ContactoID != "" {
		sid, err := uuid.Parse(*req.ContactoID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		egreso.SuplidorID = &sid
	} else {
		egreso.SuplidorID = nil
	}
	egreso.Suplidor = nil
	if err := s.repo.Update(ctx, egreso); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *egresoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AgregarPago registers a partial payment. The payment must be positive
// and may not exceed the outstanding balance, so the balance never goes
// negative. Check and insert run in one transaction with the expense row
// locked; concurrent payments serialize instead of double-spending.
func (s *egresoService) AgregarPago(ctx context.Context, id uuid.UUID, req *dto.AgregarPagoRequest, usuario string) (*dto.RegistroFinancieroResponse, error) {
	if req.Monto.Sign() <= 0 {
		return nil, ErrMontoInvalido
	}
	fecha, _ := time.ParseInLocation("2006-01-02", req.Fecha, time.Local)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		egreso, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoEncontrado
			}
			return err
		}
		if req.Monto.GreaterThan(egreso.Balance()) {
			return ErrPagoExcedeBalance
		}
		return s.repo.AgregarPagoTx(tx, &model.Pago{
			ID:            uuid.New(),
			EgresoID:      &egreso.ID,
			Monto:         req.Monto,
			Fecha:         fecha,
			RegistradoPor: usuario,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	log.Info().Str("egreso", id.String()).Str("monto", req.Monto.String()).
		Str("usuario", usuario).Msg("pago registrado")
	return s.Obtener(ctx, id)
}

func (s *egresoService) EliminarPago(ctx context.Context, id, pagoID uuid.UUID) (*dto.RegistroFinancieroResponse, error) {
	egreso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	existe := false
	for _, p := range egreso.Pagos {
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

func (s *egresoService) Importar(ctx context.Context, contenido string, usuario string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaEgreso.Importar(doc)
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
	lote := make([]*model.Egreso, 0, len(filas))
	for i, fila := range filas {
		codigo := fila["codigo"]
		if codigo == "" {
			codigo = generarCodigo("EGR")
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
		lote = append(lote, &model.Egreso{
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
		Msg("importacion de egresos completada")
	return resp, nil
}

func (s *egresoService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	egresos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(egresos) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(egresos))
	for _, e := range egresos {
		registros = append(registros, csvio.NuevoRegistro().
			Set("codigo", e.Codigo).
			Set("descripcion", e.Descripcion).
			Set("monto", e.Monto.String()).
			Set("fecha", e.Fecha.Format("2006-01-02")).
			Set("categoria", e.Categoria).
			Set("balance", e.Balance().String()))
	}
	return csvio.Serializar(registros), nil
}

func (s *egresoService) aResponses(egresos []model.Egreso) []dto.RegistroFinancieroResponse {
	resultado := make([]dto.RegistroFinancieroResponse, 0, len(egresos))
	for i := range egresos {
		resultado = append(resultado, s.toResponse(&egresos[i]))
	}
	return resultado
}

func (s *egresoService) toResponse(e *model.Egreso) dto.RegistroFinancieroResponse {
	resp := dto.RegistroFinancieroResponse{
		ID:            e.ID.String(),
		Codigo:        e.Codigo,
		Descripcion:   e.Descripcion,
		Monto:         e.Monto,
		Fecha:         e.Fecha.Format("2006-01-02"),
		Categoria:     e.Categoria,
		RegistradoPor: e.RegistradoPor,
		Balance:       e.Balance(),
		Saldado:       e.Saldado(),
		Pagos:         make([]dto.PagoResponse, 0, len(e.Pagos)),
	}
	if e.SuplidorID != nil {
		id := e.SuplidorID.String()
		resp.ContactoID = &id
		if e.Suplidor != nil {
			resp.Contacto = e.Suplidor.Nombre
		}
	}
	for _, p := range e.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			ID:            p.ID.String(),
			Monto:         p.Monto,
			Fecha:         p.Fecha.Format("2006-01-02"),
			RegistradoPor: p.RegistradoPor,
		})
	}
	return resp
}
