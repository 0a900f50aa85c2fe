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

// AlertaStock describes an item that crossed its reorder level. Services
// hand these to a NotificadorAlertas instead of talking to the job queue
// directly, so unit tests can stub the notification path.
type AlertaStock struct {
	Tipo         string // producto | materia_prima
	ID           string
	Nombre       string
	Stock        int
	NivelReorden int
}

type NotificadorAlertas interface {
	Notificar(ctx context.Context, alerta AlertaStock)
}

type ProductoService interface {
	Crear(ctx context.Context, req *dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Consultar(ctx context.Context, sku string) (*dto.ConsultaProductoResponse, error)
	Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req *dto.AjustarStockRequest, usuario string) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error)
	Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	alertas NotificadorAlertas
}

func NewProductoService(repo repository.ProductoRepository, alertas NotificadorAlertas) ProductoService {
	return &productoService{repo: repo, alertas: alertas}
}

func (s *productoService) Crear(ctx context.Context, req *dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, ErrCodigoDuplicado
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	producto := &model.Producto{
		ID:            uuid.New(),
		SKU:           req.SKU,
		Nombre:        req.Nombre,
		Unidad:        req.Unidad,
		PrecioDetalle: req.PrecioDetalle,
		PrecioMayor:   req.PrecioMayor,
		Stock:         req.Stock,
		NivelReorden:  req.NivelReorden,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

// Consultar is the public price-check lookup by SKU.
func (s *productoService) Consultar(ctx context.Context, sku string) (*dto.ConsultaProductoResponse, error) {
	producto, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &dto.ConsultaProductoResponse{
		Nombre:        producto.Nombre,
		Unidad:        producto.Unidad,
		PrecioDetalle: producto.PrecioDetalle,
		PrecioMayor:   producto.PrecioMayor,
		Stock:         producto.Stock,
	}, nil
}

func (s *productoService) Listar(ctx context.Context, filtro *dto.FiltroListado) ([]dto.ProductoResponse, error) {
	productos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resultado = append(resultado, productoToResponse(&productos[i]))
	}
	return resultado, nil
}

func (s *productoService) filtrar(ctx context.Context, filtro *dto.FiltroListado) ([]model.Producto, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	productos = listado.Aplicar(productos,
		listado.ContieneTexto(filtro.Buscar,
			func(p model.Producto) string { return p.Nombre },
			func(p model.Producto) string { return p.SKU },
		),
	)

	orden := filtro.OrdenActivo(listado.Orden{Clave: "nombre"})
	return listado.Ordenar(productos, orden, valorProducto), nil
}

func valorProducto(p model.Producto, clave string) listado.Valor {
	switch clave {
	case "nombre":
		return listado.Texto(p.Nombre)
	case "sku":
		return listado.Texto(p.SKU)
	case "precio_detalle":
		return listado.Numero(p.PrecioDetalle)
	case "precio_mayor":
		return listado.Numero(p.PrecioMayor)
	case "stock":
		return listado.Numero(decimalDeEntero(p.Stock))
	case "fecha":
		return listado.Fecha(p.CreatedAt)
	default:
		return listado.Faltante()
	}
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req *dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	producto.SKU = req.SKU
	producto.Nombre = req.Nombre
	producto.Unidad = req.Unidad
	producto.PrecioDetalle = req.PrecioDetalle
	producto.PrecioMayor = req.PrecioMayor
	producto.Stock = req.Stock
	producto.NivelReorden = req.NivelReorden
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

// AjustarStock applies a delta from a receiving or consumption event. A
// negative adjustment may not take the stock below zero. Crossing the
// reorder level fires a low-stock alert.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req *dto.AjustarStockRequest, usuario string) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if producto.Stock+req.Delta < 0 {
		return nil, ErrStockNegativo
	}

	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	producto.Stock += req.Delta

	log.Info().Str("producto", producto.SKU).Int("delta", req.Delta).
		Str("motivo", req.Motivo).Str("usuario", usuario).Msg("stock ajustado")

	if producto.BajoStock() && s.alertas != nil {
		s.alertas.Notificar(ctx, AlertaStock{
			Tipo:         "producto",
			ID:           producto.ID.String(),
			Nombre:       producto.Nombre,
			Stock:        producto.Stock,
			NivelReorden: producto.NivelReorden,
		})
	}

	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productoService) Importar(ctx context.Context, contenido string) (*dto.ImportarResponse, error) {
	doc, err := csvio.Deserializar(contenido)
	if err != nil {
		return nil, err
	}
	filas, err := csvio.EsquemaProducto.Importar(doc)
	if err != nil {
		return nil, err
	}

	existentes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vistos := make(map[string]bool, len(existentes))
	for _, e := range existentes {
		vistos[strings.ToLower(e.SKU)] = true
	}

	resp := &dto.ImportarResponse{TotalFilas: len(filas)}
	lote := make([]*model.Producto, 0, len(filas))
	for i, fila := range filas {
		sku := fila["sku"]
		if sku == "" {
			sku = generarCodigo("PRO")
		}
		if vistos[strings.ToLower(sku)] {
			resp.Omitidas++
			resp.Detalle = append(resp.Detalle, dto.FilaOmitida{
				Fila: i + 1, Codigo: sku, Motivo: "sku duplicado",
			})
			continue
		}
		vistos[strings.ToLower(sku)] = true
		lote = append(lote, &model.Producto{
			ID:            uuid.New(),
			SKU:           sku,
			Nombre:        fila["nombre"],
			Unidad:        fila["unidad"],
			PrecioDetalle: fila.Numero("precioventadetalle"),
			PrecioMayor:   fila.Numero("precioventamayor"),
			Stock:         fila.Entero("stock"),
			NivelReorden:  fila.Entero("nivelreorden"),
		})
	}

	if err := s.repo.CreateLote(ctx, lote); err != nil {
		return nil, err
	}
	resp.Importadas = len(lote)
	log.Info().Int("importadas", resp.Importadas).Int("omitidas", resp.Omitidas).
		Msg("importacion de productos completada")
	return resp, nil
}

func (s *productoService) Exportar(ctx context.Context, filtro *dto.FiltroListado) (string, error) {
	productos, err := s.filtrar(ctx, filtro)
	if err != nil {
		return "", err
	}
	if len(productos) == 0 {
		return "", ErrSinRegistros
	}

	registros := make([]*csvio.Registro, 0, len(productos))
	for _, p := range productos {
		registros = append(registros, csvio.NuevoRegistro().
			Set("sku", p.SKU).
			Set("nombre", p.Nombre).
			Set("unidad", p.Unidad).
			Set("precioventadetalle", p.PrecioDetalle.String()).
			Set("precioventamayor", p.PrecioMayor.String()).
			Set("stock", entero(p.Stock)).
			Set("nivelreorden", entero(p.NivelReorden)))
	}
	return csvio.Serializar(registros), nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Nombre:        p.Nombre,
		Unidad:        p.Unidad,
		PrecioDetalle: p.PrecioDetalle,
		PrecioMayor:   p.PrecioMayor,
		Stock:         p.Stock,
		NivelReorden:  p.NivelReorden,
		BajoStock:     p.BajoStock(),
	}
}
