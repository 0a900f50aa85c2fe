package handler

import (
	"context"
	"net/http"

	"gestionhomeclean/internal/apierror"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ProductosHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewProductosHandler(svc service.ProductoService, rdb *redis.Client) *ProductosHandler {
	return &ProductosHandler{svc: svc, rdb: rdb}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), &req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.invalidarCache(c.Request.Context(), req.SKU)
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	filtro, ok := bindFiltro(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, &req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.invalidarCache(c.Request.Context(), req.SKU)
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, &req, usuarioActual(c))
	if err != nil {
		responderError(c, err)
		return
	}
	h.invalidarCache(c.Request.Context(), resp.SKU)
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	h.invalidarCache(c.Request.Context(), resp.SKU)
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) Importar(c *gin.Context) {
	contenido, ok := leerArchivo(c)
	if !ok {
		return
	}
	resp, err := h.svc.Importar(c.Request.Context(), contenido)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Exportar(c *gin.Context) {
	filtro, ok := bindFiltro(c)
	if !ok {
		return
	}
	contenido, err := h.svc.Exportar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	descargarCSV(c, "productos.csv", contenido)
}

// invalidarCache drops the public price-check cache entry after any write
// touching pricing or stock. Best effort.
func (h *ProductosHandler) invalidarCache(ctx context.Context, sku string) {
	if h.rdb != nil && sku != "" {
		_ = h.rdb.Del(ctx, consultaCacheKey(sku)).Err()
	}
}
