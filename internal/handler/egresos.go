package handler

import (
	"net/http"

	"gestionhomeclean/internal/apierror"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EgresosHandler struct{ svc service.EgresoService }

func NewEgresosHandler(svc service.EgresoService) *EgresosHandler {
	return &EgresosHandler{svc: svc}
}

func (h *EgresosHandler) Crear(c *gin.Context) {
	var req dto.CrearRegistroFinancieroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), &req, usuarioActual(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EgresosHandler) Listar(c *gin.Context) {
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

func (h *EgresosHandler) Pendientes(c *gin.Context) {
	filtro, ok := bindFiltro(c)
	if !ok {
		return
	}
	resp, err := h.svc.Pendientes(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *EgresosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearRegistroFinancieroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, &req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EgresosHandler) AgregarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPago(c.Request.Context(), id, &req, usuarioActual(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EgresosHandler) EliminarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	pagoID, err := uuid.Parse(c.Param("pago_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.EliminarPago(c.Request.Context(), id, pagoID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) Importar(c *gin.Context) {
	contenido, ok := leerArchivo(c)
	if !ok {
		return
	}
	resp, err := h.svc.Importar(c.Request.Context(), contenido, usuarioActual(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) Exportar(c *gin.Context) {
	filtro, ok := bindFiltro(c)
	if !ok {
		return
	}
	contenido, err := h.svc.Exportar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	descargarCSV(c, "egresos.csv", contenido)
}
