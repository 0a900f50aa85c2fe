package handler

import (
	"net/http"

	"gestionhomeclean/internal/apierror"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MateriasPrimasHandler struct{ svc service.MateriaPrimaService }

func NewMateriasPrimasHandler(svc service.MateriaPrimaService) *MateriasPrimasHandler {
	return &MateriasPrimasHandler{svc: svc}
}

func (h *MateriasPrimasHandler) Crear(c *gin.Context) {
	var req dto.CrearMateriaPrimaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), &req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MateriasPrimasHandler) Listar(c *gin.Context) {
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

func (h *MateriasPrimasHandler) ObtenerPorID(c *gin.Context) {
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

func (h *MateriasPrimasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearMateriaPrimaRequest
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

func (h *MateriasPrimasHandler) Eliminar(c *gin.Context) {
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

func (h *MateriasPrimasHandler) Importar(c *gin.Context) {
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

func (h *MateriasPrimasHandler) Exportar(c *gin.Context) {
	filtro, ok := bindFiltro(c)
	if !ok {
		return
	}
	contenido, err := h.svc.Exportar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	descargarCSV(c, "materia_prima.csv", contenido)
}
