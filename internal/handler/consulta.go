package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gestionhomeclean/internal/apierror"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const consultaCacheTTL = 4 * time.Hour

func consultaCacheKey(sku string) string { return "consulta:" + sku }

// ConsultaHandler serves the public price check endpoint by SKU.
// No authentication required and no side effects.
type ConsultaHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewConsultaHandler(svc service.ProductoService, rdb *redis.Client) *ConsultaHandler {
	return &ConsultaHandler{svc: svc, rdb: rdb}
}

func (h *ConsultaHandler) GetPrecioPorSKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()
	cacheKey := consultaCacheKey(sku)

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaProductoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.Consultar(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, consultaCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
