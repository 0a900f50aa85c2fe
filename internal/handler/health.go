package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the service can reach its two dependencies.
// Returns 503 when either is down so the orchestrator stops routing here.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		estadoDB := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "caido"
		}

		estadoRedis := "ok"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "caido"
		}

		status := http.StatusOK
		if estadoDB != "ok" || estadoRedis != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"servicio": "gestionhomeclean",
			"db":       estadoDB,
			"redis":    estadoRedis,
		})
	}
}
