package middleware

import (
	"net/http"
	"time"

	"gestionhomeclean/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler turns errors that handlers attached with c.Error into a
// generic 500. The real cause goes to the log with its request id; the
// client never sees internals.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("metodo", c.Request.Method).
			Str("ruta", c.FullPath()).
			Int("errores", len(c.Errors)).
			Err(c.Errors.Last().Err).
			Msg("error no manejado")

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			apierror.New("Error interno del servidor"))
	}
}

// Recovery converts panics into 500 responses instead of dropping the
// connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("ruta", c.FullPath()).
					Interface("panico", r).
					Msg("panico recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierror.New("Error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// Logger writes one structured line per request. Health probes are
// skipped so the poller does not drown the log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		if c.Request.URL.Path == "/health" {
			return
		}
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("metodo", c.Request.Method).
			Str("ruta", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("duracion", time.Since(inicio)).
			Msg("solicitud")
	}
}
