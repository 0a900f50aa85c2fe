package middleware

import (
	"net/http"
	"sync"
	"time"

	"gestionhomeclean/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is the per-IP counter of a sliding window.
type ventana struct {
	conteo int
	expira time.Time
}

// limitador is a sliding-window rate limiter keyed by client IP. The
// login and general API limiters share this implementation and differ
// only in limit, window and rejection message.
type limitador struct {
	mu       sync.Mutex
	entradas map[string]*ventana
	limite   int
	duracion time.Duration
	mensaje  string
}

var (
	registroMu  sync.Mutex
	limitadores []*limitador
)

func nuevoLimitador(limite int, duracion time.Duration, mensaje string) *limitador {
	l := &limitador{
		entradas: make(map[string]*ventana),
		limite:   limite,
		duracion: duracion,
		mensaje:  mensaje,
	}
	registroMu.Lock()
	limitadores = append(limitadores, l)
	registroMu.Unlock()
	return l
}

func (l *limitador) permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ahora := time.Now()
	v, ok := l.entradas[ip]
	if !ok || ahora.After(v.expira) {
		v = &ventana{expira: ahora.Add(l.duracion)}
		l.entradas[ip] = v
	}
	v.conteo++
	return v.conteo <= l.limite
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.permitir(c.ClientIP()) {
			c.Header("Retry-After", l.duracion.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter slows credential guessing: 20 attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return nuevoLimitador(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter is the general API limiter in front of every route.
func RateLimiter(limite int, duracion time.Duration) gin.HandlerFunc {
	return nuevoLimitador(limite, duracion,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// Expired windows are purged periodically so IPs that never return do not
// accumulate forever.

const intervaloPurga = 5 * time.Minute

func init() {
	go purgarVentanas()
}

func purgarVentanas() {
	ticker := time.NewTicker(intervaloPurga)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()
		purgadas := 0

		registroMu.Lock()
		activos := make([]*limitador, len(limitadores))
		copy(activos, limitadores)
		registroMu.Unlock()

		for _, l := range activos {
			l.mu.Lock()
			for ip, v := range l.entradas {
				if ahora.After(v.expira) {
					delete(l.entradas, ip)
					purgadas++
				}
			}
			l.mu.Unlock()
		}

		if purgadas > 0 {
			log.Debug().Int("ventanas_purgadas", purgadas).Msg("limitadores depurados")
		}
	}
}
