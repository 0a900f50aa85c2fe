package worker

import (
	"context"

	"gestionhomeclean/internal/service"

	"github.com/rs/zerolog/log"
)

// Notificador bridges services to the job queue: low-stock alerts raised
// during request handling become async jobs instead of inline SMTP calls.
type Notificador struct{ d *Dispatcher }

func NewNotificador(d *Dispatcher) *Notificador { return &Notificador{d: d} }

func (n *Notificador) Notificar(ctx context.Context, alerta service.AlertaStock) {
	payload := AlertaJobPayload{
		Tipo:         alerta.Tipo,
		ID:           alerta.ID,
		Nombre:       alerta.Nombre,
		Stock:        alerta.Stock,
		NivelReorden: alerta.NivelReorden,
	}
	if err := n.d.EnqueueAlerta(ctx, payload); err != nil {
		// Alert delivery is best effort; the stock write already succeeded.
		log.Error().Err(err).Str("item", alerta.Nombre).Msg("no se pudo encolar la alerta")
	}
}
