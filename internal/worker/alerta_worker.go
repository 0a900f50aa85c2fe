package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertas and mails the
// configured recipient so replenishment can be ordered.

import (
	"context"
	"encoding/json"
	"fmt"

	"gestionhomeclean/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaJobPayload is the job envelope sent to QueueAlertas.
type AlertaJobPayload struct {
	Tipo         string `json:"tipo"` // producto | materia_prima
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Stock        int    `json:"stock"`
	NivelReorden int    `json:"nivel_reorden"`
}

type AlertaWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

// NewAlertaWorker creates the worker. An empty destinatario disables
// delivery; jobs are then acknowledged without sending.
func NewAlertaWorker(mailer *infra.Mailer, destinatario string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, destinatario: destinatario}
}

func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("alerta_worker: invalid payload: %w", err)
	}
	if w.destinatario == "" {
		log.Debug().Str("item", payload.Nombre).Msg("alerta_worker: sin destinatario configurado")
		return nil
	}

	asunto := fmt.Sprintf("Stock bajo: %s", payload.Nombre)
	cuerpo := fmt.Sprintf(
		"El articulo %q (%s) tiene stock %d, por debajo del nivel de reorden %d.",
		payload.Nombre, payload.Tipo, payload.Stock, payload.NivelReorden,
	)
	if err := w.mailer.Enviar(w.destinatario, asunto, cuerpo); err != nil {
		return fmt.Errorf("alerta_worker: send: %w", err)
	}
	log.Info().Str("item", payload.Nombre).Int("stock", payload.Stock).
		Msg("alerta_worker: alerta enviada")
	return nil
}
