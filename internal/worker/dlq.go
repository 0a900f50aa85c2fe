package worker

// Failed jobs land in a Redis list per source queue (dlq:{queue}) so an
// operator can inspect and replay them.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry preserves the failed job alongside the failure reason.
type DLQEntry struct {
	Queue     string          `json:"queue"`
	JobType   string          `json:"job_type"`
	Payload   json.RawMessage `json:"payload"`
	Motivo    string          `json:"motivo"`
	FallidoEn string          `json:"fallido_en"` // RFC 3339
}

// SendToDLQ parks a job that could not be processed. Best effort: a DLQ
// write failure is logged, never propagated.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, motivo string) {
	entry := DLQEntry{
		Queue:     queue,
		JobType:   jobType,
		Payload:   payload,
		Motivo:    motivo,
		FallidoEn: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push")
		return
	}

	log.Warn().Str("queue", queue).Str("job_type", jobType).
		Str("motivo", motivo).Msg("job movido a la dead letter queue")
}

// DLQLength reports how many jobs are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
