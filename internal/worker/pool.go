package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail    = "jobs:email"
	QueueCatalogo = "jobs:catalogo"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb         *redis.Client
	notifyEmail string
}

func NewDispatcher(rdb *redis.Client, notifyEmail string) *Dispatcher {
	return &Dispatcher{rdb: rdb, notifyEmail: notifyEmail}
}

// NotificarOrdemFechada despacha o email de encerramento de ordem. Erros são
// apenas logados: a notificação nunca derruba a transição de estado que a
// originou.
func (d *Dispatcher) NotificarOrdemFechada(ctx context.Context, ordem *model.Ordem) {
	if d.notifyEmail == "" {
		return
	}
	payload := EmailJobPayload{
		ToEmail: d.notifyEmail,
		Subject: fmt.Sprintf("Ordem %s encerrada", ordem.Codigo),
		Body: fmt.Sprintf(
			"A ordem de produção %s foi encerrada.\n\nItem de entrada: %s\nItem de saída: %s\n",
			ordem.Codigo, ordem.ItemEntrada, ordem.ItemSaida),
	}
	if err := d.enqueue(ctx, QueueEmail, "email", payload); err != nil {
		log.Error().Err(err).Str("codigo", ordem.Codigo).Msg("falha ao enfileirar notificação de ordem fechada")
	}
}

// EnqueueCatalogoSync pushes a catalog refresh job to Redis.
func (d *Dispatcher) EnqueueCatalogoSync(ctx context.Context) error {
	return d.enqueue(ctx, QueueCatalogo, "catalogo_sync", struct{}{})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers agrupa os processadores de job, um por fila.
type Handlers struct {
	Email    *EmailWorker
	Catalogo *CatalogoWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueEmail, QueueCatalogo}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch queue {
	case QueueEmail:
		err = handlers.Email.Process(ctx, job.Payload)
	case QueueCatalogo:
		err = handlers.Catalogo.Process(ctx, job.Payload)
	default:
		log.Error().Str("queue", queue).Msg("unknown queue")
		return
	}

	if err != nil {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), 1)
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
