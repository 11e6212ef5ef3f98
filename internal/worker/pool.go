package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotifications = "jobs:notifications"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
	// reviewEmail is the shared reviewer inbox; empty disables notifications.
	reviewEmail string
}

func NewDispatcher(rdb *redis.Client, reviewEmail string) *Dispatcher {
	return &Dispatcher{rdb: rdb, reviewEmail: reviewEmail}
}

// NotifyVendorSubmitted enqueues a reviewer notification. Best-effort: queue
// failures are logged and never fail the submission that triggered them.
func (d *Dispatcher) NotifyVendorSubmitted(ctx context.Context, vendorID uuid.UUID, companyName string) {
	if d == nil || d.reviewEmail == "" {
		return
	}
	payload := NotificationPayload{
		ToEmail: d.reviewEmail,
		Subject: fmt.Sprintf("Vendor submitted for review: %s", companyName),
		Body: fmt.Sprintf("Vendor %q (%s) has been submitted and is awaiting approval.",
			companyName, vendorID),
	}
	if err := d.enqueue(ctx, QueueNotifications, "notification", payload); err != nil {
		log.Error().Err(err).
			Str("vendor_id", vendorID.String()).
			Msg("failed to enqueue reviewer notification")
	}
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

// WorkerHandlers groups the per-type job processors wired at the
// composition root.
type WorkerHandlers struct {
	Notification *NotificationWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotifications).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "notification":
		handlers.Notification.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type — dropping")
	}
}
