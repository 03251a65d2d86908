package cleanup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursehub/internal/config"
	"coursehub/internal/model"
	"coursehub/internal/pgmq"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
)

// Queue is the pgmq surface the worker needs.
type Queue interface {
	ReadWithPoll(ctx context.Context, queue string, visibilityTimeoutSec, timeoutSec, maxMessages int) ([]*pgmq.Message, error)
	Send(ctx context.Context, queue string, payload []byte) (int64, error)
	Delete(ctx context.Context, queue string, msgID int64) (bool, error)
}

type Options struct {
	Queue                string
	DeadLetterQueue      string
	VisibilityTimeoutSec int
	PollTimeoutSec       int
	PollMaxMsg           int
	MaxRetries           int
	BackoffInitial       time.Duration
	BackoffMax           time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Queue:                cfg.CoverCleanupQueueName,
		DeadLetterQueue:      cfg.CoverCleanupDeadLetterQueueName,
		VisibilityTimeoutSec: cfg.CoverCleanupVisibilitySec,
		PollTimeoutSec:       cfg.CoverCleanupPollTimeoutSec,
		PollMaxMsg:           cfg.CoverCleanupPollMaxMsg,
		MaxRetries:           cfg.CoverCleanupMaxRetries,
		BackoffInitial:       time.Duration(cfg.CoverCleanupBackoffInitialSec) * time.Second,
		BackoffMax:           time.Duration(cfg.CoverCleanupBackoffMaxSec) * time.Second,
	}
}

// Worker removes course covers from object storage for every job on the
// cleanup queue.
type Worker struct {
	queue  Queue
	store  storage.ObjectStore
	opts   Options
	logger zerolog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewWorker(queue Queue, store storage.ObjectStore, opts Options, logger zerolog.Logger) *Worker {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Worker{
		queue:  queue,
		store:  store,
		opts:   opts,
		logger: logger.With().Str("orchestrator", "cover-cleanup").Logger(),
		sleep:  sleepCtx,
	}
}

// Run starts the cover cleanup orchestrator.
func Run(ctx context.Context, logger zerolog.Logger, cfg *config.Config, client *pgmq.Client, store storage.ObjectStore) error {
	opts := OptionsFromConfig(cfg)
	for _, q := range []string{opts.Queue, opts.DeadLetterQueue} {
		if err := client.CreateQueue(ctx, q); err != nil {
			return err
		}
	}
	return NewWorker(client, store, opts, logger).Run(ctx)
}

func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Str("queue", w.opts.Queue).Msg("Starting cover cleanup orchestrator")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutting down cover cleanup orchestrator")
			return nil
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading cover cleanup queue")
			_ = w.sleep(ctx, time.Second)
		}
	}
}

// ProcessBatch polls the queue once and handles every message received.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	msgs, err := w.queue.ReadWithPoll(ctx, w.opts.Queue, w.opts.VisibilityTimeoutSec, w.opts.PollTimeoutSec, w.opts.PollMaxMsg)
	if err != nil {
		return 0, err
	}
	for _, msg := range msgs {
		w.handle(ctx, msg)
	}
	return len(msgs), nil
}

func (w *Worker) handle(ctx context.Context, msg *pgmq.Message) {
	log := w.logger.With().Int64("msg_id", msg.ID).Logger()

	var job model.CoverCleanupJob
	if err := json.Unmarshal(msg.Data, &job); err != nil || job.CoverKey == "" {
		log.Error().Err(err).Msg("Invalid cover cleanup payload; deleting message")
		w.ack(ctx, log, msg.ID)
		return
	}
	log = log.With().Str("course_id", job.CourseID).Str("cover_key", job.CoverKey).Logger()

	backoff := w.opts.BackoffInitial
	var lastErr error
	for attempt := 1; attempt <= w.opts.MaxRetries; attempt++ {
		if lastErr = w.store.Delete(ctx, job.CoverKey); lastErr == nil {
			break
		}
		log.Error().Err(lastErr).Int("attempt", attempt).Msg("Cover delete failed")
		if attempt == w.opts.MaxRetries {
			break
		}
		if err := w.sleep(ctx, backoff); err != nil {
			// shutting down; the message becomes visible again after the timeout
			return
		}
		backoff *= 2
		if w.opts.BackoffMax > 0 && backoff > w.opts.BackoffMax {
			backoff = w.opts.BackoffMax
		}
	}

	if lastErr != nil {
		if _, err := w.queue.Send(ctx, w.opts.DeadLetterQueue, msg.Data); err != nil {
			log.Error().Err(err).Str("dlq", w.opts.DeadLetterQueue).Msg("Failed to send message to dead-letter queue")
			return
		}
		log.Warn().Int("attempts", w.opts.MaxRetries).Err(lastErr).Msg("Exhausted cover delete retries; moved job to DLQ")
	} else {
		log.Info().Msg("Cover removed")
	}
	w.ack(ctx, log, msg.ID)
}

func (w *Worker) ack(ctx context.Context, log zerolog.Logger, id int64) {
	if _, err := w.queue.Delete(ctx, w.opts.Queue, id); err != nil {
		log.Error().Err(err).Msg("Error deleting cover cleanup message")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
