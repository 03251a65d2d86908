package service

import "context"

// JobQueue enqueues background jobs. pgmq.Client satisfies it.
type JobQueue interface {
	Send(ctx context.Context, queue string, payload []byte) (int64, error)
}
