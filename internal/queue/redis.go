// Package queue delivers background tasks from the API to the worker.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// TasksKey is the Redis list holding pending tasks.
	TasksKey = "worker:tasks"
	// DLQKey is the dead-letter list for tasks that kept failing.
	DLQKey = "worker:dlq"
	// MaxRetries is the number of attempts before a task is moved to the DLQ.
	MaxRetries = 3
	// RetryBackoff is the delay the worker waits after a failed task.
	RetryBackoff = 10 * time.Second
)

// Job is the envelope stored in Redis.
type Job struct {
	ID        string      `json:"id"`
	Task      domain.Task `json:"task"`
	Attempt   int         `json:"attempt"`
	CreatedAt time.Time   `json:"created_at"`
}

// Queue enqueues and dequeues tasks via a Redis list.
type Queue struct {
	client *redis.Client
	logger *slog.Logger
}

// NewQueue creates a new Redis-backed task queue.
func NewQueue(client *redis.Client, logger *slog.Logger) *Queue {
	return &Queue{client: client, logger: logger}
}

var _ domain.TaskDispatcher = (*Queue)(nil)

// Dispatch enqueues t for the worker.
func (q *Queue) Dispatch(ctx context.Context, t domain.Task) error {
	job := Job{
		ID:        uuid.NewString(),
		Task:      t,
		CreatedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, TasksKey, raw).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	q.logger.DebugContext(ctx, "enqueued task", "job_id", job.ID, "task", t.Name)
	return nil
}

// Dequeue waits up to timeout for a job. It returns nil, nil when the wait
// times out or the list held an unreadable entry.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BLPop(ctx, timeout, TasksKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.WarnContext(ctx, "invalid job payload", "raw", result[1], "err", err)
		return nil, nil
	}
	return &job, nil
}

// Retry re-enqueues a job with incremented attempt. If attempt >= MaxRetries, pushes to DLQ instead.
func (q *Queue) Retry(ctx context.Context, job *Job) error {
	job.Attempt++
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if job.Attempt >= MaxRetries {
		if err := q.client.RPush(ctx, DLQKey, raw).Err(); err != nil {
			q.logger.ErrorContext(ctx, "dlq push failed", "job_id", job.ID, "err", err)
			return err
		}
		q.logger.WarnContext(ctx, "job moved to DLQ", "job_id", job.ID, "attempt", job.Attempt)
		return nil
	}
	if err := q.client.RPush(ctx, TasksKey, raw).Err(); err != nil {
		return err
	}
	q.logger.InfoContext(ctx, "job retried", "job_id", job.ID, "attempt", job.Attempt)
	return nil
}
