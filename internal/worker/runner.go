package worker

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/queue"
)

// JobQueue is the part of queue.Queue the runner needs.
type JobQueue interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// Runner pulls jobs off the queue and hands them to a TaskHandler.
type Runner struct {
	queue       JobQueue
	handler     domain.TaskHandler
	logger      *slog.Logger
	pollTimeout time.Duration
	backoff     time.Duration
}

// NewRunner creates a worker loop over q.
func NewRunner(q JobQueue, handler domain.TaskHandler, logger *slog.Logger) *Runner {
	return &Runner{
		queue:       q,
		handler:     handler,
		logger:      logger,
		pollTimeout: 5 * time.Second,
		backoff:     queue.RetryBackoff,
	}
}

// Run starts the worker loop: dequeue, process, retry on error. It returns when ctx is done.
func (r *Runner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("task worker stopping")
			return
		default:
		}

		job, err := r.queue.Dequeue(ctx, r.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.Warn("dequeue error", "err", err)
			r.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		r.logger.Debug("processing job", "job_id", job.ID, "task", job.Task.Name, "attempt", job.Attempt)
		if err := r.handler.Handle(ctx, job.Task); err != nil {
			r.logger.Error("job failed", "job_id", job.ID, "task", job.Task.Name, "err", err)
			if reErr := r.queue.Retry(ctx, job); reErr != nil {
				r.logger.Error("retry enqueue failed", "job_id", job.ID, "err", reErr)
			}
			r.sleep(ctx)
		}
	}
}

func (r *Runner) sleep(ctx context.Context) {
	t := time.NewTimer(r.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
