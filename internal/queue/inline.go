package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// Inline runs each task in its own goroutine inside the API process. It is
// meant for single-process deployments where no Redis is available.
type Inline struct {
	handler domain.TaskHandler
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewInline returns a dispatcher that hands tasks to handler. Each task gets
// its own timeout, detached from the request that dispatched it.
func NewInline(handler domain.TaskHandler, timeout time.Duration, logger *slog.Logger) *Inline {
	return &Inline{handler: handler, logger: logger, timeout: timeout}
}

var _ domain.TaskDispatcher = (*Inline)(nil)

func (d *Inline) Dispatch(ctx context.Context, t domain.Task) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		if err := d.handler.Handle(ctx, t); err != nil {
			d.logger.ErrorContext(ctx, "inline task failed", "task", t.Name, "err", err)
		}
	}()
	return nil
}

// Wait blocks until every dispatched task has finished.
func (d *Inline) Wait() {
	d.wg.Wait()
}
