package services

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

func requireIdentity(id *domain.Identity) error {
	if id == nil || id.UserID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

// dispatch hands t to d without failing the caller; errors are only logged.
func dispatch(ctx context.Context, d domain.TaskDispatcher, logger *slog.Logger, t domain.Task) {
	if d == nil {
		return
	}
	if err := d.Dispatch(ctx, t); err != nil {
		logger.WarnContext(ctx, "task dispatch failed", "task", t.Name, "err", err)
	}
}
