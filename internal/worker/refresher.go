package worker

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

// AnnouncementRefresher recomputes the nearly-sold-out announcement on a fixed interval.
type AnnouncementRefresher struct {
	announcements domain.AnnouncementService
	interval      time.Duration
	logger        *slog.Logger
}

func NewAnnouncementRefresher(announcements domain.AnnouncementService, interval time.Duration, logger *slog.Logger) *AnnouncementRefresher {
	return &AnnouncementRefresher{announcements: announcements, interval: interval, logger: logger}
}

// Run refreshes once immediately and then every interval until ctx is done.
func (r *AnnouncementRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		r.refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *AnnouncementRefresher) refresh(ctx context.Context) {
	msg, err := r.announcements.RefreshNearlySoldOut(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "announcement refresh failed", "err", err)
		return
	}
	r.logger.DebugContext(ctx, "announcement refreshed", "empty", msg == "")
}
