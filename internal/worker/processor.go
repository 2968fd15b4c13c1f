// Package worker runs background tasks dispatched by the API.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"conferencecentral/internal/domain"
)

// Processor maps task names to the services that carry them out.
type Processor struct {
	email         domain.EmailService
	announcements domain.AnnouncementService
	logger        *slog.Logger
}

// NewProcessor creates a task processor.
func NewProcessor(email domain.EmailService, announcements domain.AnnouncementService, logger *slog.Logger) *Processor {
	return &Processor{email: email, announcements: announcements, logger: logger}
}

var _ domain.TaskHandler = (*Processor)(nil)

// Handle executes one task.
func (p *Processor) Handle(ctx context.Context, t domain.Task) error {
	switch t.Name {
	case domain.TaskSendConfirmationEmail:
		return p.email.SendConferenceConfirmation(ctx, &domain.ConferenceConfirmationEmailData{
			Email:          t.Params[domain.ParamEmail],
			ConferenceInfo: t.Params[domain.ParamConferenceInfo],
		})
	case domain.TaskSetFeaturedSpeaker:
		conferenceID, speaker := t.Params[domain.ParamConferenceID], t.Params[domain.ParamSpeaker]
		if conferenceID == "" || speaker == "" {
			return fmt.Errorf("%s: conference_id and speaker are required", t.Name)
		}
		msg, err := p.announcements.RefreshFeaturedSpeaker(ctx, conferenceID, speaker)
		if err != nil {
			return err
		}
		p.logger.DebugContext(ctx, "featured speaker refreshed", "conference_id", conferenceID, "empty", msg == "")
		return nil
	}
	return fmt.Errorf("unknown task: %s", t.Name)
}
