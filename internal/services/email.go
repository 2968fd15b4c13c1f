package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencecentral/internal/domain"
)

const conferenceCreatedTemplate = "conference_created"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendConferenceConfirmation sends the organizer's confirmation using the "conference_created" template.
func (s *emailService) SendConferenceConfirmation(ctx context.Context, data *domain.ConferenceConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("conference confirmation data is nil")
	}
	if data.Email == "" {
		return domain.Invalid("confirmation email address is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(conferenceCreatedTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", conferenceCreatedTemplate, err)
	}
	msg := domain.Email{To: data.Email, Subject: subject, HTML: htmlBody, Text: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send conference confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "conference confirmation email sent", "to", data.Email)
	return nil
}
