package domain

import "context"

// Email is one outgoing message. Either body may be empty.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers emails.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConferenceConfirmationEmailData holds data for the email sent to an organizer
// after a conference is created.
type ConferenceConfirmationEmailData struct {
	Email          string
	ConferenceInfo string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConferenceConfirmation(ctx context.Context, data *ConferenceConfirmationEmailData) error
}
