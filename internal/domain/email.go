package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AdminRegisteredEmailData holds data for the operator notice sent when an admin registers.
type AdminRegisteredEmailData struct {
	To       string
	Username string
	AdminID  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAdminRegistered(ctx context.Context, data *AdminRegisteredEmailData) error
}
