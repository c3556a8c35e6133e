package services

import (
	"context"
	"fmt"
	"log/slog"

	"invitationgallery/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendAdminRegistered sends the "admin_registered" notice to data.To.
func (s *emailService) SendAdminRegistered(ctx context.Context, data *domain.AdminRegisteredEmailData) error {
	if data == nil {
		return fmt.Errorf("admin registered data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("admin_registered", data)
	if err != nil {
		return fmt.Errorf("failed to render admin_registered template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send admin registered email: %w", err)
	}
	s.logger.InfoContext(ctx, "admin registration notice sent", "to", data.To, "admin_id", data.AdminID)
	return nil
}
