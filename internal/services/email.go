package services

import (
	"context"
	"fmt"
	"log"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendTeeSheetPublished sends the final tee sheet using the "tee_sheet" template.
func (s *emailService) SendTeeSheetPublished(ctx context.Context, data *domain.TeeSheetEmailData) error {
	if data == nil {
		return fmt.Errorf("tee sheet email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("tee_sheet", data)
	if err != nil {
		return fmt.Errorf("failed to render tee_sheet template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send tee sheet email: %w", err)
	}
	log.Printf("[EMAIL] Tee sheet sent to %s", data.Email)
	return nil
}
