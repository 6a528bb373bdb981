package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TeeSheetGroupEmailData is one tee-sheet group in the published email.
type TeeSheetGroupEmailData struct {
	GroupNumber int
	Players     []string
}

// TeeSheetEmailData holds data for the tee-sheet-published email.
type TeeSheetEmailData struct {
	Email        string
	PlayerName   string
	CourseName   string
	EventDate    string
	FirstTeeTime string
	Groups       []TeeSheetGroupEmailData
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTeeSheetPublished(ctx context.Context, data *TeeSheetEmailData) error
}
