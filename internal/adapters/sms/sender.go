// Package sms sends outbound text messages through the Twilio REST API.
// There is no dedicated client dependency; the API is one form-encoded POST
// with basic auth, which plain net/http covers.
package sms

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

const twilioBaseURL = "https://api.twilio.com"

// Config holds Twilio gateway credentials.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewSender creates an SMSSender from config. With complete credentials it
// talks to Twilio; otherwise it returns a no-op sender that reports itself
// as unconfigured, so callers can fail dispatch up front.
func NewSender(cfg Config) domain.SMSSender {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		log.Printf("[SMS] Twilio credentials not configured, using noop sender")
		return &noopSender{}
	}
	return &twilioSender{
		cfg:     cfg,
		baseURL: twilioBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type twilioSender struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

func (s *twilioSender) Configured() bool { return true }

func (s *twilioSender) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.cfg.AccountSID)
	form := url.Values{
		"To":   {to},
		"From": {s.cfg.FromNumber},
		"Body": {body},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Twilio returns a JSON error document; the first part is enough
		// to identify the rejection in per-recipient results.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio rejected message (%d): %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

type noopSender struct{}

func (n *noopSender) Configured() bool { return false }

func (n *noopSender) Send(ctx context.Context, to, body string) error {
	log.Printf("[SMS] Message would be sent (noop) to %s", to)
	return nil
}
