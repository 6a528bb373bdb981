package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type mockRSVPService struct {
	summary     *domain.RSVPSendSummary
	reply       string
	err         error
	gotFrom     string
	gotBody     string
	handleCalls int
}

func (m *mockRSVPService) SendEventRSVPs(ctx context.Context, eventID string) (*domain.RSVPSendSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockRSVPService) HandleReply(ctx context.Context, fromPhone, body string) (string, error) {
	m.handleCalls++
	m.gotFrom = fromPhone
	m.gotBody = body
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func postWebhook(ctrl *RSVPController, from, body string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", body)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ctrl.IncomingSMS(w, req)
	return w
}

func TestRSVPController_IncomingSMS(t *testing.T) {
	svc := &mockRSVPService{reply: "Thanks Alice! You're confirmed for the game."}
	ctrl := NewRSVPController(testLogger(), svc)

	w := postWebhook(ctrl, "+15550001", "Y")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/xml" {
		t.Errorf("Content-Type = %q, want text/xml", ct)
	}
	got := w.Body.String()
	if !strings.HasPrefix(got, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>`) {
		t.Errorf("unexpected TwiML prefix: %q", got)
	}
	if !strings.Contains(got, "confirmed for the game") {
		t.Errorf("reply text missing from TwiML: %q", got)
	}
	if svc.gotFrom != "+15550001" || svc.gotBody != "Y" {
		t.Errorf("service got (%q, %q)", svc.gotFrom, svc.gotBody)
	}
}

func TestRSVPController_IncomingSMS_ServiceErrorStays200(t *testing.T) {
	svc := &mockRSVPService{err: errors.New("db down")}
	ctrl := NewRSVPController(testLogger(), svc)

	w := postWebhook(ctrl, "+15550001", "Y")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 even on error, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), domain.MsgProcessingError) {
		t.Errorf("body = %q, want processing error message", w.Body.String())
	}
}

type panickingRSVPService struct{}

func (panickingRSVPService) SendEventRSVPs(ctx context.Context, eventID string) (*domain.RSVPSendSummary, error) {
	panic("unexpected failure")
}

func (panickingRSVPService) HandleReply(ctx context.Context, fromPhone, body string) (string, error) {
	panic("unexpected failure")
}

func TestRSVPController_IncomingSMS_PanicStays200(t *testing.T) {
	ctrl := NewRSVPController(testLogger(), panickingRSVPService{})

	w := postWebhook(ctrl, "+15550001", "Y")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 after panic, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/xml" {
		t.Errorf("Content-Type = %q, want text/xml", ct)
	}
	if !strings.Contains(w.Body.String(), domain.MsgProcessingError) {
		t.Errorf("body = %q, want processing error message", w.Body.String())
	}
}

func TestRSVPController_IncomingSMS_EscapesReply(t *testing.T) {
	svc := &mockRSVPService{reply: `Thanks O'Brien <& co>!`}
	ctrl := NewRSVPController(testLogger(), svc)

	w := postWebhook(ctrl, "+15550001", "Y")

	got := w.Body.String()
	if strings.Contains(got, "<& co>") {
		t.Errorf("reply not XML-escaped: %q", got)
	}
	if !strings.Contains(got, "&amp; co&gt;") {
		t.Errorf("expected escaped entities in %q", got)
	}
}

func TestRSVPController_SendRSVPs(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		svc := &mockRSVPService{summary: &domain.RSVPSendSummary{
			Success: true,
			Message: "Sent 2 of 3 RSVPs",
			Results: []*domain.RSVPSendResult{},
		}}
		ctrl := NewRSVPController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/events/x/rsvp", nil)
		req.SetPathValue("eventID", "6f1e1f0a-8f4e-4b9e-b0d6-0a6a3a3b1c2d")
		w := httptest.NewRecorder()
		ctrl.SendRSVPs(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Sent 2 of 3 RSVPs") {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("unconfigured gateway is 503", func(t *testing.T) {
		svc := &mockRSVPService{err: domain.ErrSMSNotConfigured}
		ctrl := NewRSVPController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/events/x/rsvp", nil)
		req.SetPathValue("eventID", "6f1e1f0a-8f4e-4b9e-b0d6-0a6a3a3b1c2d")
		w := httptest.NewRecorder()
		ctrl.SendRSVPs(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("bad event id", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger(), &mockRSVPService{})

		req := httptest.NewRequest(http.MethodPost, "/events/x/rsvp", nil)
		req.SetPathValue("eventID", "not-a-uuid")
		w := httptest.NewRecorder()
		ctrl.SendRSVPs(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
