package controllers

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	h "github.com/claussm/barefoot-tees/internal/delivery/http/helpers"
	"github.com/claussm/barefoot-tees/internal/domain"
)

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// SendRSVPs godoc
// @Summary Send RSVP texts for an event
// @Description Messages every "playing" player with a phone number and stamps the send time per recipient. Per-recipient failures are reported in the result list, not as an HTTP error.
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the send summary"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable (SMS gateway not configured)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [post]
func (c *RSVPController) SendRSVPs(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	summary, err := c.Service.SendEventRSVPs(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSMSNotConfigured):
			h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "SMS gateway is not configured")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, summary)
}

// IncomingSMS is the Twilio webhook for inbound replies. It always answers
// 200 with a TwiML <Response> so the gateway relays our message back to the
// sender; error conditions become reply texts, never HTTP errors.
//
// IncomingSMS godoc
// @Summary Twilio inbound SMS webhook
// @Description Receives form-encoded From and Body, records the RSVP answer, and responds with TwiML. Always 200.
// @Tags rsvp
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Sender phone number"
// @Param Body formData string true "Message body"
// @Success 200 {string} string "TwiML response"
// @Router /webhooks/sms [post]
func (c *RSVPController) IncomingSMS(w http.ResponseWriter, r *http.Request) {
	// The gateway must get a TwiML 200 no matter what breaks below.
	defer func() {
		if rec := recover(); rec != nil {
			c.Logger.ErrorContext(r.Context(), "sms webhook: panic", "panic", rec)
			writeTwiML(w, domain.MsgProcessingError)
		}
	}()

	if err := r.ParseForm(); err != nil {
		c.Logger.ErrorContext(r.Context(), "sms webhook: bad form", "err", err)
		writeTwiML(w, domain.MsgProcessingError)
		return
	}
	from := strings.TrimSpace(r.PostFormValue("From"))
	body := r.PostFormValue("Body")

	reply, err := c.Service.HandleReply(r.Context(), from, body)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "sms webhook: handle reply", "from", from, "err", err)
		writeTwiML(w, domain.MsgProcessingError)
		return
	}
	writeTwiML(w, reply)
}

// writeTwiML answers the gateway with a single-message TwiML document.
func writeTwiML(w http.ResponseWriter, message string) {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(message))
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>%s</Message></Response>`, escaped.String())
}
