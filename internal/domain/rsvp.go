package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrSMSNotConfigured is returned when outbound RSVP dispatch is requested
// but the SMS gateway credentials are missing. This fails the whole call;
// it is not a per-recipient condition.
var ErrSMSNotConfigured = errors.New("sms gateway not configured")

// SMSSender is the outbound SMS gateway port. The sending number is part of
// the adapter's configuration.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
	// Configured reports whether the gateway has usable credentials.
	Configured() bool
}

// RSVPSendResult is the per-recipient outcome of one RSVP dispatch.
// swagger:model RSVPSendResult
type RSVPSendResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// RSVPSendSummary aggregates a dispatch batch. Partial success is expected
// and reported, never rolled back.
// swagger:model RSVPSendSummary
type RSVPSendSummary struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Results []*RSVPSendResult `json:"results"`
}

// Fixed reply texts for the inbound webhook. The gateway relays these back
// to the sender verbatim, so they are part of the protocol surface.
const (
	MsgReplyHelp          = "Please reply Y for Yes or N for No"
	MsgPhoneNotRecognized = "Phone number not recognized"
	MsgNoRecentRSVP       = "No recent RSVP request found"
	MsgProcessingError    = "Error processing your response"
	MsgConfirmYesFmt      = "Thanks %s! You're confirmed for the game."
	MsgConfirmNoFmt       = "Thanks %s. Sorry you can't make it this time."
)

// NormalizeReply maps free-text SMS reply bodies onto an RSVP answer.
// Matching is case-insensitive on the trimmed body: Y/YES and N/NO.
// ok is false for anything else.
func NormalizeReply(body string) (status RSVPStatus, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(body)) {
	case "Y", "YES":
		return RSVPYes, true
	case "N", "NO":
		return RSVPNo, true
	}
	return "", false
}

// RSVPService implements the two halves of the SMS RSVP protocol.
type RSVPService interface {
	// SendEventRSVPs messages every playing player on the event and stamps
	// rsvp_sent_at per successful send. Recipient failures are collected,
	// not propagated.
	SendEventRSVPs(ctx context.Context, eventID string) (*RSVPSendSummary, error)
	// HandleReply resolves an inbound SMS to the right outstanding RSVP
	// request and records the answer. The returned message is always sent
	// back to the SMS gateway, whatever the logical outcome.
	HandleReply(ctx context.Context, fromPhone, body string) (string, error)
}
