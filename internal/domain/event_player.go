package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event roster operations.
var (
	// ErrCapacityExceeded is returned when a status change would push the
	// playing count past the event's max_players. The caller should suggest
	// the waitlist instead.
	ErrCapacityExceeded = errors.New("max players reached")
	// ErrAlreadyAdded is returned when a player is added to an event twice.
	ErrAlreadyAdded = errors.New("player already added to event")
	// ErrConflict is returned when a conditional status update lost a race:
	// the row's status changed between read and write.
	ErrConflict = errors.New("status changed concurrently")
)

// Status is a player's sign-up state within one event.
type Status string

const (
	StatusInvited    Status = "invited"
	StatusPlaying    Status = "playing"
	StatusWaitlist   Status = "waitlist"
	StatusNotPlaying Status = "not_playing"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInvited, StatusPlaying, StatusWaitlist, StatusNotPlaying:
		return true
	}
	return false
}

// RSVPStatus is the recorded answer to an RSVP request.
type RSVPStatus string

const (
	RSVPYes RSVPStatus = "yes"
	RSVPNo  RSVPStatus = "no"
)

// EventPlayer joins a Player to an Event and carries the sign-up state.
// At most one row exists per (event, player); rows are never deleted in-flow,
// only moved between statuses. RSVPSentAt is stamped on each outbound RSVP
// dispatch and is the correlation key for inbound replies: a reply resolves
// to the row with the latest non-nil RSVPSentAt.
// swagger:model EventPlayer
type EventPlayer struct {
	ID         string      `json:"id"`
	EventID    string      `json:"event_id"`
	PlayerID   string      `json:"player_id"`
	Status     Status      `json:"status"`
	RSVPStatus *RSVPStatus `json:"rsvp_status"`
	RSVPSentAt *time.Time  `json:"rsvp_sent_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// EventPlayerDetail flattens an EventPlayer with the player columns the
// roster views need.
// swagger:model EventPlayerDetail
type EventPlayerDetail struct {
	EventPlayer
	PlayerName     string   `json:"player_name"`
	PlayerPhone    *string  `json:"player_phone"`
	PlayerHandicap *float64 `json:"player_handicap"`
}

// CanSetStatus is the capacity policy: entry into "playing" is refused once
// the playing count has reached maxPlayers; every other target status is
// always allowed. The count may be stale by commit time, so callers must
// pair this check with a conditional write.
func CanSetStatus(playingCount, maxPlayers int, target Status) error {
	if target == StatusPlaying && playingCount >= maxPlayers {
		return ErrCapacityExceeded
	}
	return nil
}

// EventPlayerRepository defines storage operations for event sign-up rows.
type EventPlayerRepository interface {
	// Create inserts the row; a duplicate (event, player) pair returns
	// ErrAlreadyAdded.
	Create(ctx context.Context, ep *EventPlayer) error
	GetByID(ctx context.Context, id string) (*EventPlayer, error)
	// ListByEventID returns the event roster joined with player columns.
	// An empty status means no filter.
	ListByEventID(ctx context.Context, eventID string, status Status) ([]*EventPlayerDetail, error)
	CountPlaying(ctx context.Context, eventID string) (int, error)
	// UpdateStatusIf sets status only when the row still holds expected.
	// Returns false (and no error) when the guard did not match.
	UpdateStatusIf(ctx context.Context, id string, expected, target Status) (bool, error)
	// StampRSVPSent records when an RSVP was dispatched for the row.
	// A re-dispatch overwrites the previous stamp.
	StampRSVPSent(ctx context.Context, id string, at time.Time) error
	// LatestRSVPSent returns the player's row with the most recent non-nil
	// rsvp_sent_at, or ErrNotFound when the player has none.
	LatestRSVPSent(ctx context.Context, playerID string) (*EventPlayer, error)
	// RecordReply sets rsvp_status and status in one write keyed by the
	// row's own id.
	RecordReply(ctx context.Context, id string, rsvp RSVPStatus, status Status) error
}
