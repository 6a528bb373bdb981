package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Player represents a league member on the roster.
// Phone is optional; when present it doubles as the RSVP correlation key,
// so inbound SMS replies can be resolved back to the player.
// swagger:model Player
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Handicap  *float64  `json:"handicap"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerRepository defines the interface for player storage.
// Players are never hard-deleted: Deactivate flips is_active to false and the
// row stays so historical event participation keeps resolving.
type PlayerRepository interface {
	Create(ctx context.Context, p *Player) error
	GetByID(ctx context.Context, id string) (*Player, error)
	Update(ctx context.Context, p *Player) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Player, error)
	// FindActiveByPhone returns every active player whose phone equals the
	// given number. Callers decide how to treat multiple matches.
	FindActiveByPhone(ctx context.Context, phone string) ([]*Player, error)
}

// RosterService defines roster management: player CRUD plus per-event
// sign-up state.
type RosterService interface {
	CreatePlayer(ctx context.Context, p *Player) error
	UpdatePlayer(ctx context.Context, p *Player) error
	DeactivatePlayer(ctx context.Context, id string) error
	ListPlayers(ctx context.Context) ([]*Player, error)
	// AddPlayerToEvent creates the EventPlayer row with status "invited".
	AddPlayerToEvent(ctx context.Context, eventID, playerID string) (*EventPlayer, error)
	// SetPlayerStatus applies the capacity policy and then updates the row
	// with a conditional write on the previously observed status.
	SetPlayerStatus(ctx context.Context, eventPlayerID string, target Status) (*EventPlayer, error)
	// ListEventPlayers returns the event roster, optionally filtered by
	// status, together with the current playing count.
	ListEventPlayers(ctx context.Context, eventID string, status Status) ([]*EventPlayerDetail, int, error)
}
