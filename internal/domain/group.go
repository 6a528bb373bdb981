package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSlotOccupied is returned when a move targets a (group, position) slot
// already held by a different player.
var ErrSlotOccupied = errors.New("slot already occupied")

// Group is one tee-time group on an event's tee sheet. Slots are addressed
// by (group id, position) with position in [0, event.SlotsPerGroup).
// swagger:model Group
type Group struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	GroupNumber int       `json:"group_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupAssignment places a player into a specific slot. Two invariants hold
// at the storage layer: one assignment per player per event, one player per
// (group, position) slot.
// swagger:model GroupAssignment
type GroupAssignment struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	EventID   string    `json:"event_id"`
	PlayerID  string    `json:"player_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentDetail is a GroupAssignment joined with the player's name and
// handicap for tee-sheet rendering.
// swagger:model AssignmentDetail
type AssignmentDetail struct {
	GroupAssignment
	PlayerName     string   `json:"player_name"`
	PlayerHandicap *float64 `json:"player_handicap"`
}

// GroupDetail is a group with its assignments ordered by position.
// swagger:model GroupDetail
type GroupDetail struct {
	Group       *Group              `json:"group"`
	Assignments []*AssignmentDetail `json:"assignments"`
}

// TeeSheet is the full tee sheet for one event: ordered groups plus the
// derived list of playing-but-unassigned players. Unassigned is always
// recomputed, never stored.
// swagger:model TeeSheet
type TeeSheet struct {
	Event      *Event               `json:"event"`
	Groups     []*GroupDetail       `json:"groups"`
	Unassigned []*EventPlayerDetail `json:"unassigned"`
}

// GroupRepository defines storage operations for tee-sheet groups and
// assignments.
type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Group, error)
	ListAssignmentsByEventID(ctx context.Context, eventID string) ([]*AssignmentDetail, error)
	// ReplaceAssignment deletes the player's existing assignment in the event
	// (if any) and inserts the new one, in a single transaction. Inserting
	// into a slot held by a different player returns ErrSlotOccupied.
	ReplaceAssignment(ctx context.Context, eventID, playerID, groupID string, position int) error
	// DeleteAssignmentByPlayer removes the player's assignment in the event.
	// Deleting a player who has no assignment is a no-op, not an error.
	DeleteAssignmentByPlayer(ctx context.Context, eventID, playerID string) error
}

// TeeSheetService maintains the tee sheet: each player holds at most one
// slot per event, and each slot holds at most one player.
type TeeSheetService interface {
	GetTeeSheet(ctx context.Context, eventID string) (*TeeSheet, error)
	// MovePlayer places the player into (groupID, position), displacing the
	// player's own prior assignment and nobody else's.
	MovePlayer(ctx context.Context, eventID, playerID, groupID string, position int) error
	// RemovePlayer clears the player's assignment. Removing an unassigned
	// player succeeds silently.
	RemovePlayer(ctx context.Context, eventID, playerID string) error
	// UnassignedPlayers derives the set of playing players with no slot.
	UnassignedPlayers(ctx context.Context, eventID string) ([]*EventPlayerDetail, error)
	// LockEvent freezes the tee sheet and notifies players by email.
	LockEvent(ctx context.Context, eventID string) error
	UnlockEvent(ctx context.Context, eventID string) error
}
