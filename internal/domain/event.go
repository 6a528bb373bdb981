package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEventLocked is returned when a tee-sheet mutation targets a locked event.
var ErrEventLocked = errors.New("event is locked")

// Event is one league play date: a course, a date, the first tee time, and
// the tee-sheet shape (how many players fit, how many slots per group).
// Once IsLocked is set the tee sheet is read-only.
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Date          time.Time `json:"date"`
	FirstTeeTime  string    `json:"first_tee_time"` // "15:04" wall-clock, course local time
	MaxPlayers    int       `json:"max_players"`
	SlotsPerGroup int       `json:"slots_per_group"`
	IsLocked      bool      `json:"is_locked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ScheduleService manages the league calendar: courses and events.
type ScheduleService interface {
	CreateCourse(ctx context.Context, c *Course) error
	ListCourses(ctx context.Context) ([]*Course, error)
	// CreateEvent validates the event shape and creates it together with
	// groupCount empty tee-sheet groups.
	CreateEvent(ctx context.Context, e *Event, groupCount int) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	// Create inserts the event and its empty tee-sheet groups (numbered from 1)
	// in one transaction.
	Create(ctx context.Context, e *Event, groupCount int) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	SetLocked(ctx context.Context, id string, locked bool) error
}
