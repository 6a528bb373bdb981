package domain

import (
	"context"
	"time"
)

// Course is a golf course events are played at.
// swagger:model Course
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// CourseRepository defines storage operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context) ([]*Course, error)
}
