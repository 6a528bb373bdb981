package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type scheduleService struct {
	eventRepo      domain.EventRepository
	courseRepo     domain.CourseRepository
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService with the given repositories.
func NewScheduleService(eventRepo domain.EventRepository, courseRepo domain.CourseRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		courseRepo:     courseRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) CreateCourse(ctx context.Context, c *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	c.CreatedAt = time.Now()
	return s.courseRepo.Create(ctx, c)
}

func (s *scheduleService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	return courses, nil
}

func (s *scheduleService) CreateEvent(ctx context.Context, e *domain.Event, groupCount int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if e.MaxPlayers <= 0 {
		return fmt.Errorf("%w: max_players must be positive", domain.ErrInvalidInput)
	}
	if e.SlotsPerGroup <= 0 {
		return fmt.Errorf("%w: slots_per_group must be positive", domain.ErrInvalidInput)
	}
	if groupCount <= 0 {
		return fmt.Errorf("%w: group_count must be positive", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", e.FirstTeeTime); err != nil {
		if _, err := time.Parse("15:04:05", e.FirstTeeTime); err != nil {
			return fmt.Errorf("%w: first_tee_time must be HH:MM", domain.ErrInvalidInput)
		}
	}
	if _, err := s.courseRepo.GetByID(ctx, e.CourseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get course: %w", err)
	}

	now := time.Now()
	e.IsLocked = false
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, e, groupCount); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *scheduleService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *scheduleService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
