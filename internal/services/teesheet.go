package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type teeSheetService struct {
	eventRepo       domain.EventRepository
	courseRepo      domain.CourseRepository
	playerRepo      domain.PlayerRepository
	eventPlayerRepo domain.EventPlayerRepository
	groupRepo       domain.GroupRepository
	emailService    domain.EmailService
	contextTimeout  time.Duration
}

// NewTeeSheetService creates a TeeSheetService with the given repositories.
// emailService may be a noop-backed implementation; lock notifications are
// best-effort either way.
func NewTeeSheetService(
	eventRepo domain.EventRepository,
	courseRepo domain.CourseRepository,
	playerRepo domain.PlayerRepository,
	eventPlayerRepo domain.EventPlayerRepository,
	groupRepo domain.GroupRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.TeeSheetService {
	return &teeSheetService{
		eventRepo:       eventRepo,
		courseRepo:      courseRepo,
		playerRepo:      playerRepo,
		eventPlayerRepo: eventPlayerRepo,
		groupRepo:       groupRepo,
		emailService:    emailService,
		contextTimeout:  timeout,
	}
}

func (s *teeSheetService) GetTeeSheet(ctx context.Context, eventID string) (*domain.TeeSheet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	groups, err := s.groupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	assignments, err := s.groupRepo.ListAssignmentsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	byGroup := make(map[string][]*domain.AssignmentDetail)
	for _, a := range assignments {
		byGroup[a.GroupID] = append(byGroup[a.GroupID], a)
	}

	details := make([]*domain.GroupDetail, 0, len(groups))
	for _, g := range groups {
		list := byGroup[g.ID]
		if list == nil {
			list = []*domain.AssignmentDetail{}
		}
		details = append(details, &domain.GroupDetail{
			Group:       g,
			Assignments: list,
		})
	}

	unassigned, err := s.unassigned(ctx, eventID, assignments)
	if err != nil {
		return nil, err
	}

	return &domain.TeeSheet{
		Event:      event,
		Groups:     details,
		Unassigned: unassigned,
	}, nil
}

func (s *teeSheetService) MovePlayer(ctx context.Context, eventID, playerID, groupID string, position int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.IsLocked {
		return domain.ErrEventLocked
	}
	if position < 0 || position >= event.SlotsPerGroup {
		return fmt.Errorf("%w: position %d out of range [0, %d)", domain.ErrInvalidInput, position, event.SlotsPerGroup)
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get group: %w", err)
	}
	if group.EventID != eventID {
		return fmt.Errorf("%w: group belongs to a different event", domain.ErrInvalidInput)
	}

	if err := s.groupRepo.ReplaceAssignment(ctx, eventID, playerID, groupID, position); err != nil {
		if errors.Is(err, domain.ErrSlotOccupied) {
			return domain.ErrSlotOccupied
		}
		return fmt.Errorf("replace assignment: %w", err)
	}
	return nil
}

func (s *teeSheetService) RemovePlayer(ctx context.Context, eventID, playerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.IsLocked {
		return domain.ErrEventLocked
	}

	if err := s.groupRepo.DeleteAssignmentByPlayer(ctx, eventID, playerID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (s *teeSheetService) UnassignedPlayers(ctx context.Context, eventID string) ([]*domain.EventPlayerDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	assignments, err := s.groupRepo.ListAssignmentsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return s.unassigned(ctx, eventID, assignments)
}

// unassigned derives the playing-but-unassigned set: event players with
// status playing whose player id holds no assignment. Recomputed on every
// call so there is no second copy of the invariant to keep consistent.
func (s *teeSheetService) unassigned(ctx context.Context, eventID string, assignments []*domain.AssignmentDetail) ([]*domain.EventPlayerDetail, error) {
	playing, err := s.eventPlayerRepo.ListByEventID(ctx, eventID, domain.StatusPlaying)
	if err != nil {
		return nil, fmt.Errorf("list playing players: %w", err)
	}

	assigned := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.PlayerID] = struct{}{}
	}

	unassigned := make([]*domain.EventPlayerDetail, 0)
	for _, ep := range playing {
		if _, ok := assigned[ep.PlayerID]; !ok {
			unassigned = append(unassigned, ep)
		}
	}
	return unassigned, nil
}

func (s *teeSheetService) LockEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sheet, err := s.GetTeeSheet(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.SetLocked(ctx, eventID, true); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}

	s.notifyTeeSheetPublished(ctx, sheet)
	return nil
}

func (s *teeSheetService) UnlockEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.SetLocked(ctx, eventID, false); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("unlock event: %w", err)
	}
	return nil
}

// notifyTeeSheetPublished emails the final tee sheet to the event's active
// players that have an email address. Failures are logged and swallowed:
// the lock has already happened and must not be undone by a mail problem.
func (s *teeSheetService) notifyTeeSheetPublished(ctx context.Context, sheet *domain.TeeSheet) {
	course, err := s.courseRepo.GetByID(ctx, sheet.Event.CourseID)
	if err != nil {
		log.Printf("[TEESHEET] Skipping publish emails, course lookup failed: %v", err)
		return
	}

	groups := make([]domain.TeeSheetGroupEmailData, 0, len(sheet.Groups))
	for _, g := range sheet.Groups {
		names := make([]string, 0, len(g.Assignments))
		for _, a := range g.Assignments {
			names = append(names, a.PlayerName)
		}
		if len(names) == 0 {
			continue
		}
		groups = append(groups, domain.TeeSheetGroupEmailData{
			GroupNumber: g.Group.GroupNumber,
			Players:     names,
		})
	}

	roster, err := s.eventPlayerRepo.ListByEventID(ctx, sheet.Event.ID, domain.StatusPlaying)
	if err != nil {
		log.Printf("[TEESHEET] Skipping publish emails, roster lookup failed: %v", err)
		return
	}
	for _, ep := range roster {
		player, err := s.playerRepo.GetByID(ctx, ep.PlayerID)
		if err != nil || player.Email == nil || *player.Email == "" {
			continue
		}
		data := &domain.TeeSheetEmailData{
			Email:        *player.Email,
			PlayerName:   player.Name,
			CourseName:   course.Name,
			EventDate:    sheet.Event.Date.Format("Monday, January 2, 2006"),
			FirstTeeTime: sheet.Event.FirstTeeTime,
			Groups:       groups,
		}
		if err := s.emailService.SendTeeSheetPublished(ctx, data); err != nil {
			log.Printf("[TEESHEET] Failed to email tee sheet to %s: %v", player.Name, err)
		}
	}
}
