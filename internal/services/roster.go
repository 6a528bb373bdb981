package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type rosterService struct {
	playerRepo      domain.PlayerRepository
	eventRepo       domain.EventRepository
	eventPlayerRepo domain.EventPlayerRepository
	contextTimeout  time.Duration
}

// NewRosterService creates a RosterService with the given repositories.
func NewRosterService(
	playerRepo domain.PlayerRepository,
	eventRepo domain.EventRepository,
	eventPlayerRepo domain.EventPlayerRepository,
	timeout time.Duration,
) domain.RosterService {
	return &rosterService{
		playerRepo:      playerRepo,
		eventRepo:       eventRepo,
		eventPlayerRepo: eventPlayerRepo,
		contextTimeout:  timeout,
	}
}

func (s *rosterService) CreatePlayer(ctx context.Context, p *domain.Player) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.playerRepo.Create(ctx, p)
}

func (s *rosterService) UpdatePlayer(ctx context.Context, p *domain.Player) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := s.playerRepo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

// DeactivatePlayer is the only delete the roster supports: the row stays so
// past events keep resolving, the player just stops appearing as available.
func (s *rosterService) DeactivatePlayer(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.playerRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("deactivate player: %w", err)
	}
	return nil
}

func (s *rosterService) ListPlayers(ctx context.Context) ([]*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if players == nil {
		players = []*domain.Player{}
	}
	return players, nil
}

func (s *rosterService) AddPlayerToEvent(ctx context.Context, eventID, playerID string) (*domain.EventPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	if !player.IsActive {
		return nil, fmt.Errorf("%w: player is inactive", domain.ErrInvalidInput)
	}

	now := time.Now()
	ep := &domain.EventPlayer{
		EventID:   eventID,
		PlayerID:  playerID,
		Status:    domain.StatusInvited,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.eventPlayerRepo.Create(ctx, ep); err != nil {
		if errors.Is(err, domain.ErrAlreadyAdded) {
			return nil, domain.ErrAlreadyAdded
		}
		return nil, fmt.Errorf("create event player: %w", err)
	}
	return ep, nil
}

func (s *rosterService) SetPlayerStatus(ctx context.Context, eventPlayerID string, target domain.Status) (*domain.EventPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, target)
	}

	ep, err := s.eventPlayerRepo.GetByID(ctx, eventPlayerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event player: %w", err)
	}
	if ep.Status == target {
		return ep, nil
	}

	event, err := s.eventRepo.GetByID(ctx, ep.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Fresh count right before the write; the conditional update below
	// closes the remaining gap by failing if the row moved under us.
	playing, err := s.eventPlayerRepo.CountPlaying(ctx, ep.EventID)
	if err != nil {
		return nil, fmt.Errorf("count playing: %w", err)
	}
	if err := domain.CanSetStatus(playing, event.MaxPlayers, target); err != nil {
		return nil, err
	}

	updated, err := s.eventPlayerRepo.UpdateStatusIf(ctx, ep.ID, ep.Status, target)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !updated {
		return nil, domain.ErrConflict
	}

	ep.Status = target
	return ep, nil
}

func (s *rosterService) ListEventPlayers(ctx context.Context, eventID string, status domain.Status) ([]*domain.EventPlayerDetail, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	players, err := s.eventPlayerRepo.ListByEventID(ctx, eventID, status)
	if err != nil {
		return nil, 0, fmt.Errorf("list event players: %w", err)
	}
	if players == nil {
		players = []*domain.EventPlayerDetail{}
	}
	playing, err := s.eventPlayerRepo.CountPlaying(ctx, eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("count playing: %w", err)
	}
	return players, playing, nil
}
