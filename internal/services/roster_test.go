package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

func TestRosterService_CreatePlayer(t *testing.T) {
	playerRepo := &mockPlayerRepository{}
	svc := NewRosterService(playerRepo, &mockEventRepository{}, &mockEventPlayerRepository{}, time.Second)

	t.Run("trims name and activates", func(t *testing.T) {
		p := &domain.Player{Name: "  Alice  "}
		if err := svc.CreatePlayer(context.Background(), p); err != nil {
			t.Fatal(err)
		}
		if p.Name != "Alice" || !p.IsActive {
			t.Errorf("player = %+v, want trimmed active player", p)
		}
		if p.CreatedAt.IsZero() || !p.UpdatedAt.Equal(p.CreatedAt) {
			t.Errorf("timestamps = (%v, %v), want both stamped equal", p.CreatedAt, p.UpdatedAt)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		err := svc.CreatePlayer(context.Background(), &domain.Player{Name: "   "})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})
}

func TestRosterService_AddPlayerToEvent(t *testing.T) {
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev1": {ID: "ev1", MaxPlayers: 4}},
	}
	playerRepo := &mockPlayerRepository{
		players: map[string]*domain.Player{
			"p1": {ID: "p1", Name: "Alice", IsActive: true},
			"p2": {ID: "p2", Name: "Gone", IsActive: false},
		},
	}

	t.Run("defaults to invited", func(t *testing.T) {
		svc := NewRosterService(playerRepo, eventRepo, &mockEventPlayerRepository{}, time.Second)
		ep, err := svc.AddPlayerToEvent(context.Background(), "ev1", "p1")
		if err != nil {
			t.Fatal(err)
		}
		if ep.Status != domain.StatusInvited {
			t.Errorf("status = %q, want invited", ep.Status)
		}
	})

	t.Run("inactive player refused", func(t *testing.T) {
		svc := NewRosterService(playerRepo, eventRepo, &mockEventPlayerRepository{}, time.Second)
		_, err := svc.AddPlayerToEvent(context.Background(), "ev1", "p2")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})

	t.Run("duplicate add surfaces ErrAlreadyAdded", func(t *testing.T) {
		epRepo := &mockEventPlayerRepository{createErr: domain.ErrAlreadyAdded}
		svc := NewRosterService(playerRepo, eventRepo, epRepo, time.Second)
		_, err := svc.AddPlayerToEvent(context.Background(), "ev1", "p1")
		if !errors.Is(err, domain.ErrAlreadyAdded) {
			t.Fatalf("got %v, want ErrAlreadyAdded", err)
		}
	})

	t.Run("missing event", func(t *testing.T) {
		svc := NewRosterService(playerRepo, eventRepo, &mockEventPlayerRepository{}, time.Second)
		_, err := svc.AddPlayerToEvent(context.Background(), "nope", "p1")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}

func TestRosterService_SetPlayerStatus(t *testing.T) {
	newFixture := func(playing int) (*mockEventRepository, *mockEventPlayerRepository) {
		eventRepo := &mockEventRepository{
			events: map[string]*domain.Event{"ev1": {ID: "ev1", MaxPlayers: 4}},
		}
		epRepo := &mockEventPlayerRepository{
			rows: map[string]*domain.EventPlayer{
				"ep5": {ID: "ep5", EventID: "ev1", PlayerID: "p5", Status: domain.StatusInvited},
			},
			playingCount: map[string]int{"ev1": playing},
		}
		return eventRepo, epRepo
	}

	t.Run("fifth player into a four-spot event is refused", func(t *testing.T) {
		eventRepo, epRepo := newFixture(4)
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		_, err := svc.SetPlayerStatus(context.Background(), "ep5", domain.StatusPlaying)
		if !errors.Is(err, domain.ErrCapacityExceeded) {
			t.Fatalf("got %v, want ErrCapacityExceeded", err)
		}
		if epRepo.rows["ep5"].Status != domain.StatusInvited {
			t.Error("refused transition still mutated the row")
		}
	})

	t.Run("waitlist stays open at capacity", func(t *testing.T) {
		eventRepo, epRepo := newFixture(4)
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		ep, err := svc.SetPlayerStatus(context.Background(), "ep5", domain.StatusWaitlist)
		if err != nil {
			t.Fatal(err)
		}
		if ep.Status != domain.StatusWaitlist {
			t.Errorf("status = %q, want waitlist", ep.Status)
		}
	})

	t.Run("playing with room", func(t *testing.T) {
		eventRepo, epRepo := newFixture(3)
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		ep, err := svc.SetPlayerStatus(context.Background(), "ep5", domain.StatusPlaying)
		if err != nil {
			t.Fatal(err)
		}
		if ep.Status != domain.StatusPlaying {
			t.Errorf("status = %q, want playing", ep.Status)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		eventRepo, epRepo := newFixture(4)
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		ep, err := svc.SetPlayerStatus(context.Background(), "ep5", domain.StatusInvited)
		if err != nil {
			t.Fatal(err)
		}
		if ep.Status != domain.StatusInvited {
			t.Errorf("status = %q, want invited", ep.Status)
		}
	})

	t.Run("lost race returns ErrConflict", func(t *testing.T) {
		eventRepo, epRepo := newFixture(3)
		epRepo.updateConflict = true
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		_, err := svc.SetPlayerStatus(context.Background(), "ep5", domain.StatusPlaying)
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		eventRepo, epRepo := newFixture(0)
		svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

		_, err := svc.SetPlayerStatus(context.Background(), "ep5", "golfing")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})
}

func TestRosterService_ListEventPlayers(t *testing.T) {
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev1": {ID: "ev1", MaxPlayers: 4}},
	}
	epRepo := &mockEventPlayerRepository{
		details: map[string][]*domain.EventPlayerDetail{
			"ev1": {
				{EventPlayer: domain.EventPlayer{ID: "ep1", Status: domain.StatusPlaying}, PlayerName: "Alice"},
				{EventPlayer: domain.EventPlayer{ID: "ep2", Status: domain.StatusWaitlist}, PlayerName: "Bob"},
			},
		},
		playingCount: map[string]int{"ev1": 1},
	}
	svc := NewRosterService(&mockPlayerRepository{}, eventRepo, epRepo, time.Second)

	t.Run("status filter", func(t *testing.T) {
		players, playing, err := svc.ListEventPlayers(context.Background(), "ev1", domain.StatusWaitlist)
		if err != nil {
			t.Fatal(err)
		}
		if len(players) != 1 || players[0].PlayerName != "Bob" {
			t.Errorf("players = %+v, want just Bob", players)
		}
		if playing != 1 {
			t.Errorf("playing = %d, want 1", playing)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, _, err := svc.ListEventPlayers(context.Background(), "ev1", "bogus")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("got %v, want ErrInvalidInput", err)
		}
	})
}
