package domain

import (
	"errors"
	"testing"
)

func TestCanSetStatus(t *testing.T) {
	tests := []struct {
		name         string
		playingCount int
		maxPlayers   int
		target       Status
		wantErr      error
	}{
		{"playing with room", 3, 4, StatusPlaying, nil},
		{"playing at capacity", 4, 4, StatusPlaying, ErrCapacityExceeded},
		{"playing over capacity", 5, 4, StatusPlaying, ErrCapacityExceeded},
		{"waitlist at capacity", 4, 4, StatusWaitlist, nil},
		{"not_playing at capacity", 4, 4, StatusNotPlaying, nil},
		{"invited at capacity", 4, 4, StatusInvited, nil},
		{"playing into empty event", 0, 1, StatusPlaying, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSetStatus(tt.playingCount, tt.maxPlayers, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanSetStatus(%d, %d, %q) = %v, want %v",
					tt.playingCount, tt.maxPlayers, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusInvited, StatusPlaying, StatusWaitlist, StatusNotPlaying} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "maybe", "PLAYING"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
