package domain

import (
	"math"
	"strconv"
)

// PlayerStat is a player's scoring aggregate used for the score-to-beat
// helpers.
type PlayerStat struct {
	Average      float64
	RoundsPlayed int
}

// PlayerScoreToBeat returns the player's 6-round average rounded to the
// nearest whole number, or "New" for players with fewer than 6 rounds.
func PlayerScoreToBeat(stat *PlayerStat) string {
	if stat == nil || stat.RoundsPlayed < 6 {
		return "New"
	}
	return strconv.Itoa(int(math.Round(stat.Average)))
}

// GroupScoreToBeat averages the individual averages of the group's players,
// using whatever data each player has (even under 6 rounds). Returns nil
// when the group is empty or no player has a recorded round.
func GroupScoreToBeat(playerIDs []string, stats map[string]PlayerStat) *string {
	if len(playerIDs) == 0 {
		return nil
	}
	var sum float64
	var n int
	for _, id := range playerIDs {
		stat, ok := stats[id]
		if !ok || stat.RoundsPlayed == 0 || stat.Average <= 0 {
			continue
		}
		sum += stat.Average
		n++
	}
	if n == 0 {
		return nil
	}
	s := strconv.Itoa(int(math.Round(sum / float64(n))))
	return &s
}
