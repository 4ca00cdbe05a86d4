package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// PlayerScore tracks one combatant's match statistics
type PlayerScore struct {
	Slot       int
	Name       string
	Kills      int
	Deaths     int
	ShotsFired int
	Hits       int
}

// Accuracy is hits over shots, 0 before the first shot.
func (s PlayerScore) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}

// MatchData stores the clock and scoreboard of the running duel.
// This is a singleton component - only one match exists at a time.
type MatchData struct {
	ID        string
	Map       string
	Round     int
	Start     time.Time
	Now       time.Time
	Duration  time.Duration
	Remaining time.Duration
	Scores    []PlayerScore // indexed by slot
	Over      bool
}

var Match = donburi.NewComponentType[MatchData]()

// GetPlayerScore returns the score for a slot, creating it if needed
func (m *MatchData) GetPlayerScore(slot int) *PlayerScore {
	for len(m.Scores) <= slot {
		m.Scores = append(m.Scores, PlayerScore{Slot: len(m.Scores)})
	}
	return &m.Scores[slot]
}

// AddKill credits killer and debits victim.
func (m *MatchData) AddKill(killer, victim int) {
	m.GetPlayerScore(killer).Kills++
	m.GetPlayerScore(victim).Deaths++
}

// Elapsed is the match time played so far.
func (m *MatchData) Elapsed() time.Duration {
	return m.Duration - m.Remaining
}

// GetLeader returns the slot with the most kills (-1 for tie, -2 for no scores)
func (m *MatchData) GetLeader() int {
	if len(m.Scores) == 0 {
		return -2
	}

	maxKills := -1
	leader := -1
	tied := false

	for _, score := range m.Scores {
		if score.Kills > maxKills {
			maxKills = score.Kills
			leader = score.Slot
			tied = false
		} else if score.Kills == maxKills {
			tied = true
		}
	}

	if tied {
		return -1
	}
	return leader
}

// Opponent returns the other slot of a duel.
func Opponent(slot int) int { return 1 - slot }
