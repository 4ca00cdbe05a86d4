package signature

import "time"

// Move is a scripted combo. Patterns are tactics catalog ids run in order.
type Move struct {
	ID            string
	Patterns      []string
	Cooldown      time.Duration
	AggressionMin float64
	AggressionMax float64
	HealthMin     float64
	HealthMax     float64
	ScoreDiffMin  int
	ScoreDiffMax  int
	Personalities []string // empty allows every personality
	Condition     string   // optional expr-lang boolean over TriggerEnv
}

const anyScore = 1 << 16

// allows reports whether the move lists personality id.
func (m *Move) allows(id string) bool {
	if len(m.Personalities) == 0 {
		return true
	}
	for _, p := range m.Personalities {
		if p == id {
			return true
		}
	}
	return false
}

func (m *Move) inRange(aggression, health float64, scoreDiff int) bool {
	return aggression >= m.AggressionMin && aggression <= m.AggressionMax &&
		health >= m.HealthMin && health <= m.HealthMax &&
		scoreDiff >= m.ScoreDiffMin && scoreDiff <= m.ScoreDiffMax
}

var catalog = []Move{
	{
		ID:            "blitz",
		Patterns:      []string{"push_zigzag", "push_direct", "strafe_jitter"},
		Cooldown:      25 * time.Second,
		AggressionMin: 0.7, AggressionMax: 1,
		HealthMin: 0.5, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"rushdown", "duelist"},
		Condition:     "Visible && Distance < 15",
	},
	{
		ID:            "bait_and_punish",
		Patterns:      []string{"retreat_backpedal", "peek_quick", "push_direct"},
		Cooldown:      30 * time.Second,
		AggressionMin: 0.4, AggressionMax: 0.8,
		HealthMin: 0.4, HealthMax: 1,
		ScoreDiffMin: -5, ScoreDiffMax: 5,
		Personalities: []string{"duelist", "trickster"},
		Condition:     "Visible",
	},
	{
		ID:            "phantom_flank",
		Patterns:      []string{"flank_wide", "push_arc", "strafe_arc"},
		Cooldown:      35 * time.Second,
		AggressionMin: 0.45, AggressionMax: 0.9,
		HealthMin: 0.5, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"trickster", "sentinel"},
		Condition:     "Distance > 6",
	},
	{
		ID:            "turtle_up",
		Patterns:      []string{"retreat_cover", "hold_cover", "peek_crouch"},
		Cooldown:      30 * time.Second,
		AggressionMin: 0, AggressionMax: 0.5,
		HealthMin: 0, HealthMax: 0.5,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"sentinel"},
		Condition:     "CoverNearby",
	},
	{
		ID:            "desperation_rush",
		Patterns:      []string{"push_direct", "push_zigzag"},
		Cooldown:      40 * time.Second,
		AggressionMin: 0.5, AggressionMax: 1,
		HealthMin: 0.3, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: -3,
		Personalities: []string{"rushdown", "duelist"},
		Condition:     "AmmoRatio > 0.3",
	},
	{
		ID:            "sniper_nest",
		Patterns:      []string{"hold_angle", "peek_crouch", "hold_angle"},
		Cooldown:      30 * time.Second,
		AggressionMin: 0.1, AggressionMax: 0.6,
		HealthMin: 0.3, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"sentinel"},
		Condition:     "Distance > 10",
	},
	{
		ID:            "dance",
		Patterns:      []string{"strafe_jitter", "strafe_arc", "strafe_jitter"},
		Cooldown:      20 * time.Second,
		AggressionMin: 0.4, AggressionMax: 0.85,
		HealthMin: 0.4, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"duelist", "trickster"},
		Condition:     "Visible && Distance < 12",
	},
	{
		ID:            "shoulder_check",
		Patterns:      []string{"peek_wide", "peek_quick", "strafe_wide"},
		Cooldown:      20 * time.Second,
		AggressionMin: 0.35, AggressionMax: 0.75,
		HealthMin: 0.3, HealthMax: 1,
		ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore,
		Personalities: []string{"sentinel", "duelist"},
	},
	{
		ID:            "victory_lap",
		Patterns:      []string{"strafe_wide", "hold_angle"},
		Cooldown:      45 * time.Second,
		AggressionMin: 0.3, AggressionMax: 0.9,
		HealthMin: 0.5, HealthMax: 1,
		ScoreDiffMin: 3, ScoreDiffMax: anyScore,
		Personalities: []string{"rushdown", "trickster"},
	},
}

// Catalog returns a copy of the built-in moves.
func Catalog() []Move {
	out := make([]Move, len(catalog))
	copy(out, catalog)
	return out
}
