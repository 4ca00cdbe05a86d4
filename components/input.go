package components

import (
	"time"

	"github.com/automoto/arenabot/shared/gamemath"
)

// SelfState is what the bot knows about itself.
type SelfState struct {
	Position  gamemath.Vec3
	Health    float64
	MaxHealth float64
	Ammo      int
	MaxAmmo   int
}

// OpponentState is what the bot can observe about its opponent. Position
// and Velocity are only meaningful while Visible.
type OpponentState struct {
	Position  gamemath.Vec3
	Velocity  gamemath.Vec3
	Health    float64
	MaxHealth float64
	Visible   bool
}

// Sighting is the last place the opponent was seen.
type Sighting struct {
	Position gamemath.Vec3
	At       time.Time
	Known    bool
}

// Input is the per-tick snapshot the host hands to the engine. The engine
// never mutates it.
type Input struct {
	Now           time.Time
	Self          SelfState
	Opponent      OpponentState
	LastSeen      Sighting
	BotScore      int
	OpponentScore int
	TimeRemaining time.Duration
	MatchDuration time.Duration
	Covers        []Cover
	Bounds        gamemath.Bounds
}

// HealthRatio is the bot's health in [0, 1]. A zero max health reads as
// full health.
func (in Input) HealthRatio() float64 {
	if in.Self.MaxHealth <= 0 {
		return 1
	}
	return gamemath.Clamp01(in.Self.Health / in.Self.MaxHealth)
}

// ScoreDiff is the bot's score minus the opponent's.
func (in Input) ScoreDiff() int {
	return in.BotScore - in.OpponentScore
}

// MatchElapsed is how far into the match the snapshot was taken.
func (in Input) MatchElapsed() time.Duration {
	elapsed := in.MatchDuration - in.TimeRemaining
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// MatchProgress is MatchElapsed as a fraction of the match length.
func (in Input) MatchProgress() float64 {
	if in.MatchDuration <= 0 {
		return 0
	}
	return gamemath.Clamp01(float64(in.MatchElapsed()) / float64(in.MatchDuration))
}

// AmmoRatio is the bot's magazine fill in [0, 1].
func (in Input) AmmoRatio() float64 {
	if in.Self.MaxAmmo <= 0 {
		return 0
	}
	return gamemath.Clamp01(float64(in.Self.Ammo) / float64(in.Self.MaxAmmo))
}

// OpponentTarget returns where the bot believes the opponent is: the live
// position when visible, otherwise the last sighting.
func (in Input) OpponentTarget() (gamemath.Vec3, bool) {
	if in.Opponent.Visible {
		return in.Opponent.Position, true
	}
	if in.LastSeen.Known {
		return in.LastSeen.Position, true
	}
	return gamemath.Vec3{}, false
}
