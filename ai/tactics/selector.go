// Package tactics holds the static pattern catalog and picks the next
// pattern for a bot.
package tactics

import (
	"math"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/random"
)

// Weigher supplies per-type score multipliers, usually a config.Personality.
type Weigher interface {
	TacticWeight(tacticType string) float64
}

var allowedTypes = map[components.BotState][]Type{
	components.StatePatrol:             {Push, Flank, Hold, Peek},
	components.StateEngage:             {Strafe, Peek, Push, Hold, Flank},
	components.StateRetreat:            {Retreat, Peek},
	components.StateReposition:         {Flank, Retreat, Strafe, Hold},
	components.StateExecutingSignature: Types,
}

// AllowedTypes returns the pattern types a state may use.
func AllowedTypes(state components.BotState) []Type {
	return allowedTypes[state]
}

// TypeAllowed reports whether state may use patterns of type t.
func TypeAllowed(state components.BotState, t Type) bool {
	for _, a := range allowedTypes[state] {
		if a == t {
			return true
		}
	}
	return false
}

// Admits reports whether p can run at the given aggression and health, with
// or without cover nearby.
func (p *Pattern) Admits(aggression, health float64, hasCover bool) bool {
	if aggression < p.AggressionMin || aggression > p.AggressionMax {
		return false
	}
	if health < p.MinHealth {
		return false
	}
	return hasCover || !p.RequiresCover
}

// AggressionFit is 1 at the center of p's aggression range and falls off
// linearly with distance from it.
func AggressionFit(p *Pattern, aggression float64) float64 {
	return 0.5 + 0.5*(1-math.Abs(aggression-p.Midpoint()))
}

// Weight returns w's multiplier for t, 1 when w is nil.
func Weight(w Weigher, t Type) float64 {
	if w == nil {
		return 1
	}
	return w.TacticWeight(t.String())
}

// Selector chooses one pattern per call, discouraging immediate repeats.
type Selector struct {
	rng    random.Source
	tuning config.Tuning
	last   string
}

func NewSelector(rng random.Source, t config.Tuning) *Selector {
	return &Selector{rng: rng, tuning: t}
}

// Candidates filters the catalog for the given situation.
func Candidates(state components.BotState, aggression, health float64, hasCover bool) []*Pattern {
	var out []*Pattern
	for i := range catalog {
		p := &catalog[i]
		if TypeAllowed(state, p.Type) && p.Admits(aggression, health, hasCover) {
			out = append(out, p)
		}
	}
	return out
}

// Select scores every admissible pattern and returns the best. It never
// returns nil: with no candidates it falls back to Default.
func (s *Selector) Select(state components.BotState, aggression, health float64, hasCover bool, w Weigher) *Pattern {
	var (
		best      *Pattern
		bestScore = -1.0
	)
	for _, p := range Candidates(state, aggression, health, hasCover) {
		score := Weight(w, p.Type) * AggressionFit(p, aggression)
		if p.ID == s.last {
			score *= s.tuning.RepeatPenalty
		}
		score *= random.Range(s.rng, s.tuning.JitterMin, s.tuning.JitterMax)
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	if best == nil {
		best = Default()
	}
	s.last = best.ID
	return best
}

// Last is the id of the previous selection, empty after Reset.
func (s *Selector) Last() string { return s.last }

func (s *Selector) Snapshot() string { return s.last }

func (s *Selector) Restore(last string) { s.last = last }

func (s *Selector) Reset() { s.last = "" }
