// Package aggression produces the bot's time-varying willingness to take
// risks: a personality baseline shaped by two sine waves and nudged by the
// match situation.
package aggression

import (
	"fmt"
	"math"
	"time"

	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
)

const (
	MinAggression = 0.1
	MaxAggression = 0.95

	PushPhaseAbove    = 0.65
	RetreatPhaseBelow = 0.35

	historySize    = 10
	trendWindow    = 5
	trendThreshold = 0.02

	slowPeriod    = 31 * time.Second
	slowAmplitude = 0.15
	fastPeriod    = 10 * time.Second
	fastAmplitude = 0.08
	fastPhase     = 1.5 // radians

	pressureStart = 0.7
	pressureMax   = 0.15
)

// Trend classifies the recent direction of the signal.
type Trend int

const (
	TrendRising Trend = iota
	TrendFalling
	TrendPeak
	TrendValley
)

func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	case TrendPeak:
		return "peak"
	case TrendValley:
		return "valley"
	}
	return fmt.Sprintf("Trend(%d)", int(t))
}

// Modifiers is the live match situation that bends the base wave.
type Modifiers struct {
	ScoreDiff     int     // bot score minus opponent score
	HealthRatio   float64 // 0..1
	MatchProgress float64 // 0..1 of match time elapsed
	DamageDealt   float64 // recent, decayed
	DamageTaken   float64 // recent, decayed
}

// NeutralModifiers leaves the base wave untouched.
func NeutralModifiers() Modifiers {
	return Modifiers{HealthRatio: 0.5}
}

// State is one tick's aggression reading.
type State struct {
	Current        float64
	Trend          Trend
	InPushPhase    bool
	InRetreatPhase bool
}

// History is the sliding window of prior readings, oldest first.
type History struct {
	values [historySize]float64
	n      int
}

func (h *History) push(v float64) {
	if h.n < historySize {
		h.values[h.n] = v
		h.n++
		return
	}
	copy(h.values[:], h.values[1:])
	h.values[historySize-1] = v
}

// Len returns how many readings are stored.
func (h History) Len() int { return h.n }

// Values returns the stored readings, oldest first.
func (h History) Values() []float64 {
	out := make([]float64, h.n)
	copy(out, h.values[:h.n])
	return out
}

// Signal is the per-bot aggression generator.
type Signal struct {
	personality config.Personality
	history     History
}

func New(p config.Personality) *Signal {
	return &Signal{personality: p}
}

// CalculateBase returns the unclamped personality wave at matchTime.
func (s *Signal) CalculateBase(matchTime time.Duration) float64 {
	t := matchTime.Seconds()
	vol := s.personality.Volatility
	slow := math.Sin(2*math.Pi*t/slowPeriod.Seconds()) * slowAmplitude * vol
	fast := math.Sin(2*math.Pi*t/fastPeriod.Seconds()+fastPhase) * fastAmplitude * vol
	return s.personality.BaseAggression + slow + fast
}

// Calculate applies the modifiers to the base wave and clamps the result
// to [MinAggression, MaxAggression].
func (s *Signal) Calculate(matchTime time.Duration, m Modifiers) float64 {
	v := s.CalculateBase(matchTime)
	v += math.Tanh(float64(m.ScoreDiff)*0.1) * 0.15
	v += (m.HealthRatio - 0.5) * 0.2
	v += timePressure(m)
	v += math.Tanh((m.DamageDealt-m.DamageTaken)*0.001) * 0.1
	return gamemath.Clamp(v, MinAggression, MaxAggression)
}

func timePressure(m Modifiers) float64 {
	if m.ScoreDiff >= 0 || m.MatchProgress <= pressureStart {
		return 0
	}
	return pressureMax * gamemath.Clamp01((m.MatchProgress-pressureStart)/(1-pressureStart))
}

// State computes the reading at matchTime, records it in the history and
// classifies the trend.
func (s *Signal) State(matchTime time.Duration, m Modifiers) State {
	v := s.Calculate(matchTime, m)
	s.history.push(v)
	return State{
		Current:        v,
		Trend:          classify(s.history),
		InPushPhase:    v > PushPhaseAbove,
		InRetreatPhase: v < RetreatPhaseBelow,
	}
}

func classify(h History) Trend {
	if h.n < 2 {
		return TrendRising
	}
	v := h.values[:h.n]
	if h.n >= 3 {
		d1 := v[h.n-2] - v[h.n-3]
		d2 := v[h.n-1] - v[h.n-2]
		switch {
		case d1 > trendThreshold && d2 < -trendThreshold:
			return TrendPeak
		case d1 < -trendThreshold && d2 > trendThreshold:
			return TrendValley
		case d1 > trendThreshold && d2 > trendThreshold:
			return TrendRising
		case d1 < -trendThreshold && d2 < -trendThreshold:
			return TrendFalling
		}
	}
	oldest := v[max(0, h.n-trendWindow)]
	if v[h.n-1] >= oldest {
		return TrendRising
	}
	return TrendFalling
}

// History returns a copy of the reading window.
func (s *Signal) History() History { return s.history }

// Snapshot captures the mutable state for replay.
func (s *Signal) Snapshot() History { return s.history }

// Restore rewinds to a snapshot.
func (s *Signal) Restore(h History) { s.history = h }

// Reset clears the history.
func (s *Signal) Reset() { s.history = History{} }
