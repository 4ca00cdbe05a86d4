// Package mercy backs a bot off when it has been dominating the opponent.
package mercy

import (
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
)

const (
	DefaultThreshold = 0.7

	damageWeight = 0.4
	hitWeight    = 0.3
	killWeight   = 0.3
	hitCap       = 5
	killCap      = 3

	minThreshold = 0.05
	epsilon      = 1e-9
)

// Metrics are the combat accumulators behind the domination score. Damage
// totals decay over time; streaks and misses only change on events.
type Metrics struct {
	DamageDealt float64
	DamageTaken float64
	HitStreak   float64
	KillStreak  float64
	Misses      float64
}

// DominationScore weighs damage share, hit streak and kill streak into [0, 1].
func (m Metrics) DominationScore() float64 {
	share := 0.5
	if total := m.DamageDealt + m.DamageTaken; total > 0 {
		share = m.DamageDealt / total
	}
	score := damageWeight*share +
		hitWeight*min(m.HitStreak, hitCap)/hitCap +
		killWeight*min(m.KillStreak, killCap)/killCap
	return gamemath.Clamp01(score)
}

func (m *Metrics) decay(factor float64) {
	m.DamageDealt *= factor
	m.DamageTaken *= factor
}

// State is what a host or the conductor reads back after an update.
type State struct {
	IsActive  bool
	Score     float64       // domination score
	Level     float64       // aggression reduction currently applied
	Remaining time.Duration // zero while inactive
}

// Snapshot is the full mutable state of a Regulator.
type Snapshot struct {
	Metrics     Metrics
	Active      bool
	ActivatedAt time.Time
	LastUpdate  time.Time
}

// Regulator tracks domination and opens a mercy window when it gets lopsided.
type Regulator struct {
	threshold float64
	enabled   bool
	tuning    config.Tuning

	s Snapshot
}

func New(p config.Personality, d config.BotDifficultyConfig, t config.Tuning) *Regulator {
	base := p.MercyThreshold
	if base <= 0 {
		base = DefaultThreshold
	}
	mult := d.MercyMultiplier
	if mult <= 0 {
		mult = 1
	}
	return &Regulator{
		threshold: gamemath.Clamp(base*mult, minThreshold, 1),
		enabled:   d.MercyEnabled,
		tuning:    t,
	}
}

// Threshold is the domination score that opens a mercy window.
func (r *Regulator) Threshold() float64 { return r.threshold }

// Record folds one combat outcome into the accumulators.
func (r *Regulator) Record(ev components.CombatEvent) {
	m := &r.s.Metrics
	switch ev.Kind {
	case components.BotHitPlayer:
		m.DamageDealt += ev.Damage
		m.HitStreak++
	case components.PlayerHitBot:
		m.DamageTaken += ev.Damage
		m.HitStreak = 0
	case components.BotMissed:
		m.Misses++
		m.HitStreak = 0
	case components.BotKilledPlayer:
		m.KillStreak++
	case components.PlayerKilledBot:
		r.Reset()
	}
}

// Update decays the damage totals by the time since the previous update and
// advances the mercy window.
func (r *Regulator) Update(now time.Time) State {
	if !r.s.LastUpdate.IsZero() {
		dt := now.Sub(r.s.LastUpdate).Seconds()
		if dt > 0 {
			r.s.Metrics.decay(max(0, 1-dt*r.tuning.DominationDecayRate))
		}
	}
	r.s.LastUpdate = now

	if !r.enabled {
		r.s.Active = false
		return r.state(now)
	}

	if r.s.Active {
		if now.Sub(r.s.ActivatedAt) >= r.tuning.MercyDuration {
			r.deactivate()
		}
	} else if r.s.Metrics.DominationScore() >= r.threshold-epsilon {
		r.s.Active = true
		r.s.ActivatedAt = now
	}
	return r.state(now)
}

func (r *Regulator) deactivate() {
	r.s.Active = false
	r.s.ActivatedAt = time.Time{}
	m := &r.s.Metrics
	m.DamageDealt /= 2
	m.DamageTaken /= 2
	m.KillStreak /= 2
	m.HitStreak = 0
	m.Misses = 0
}

func (r *Regulator) state(now time.Time) State {
	st := State{Score: r.s.Metrics.DominationScore()}
	if r.s.Active {
		st.IsActive = true
		st.Level = r.tuning.AggressionReduction
		st.Remaining = max(0, r.tuning.MercyDuration-now.Sub(r.s.ActivatedAt))
	}
	return st
}

// AggressionMultiplier scales aggression down while mercy is active.
func (r *Regulator) AggressionMultiplier() float64 {
	if !r.enabled || !r.s.Active {
		return 1
	}
	return 1 - r.tuning.AggressionReduction
}

func (r *Regulator) IsActive() bool { return r.enabled && r.s.Active }

func (r *Regulator) RecentDamageDealt() float64 { return r.s.Metrics.DamageDealt }

func (r *Regulator) RecentDamageTaken() float64 { return r.s.Metrics.DamageTaken }

// Metrics returns a copy of the accumulators.
func (r *Regulator) Metrics() Metrics { return r.s.Metrics }

func (r *Regulator) Snapshot() Snapshot { return r.s }

func (r *Regulator) Restore(s Snapshot) { r.s = s }

// Reset zeroes everything and closes any open window.
func (r *Regulator) Reset() { r.s = Snapshot{} }
