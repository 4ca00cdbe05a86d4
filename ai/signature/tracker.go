// Package signature tracks a personality's scripted combos: when they may
// fire, which pattern is running, and their cooldowns.
package signature

import (
	"time"

	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/random"
	"github.com/charmbracelet/log"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TriggerEnv is the environment signature conditions are evaluated against.
type TriggerEnv struct {
	Distance       float64 // to the opponent, or last sighting
	Visible        bool
	AmmoRatio      float64
	CoverNearby    bool
	Aggression     float64
	Health         float64
	OpponentHealth float64
	ScoreDiff      int
	TimeRemaining  float64 // seconds
}

// NewTriggerEnv derives the condition environment from a tick's input.
func NewTriggerEnv(in components.Input, aggression float64, coverNearby bool) TriggerEnv {
	env := TriggerEnv{
		Visible:       in.Opponent.Visible,
		AmmoRatio:     in.AmmoRatio(),
		CoverNearby:   coverNearby,
		Aggression:    aggression,
		Health:        in.HealthRatio(),
		ScoreDiff:     in.ScoreDiff(),
		TimeRemaining: in.TimeRemaining.Seconds(),
		Distance:      -1,
	}
	if in.Opponent.MaxHealth > 0 {
		env.OpponentHealth = in.Opponent.Health / in.Opponent.MaxHealth
	}
	if target, ok := in.OpponentTarget(); ok {
		env.Distance = in.Self.Position.Dist(target)
	}
	return env
}

type entry struct {
	move     Move
	patterns []*tactics.Pattern
	program  *vm.Program
	usable   bool
}

// Snapshot is the mutable state of a Tracker.
type Snapshot struct {
	CooldownUntil []time.Time // parallel to Moves()
	Executing     bool
	Move          int
	Index         int
	StartedAt     time.Time
}

func (s Snapshot) clone() Snapshot {
	s.CooldownUntil = append([]time.Time(nil), s.CooldownUntil...)
	return s
}

// Tracker owns signature state for one bot.
type Tracker struct {
	entries []entry
	rng     random.Source
	gate    float64
	logger  *log.Logger

	s Snapshot
}

// NewTracker builds a tracker over the built-in moves.
func NewTracker(p config.Personality, rng random.Source, t config.Tuning, logger *log.Logger) *Tracker {
	return NewTrackerWithMoves(catalog, p, rng, t, logger)
}

// NewTrackerWithMoves builds a tracker over a custom move list. Moves the
// personality cannot use, moves naming unknown patterns and moves whose
// condition does not compile are kept but never trigger.
func NewTrackerWithMoves(moves []Move, p config.Personality, rng random.Source, t config.Tuning, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	tr := &Tracker{rng: rng, gate: t.SignatureGate, logger: logger}
	for _, m := range moves {
		e := entry{move: m, usable: m.allows(p.ID) && p.HasSignature(m.ID)}
		for _, id := range m.Patterns {
			pat, ok := tactics.Lookup(id)
			if !ok {
				logger.Warn("signature references unknown pattern", "signature", m.ID, "pattern", id)
				e.usable = false
				continue
			}
			e.patterns = append(e.patterns, pat)
		}
		if len(e.patterns) == 0 {
			e.usable = false
		}
		if m.Condition != "" {
			prog, err := expr.Compile(m.Condition, expr.Env(TriggerEnv{}), expr.AsBool())
			if err != nil {
				logger.Warn("signature condition does not compile", "signature", m.ID, "err", err)
				e.usable = false
			}
			e.program = prog
		}
		tr.entries = append(tr.entries, e)
	}
	tr.s = tr.initial()
	return tr
}

func (t *Tracker) initial() Snapshot {
	return Snapshot{CooldownUntil: make([]time.Time, len(t.entries))}
}

// Moves lists the moves the tracker knows, in order.
func (t *Tracker) Moves() []Move {
	out := make([]Move, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.move
	}
	return out
}

// Eligible returns the usable moves whose cooldown has elapsed and whose
// ranges and condition all hold, without rolling the gate.
func (t *Tracker) Eligible(env TriggerEnv, now time.Time) []*Move {
	var out []*Move
	for i := range t.entries {
		e := &t.entries[i]
		if !e.usable || now.Before(t.s.CooldownUntil[i]) {
			continue
		}
		if !e.move.inRange(env.Aggression, env.Health, env.ScoreDiff) {
			continue
		}
		if e.program != nil && !t.condition(e, env) {
			continue
		}
		out = append(out, &e.move)
	}
	return out
}

func (t *Tracker) condition(e *entry, env TriggerEnv) bool {
	res, err := vm.Run(e.program, env)
	if err != nil {
		t.logger.Debug("signature condition error", "signature", e.move.ID, "err", err)
		return false
	}
	ok, _ := res.(bool)
	return ok
}

// CheckTrigger returns a move to start this tick, or nil. Eligible moves
// pass a random gate first, then one is picked uniformly.
func (t *Tracker) CheckTrigger(env TriggerEnv, now time.Time) *Move {
	if t.s.Executing {
		return nil
	}
	eligible := t.Eligible(env, now)
	if len(eligible) == 0 {
		return nil
	}
	if !random.Chance(t.rng, t.gate) {
		return nil
	}
	i := int(t.rng.Float64() * float64(len(eligible)))
	return eligible[min(i, len(eligible)-1)]
}

func (t *Tracker) indexOf(id string) int {
	for i, e := range t.entries {
		if e.move.ID == id {
			return i
		}
	}
	return -1
}

// Start begins executing the move with the given id. It reports false if
// another move is running or the id is unknown.
func (t *Tracker) Start(id string, now time.Time) bool {
	i := t.indexOf(id)
	if t.s.Executing || i < 0 || len(t.entries[i].patterns) == 0 {
		return false
	}
	t.s.Executing = true
	t.s.Move = i
	t.s.Index = 0
	t.s.StartedAt = now
	return true
}

func (t *Tracker) IsExecuting() bool { return t.s.Executing }

// Active returns the running move, or nil.
func (t *Tracker) Active() *Move {
	if !t.s.Executing {
		return nil
	}
	return &t.entries[t.s.Move].move
}

// CurrentPattern is the pattern the running move wants now, or nil.
func (t *Tracker) CurrentPattern() *tactics.Pattern {
	if !t.s.Executing {
		return nil
	}
	pats := t.entries[t.s.Move].patterns
	if t.s.Index >= len(pats) {
		return nil
	}
	return pats[t.s.Index]
}

// Advance moves to the next pattern and reports whether one remains.
func (t *Tracker) Advance() bool {
	if !t.s.Executing {
		return false
	}
	t.s.Index++
	return t.s.Index < len(t.entries[t.s.Move].patterns)
}

// Complete ends the running move and starts its full cooldown.
func (t *Tracker) Complete(now time.Time) *Move {
	return t.finish(now, 1)
}

// Cancel aborts the running move and starts half its cooldown.
func (t *Tracker) Cancel(now time.Time) *Move {
	return t.finish(now, 0.5)
}

func (t *Tracker) finish(now time.Time, cooldownScale float64) *Move {
	if !t.s.Executing {
		return nil
	}
	e := &t.entries[t.s.Move]
	t.s.CooldownUntil[t.s.Move] = now.Add(time.Duration(float64(e.move.Cooldown) * cooldownScale))
	t.s.Executing = false
	t.s.Move = 0
	t.s.Index = 0
	t.s.StartedAt = time.Time{}
	return &e.move
}

// OnCooldown reports whether the move with the given id is cooling down.
func (t *Tracker) OnCooldown(id string, now time.Time) bool {
	return t.CooldownRemaining(id, now) > 0
}

// CooldownRemaining returns how long until the move may trigger again.
func (t *Tracker) CooldownRemaining(id string, now time.Time) time.Duration {
	i := t.indexOf(id)
	if i < 0 {
		return 0
	}
	return max(0, t.s.CooldownUntil[i].Sub(now))
}

// OnEvent cancels the running move when the bot dies. It returns the
// cancelled move, if any.
func (t *Tracker) OnEvent(ev components.CombatEvent) *Move {
	if ev.Kind == components.PlayerKilledBot && t.s.Executing {
		return t.Cancel(ev.At)
	}
	return nil
}

func (t *Tracker) Snapshot() Snapshot { return t.s.clone() }

func (t *Tracker) Restore(s Snapshot) { t.s = s.clone() }

// Reset clears cooldowns and any running move.
func (t *Tracker) Reset() { t.s = t.initial() }
