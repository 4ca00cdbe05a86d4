// Package aim simulates a human-ish aim: reaction delay, lead, error,
// smoothing and a little jitter.
package aim

import (
	"math"
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/random"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const frame = 16 * time.Millisecond

// State is the per-tick result.
type State struct {
	Current  gamemath.Vec3
	Target   gamemath.Vec3
	OnTarget bool
	Reacting bool // the reaction timer is still running
	Flicking bool
}

// Snapshot is the mutable state of a Simulator.
type Snapshot struct {
	Initialized  bool
	Current      gamemath.Vec3
	Target       gamemath.Vec3
	Error        gamemath.Vec3
	LastOpponent gamemath.Vec3 // opponent position at the previous Update
	ReactionLeft time.Duration
	Flicking     bool
	FlickFrom    gamemath.Vec3
	FlickTo      gamemath.Vec3
	FlickElapsed time.Duration
}

type Simulator struct {
	reaction time.Duration
	accuracy float64
	tracking float64
	tuning   config.Tuning
	rng      random.Source

	flick *gween.Tween
	s     Snapshot
}

func New(p config.Personality, d config.BotDifficultyConfig, t config.Tuning, rng random.Source) *Simulator {
	reactionMul := d.ReactionMultiplier
	if reactionMul <= 0 {
		reactionMul = 1
	}
	accuracyMul := d.AccuracyMultiplier
	if accuracyMul <= 0 {
		accuracyMul = 1
	}
	return &Simulator{
		reaction: time.Duration(float64(p.ReactionTime) * reactionMul),
		accuracy: gamemath.Clamp01(p.Accuracy * accuracyMul),
		tracking: gamemath.Clamp01(p.TrackingSkill),
		tuning:   t,
		rng:      rng,
	}
}

// ReactionTime is the difficulty-scaled reaction delay.
func (a *Simulator) ReactionTime() time.Duration { return a.reaction }

// Accuracy is the difficulty-scaled accuracy in [0, 1].
func (a *Simulator) Accuracy() float64 { return a.accuracy }

func (a *Simulator) sampleError() gamemath.Vec3 {
	mag := (1 - a.accuracy) * a.tuning.AimErrorScale
	return gamemath.Vec3{
		X: random.Signed(a.rng) * mag,
		Y: random.Signed(a.rng) * mag * 0.5,
		Z: random.Signed(a.rng) * mag,
	}
}

func (a *Simulator) smoothing(state components.BotState) float64 {
	s := a.tuning.AimSmoothing
	switch state {
	case components.StateRetreat, components.StateReposition:
		s *= a.tuning.RetreatAimDamping
	case components.StateExecutingSignature:
		s *= a.tuning.SignatureAimBoost
	}
	return gamemath.Clamp(s, 0, 1)
}

// Update advances the simulator by dt toward an opponent at oppPos moving
// with oppVel.
func (a *Simulator) Update(dt time.Duration, oppPos, oppVel gamemath.Vec3, state components.BotState) State {
	s := &a.s
	if !s.Initialized {
		s.Initialized = true
		s.Error = a.sampleError()
		s.Current = oppPos.Add(s.Error.Scale(2))
		s.Target = s.Current
		s.LastOpponent = oppPos
		s.ReactionLeft = a.reaction
	}

	// Only a jump between consecutive updates re-arms; steady motion is tracked.
	if oppPos.Dist(s.LastOpponent) > a.tuning.AimMoveThreshold {
		s.ReactionLeft = a.reaction
	}
	s.LastOpponent = oppPos

	if s.ReactionLeft > 0 {
		s.ReactionLeft -= dt
		if s.ReactionLeft <= 0 {
			s.ReactionLeft = 0
			s.Error = a.sampleError()
		}
	}
	if s.ReactionLeft == 0 {
		lead := oppVel.Scale(a.tuning.LeadTime * a.tracking)
		s.Target = oppPos.Add(lead).Add(s.Error)
	}

	if s.Flicking {
		a.stepFlick(dt)
	} else {
		alpha := 1 - math.Pow(1-a.smoothing(state), float64(dt)/float64(frame))
		s.Current = s.Current.Lerp(s.Target, gamemath.Clamp01(alpha))
	}

	j := a.tuning.AimJitter
	s.Current = s.Current.Add(gamemath.Vec3{
		X: random.Signed(a.rng) * j,
		Y: random.Signed(a.rng) * j * 0.5,
		Z: random.Signed(a.rng) * j,
	})

	return State{
		Current:  s.Current,
		Target:   s.Target,
		OnTarget: s.Current.Dist(oppPos) < a.tuning.OnTargetRadius,
		Reacting: s.ReactionLeft > 0,
		Flicking: s.Flicking,
	}
}

func (a *Simulator) stepFlick(dt time.Duration) {
	s := &a.s
	if a.flick == nil {
		a.flick = a.newFlick()
		a.flick.Update(float32(s.FlickElapsed.Seconds()))
	}
	s.FlickElapsed += dt
	t, done := a.flick.Update(float32(dt.Seconds()))
	s.Current = s.FlickFrom.Lerp(s.FlickTo, float64(t))
	if done {
		s.Current = s.FlickTo
		s.Flicking = false
		a.flick = nil
	}
}

func (a *Simulator) newFlick() *gween.Tween {
	return gween.New(0, 1, float32(a.tuning.FlickDuration.Seconds()), ease.OutCubic)
}

// Flick snaps the aim toward target over a short eased motion.
func (a *Simulator) Flick(target gamemath.Vec3) {
	s := &a.s
	s.Initialized = true
	s.Flicking = true
	s.FlickFrom = s.Current
	s.FlickTo = target
	s.FlickElapsed = 0
	s.Target = target
	a.flick = a.newFlick()
}

// SetAim places the aim at p immediately.
func (a *Simulator) SetAim(p gamemath.Vec3) {
	s := &a.s
	s.Initialized = true
	s.Current = p
	s.Target = p
	s.Flicking = false
	a.flick = nil
}

// Current returns the aim point without advancing.
func (a *Simulator) Current() gamemath.Vec3 { return a.s.Current }

func (a *Simulator) Snapshot() Snapshot { return a.s }

func (a *Simulator) Restore(s Snapshot) {
	a.s = s
	a.flick = nil
}

// Reset forgets the aim entirely.
func (a *Simulator) Reset() {
	a.s = Snapshot{}
	a.flick = nil
}
