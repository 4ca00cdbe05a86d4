// Package conductor runs one bot's decision loop: it reads a per-tick
// snapshot, advances every subsystem and emits the bot's command.
package conductor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/automoto/arenabot/ai/aggression"
	"github.com/automoto/arenabot/ai/aim"
	"github.com/automoto/arenabot/ai/mercy"
	"github.com/automoto/arenabot/ai/phrase"
	"github.com/automoto/arenabot/ai/signature"
	"github.com/automoto/arenabot/ai/spatial"
	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/random"
)

// Config is everything a conductor needs at construction.
type Config struct {
	Personality config.Personality
	Difficulty  config.BotDifficultyConfig
	Tuning      config.Tuning
	Arena       *spatial.Evaluator // nil: open arena without obstacles
	Rand        random.Source      // nil: random.Default()
	Logger      *log.Logger        // nil: log.Default()
}

// Source records which resolver supplied the running pattern.
type Source int

const (
	SourceNone Source = iota
	SourceDirect
	SourcePhrase
	SourceSignature
)

type tickState struct {
	State components.BotState

	SeenOpponent  bool
	LastVisibleAt time.Time

	Pattern          *tactics.Pattern
	PatternSource    Source
	PatternStartedAt time.Time
	Side             float64 // +1 or -1, picked per pattern
	Goal             gamemath.Vec3
	HasGoal          bool

	Phrase      *phrase.Phrase
	PhraseIndex int

	Path        []gamemath.Vec3
	PathGoal    gamemath.Vec3
	PathIndex   int
	PathPlanned bool // set even when no route was found

	PatrolGoal    gamemath.Vec3
	HasPatrolGoal bool

	MercyActive bool
	Aggression  aggression.State
}

// Conductor is one bot's brain. It is not safe for concurrent use; Conduct
// and RecordEvent may interleave on one goroutine.
type Conductor struct {
	id          string
	personality config.Personality
	difficulty  config.BotDifficultyConfig
	tuning      config.Tuning
	rng         random.Source
	logger      *log.Logger

	aggression *aggression.Signal
	mercy      *mercy.Regulator
	selector   *tactics.Selector
	composer   *phrase.Composer
	signatures *signature.Tracker
	aim        *aim.Simulator
	arena      *spatial.Evaluator

	resolvers []resolver

	s      tickState
	outbox []components.Notification
}

func New(cfg Config) *Conductor {
	if cfg.Rand == nil {
		cfg.Rand = random.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Arena == nil {
		cfg.Arena = spatial.New(gamemath.Bounds{}, nil, cfg.Tuning, cfg.Rand)
	}

	id := uuid.NewString()
	logger := cfg.Logger.With("bot", id[:8], "personality", cfg.Personality.ID)

	c := &Conductor{
		id:          id,
		personality: cfg.Personality,
		difficulty:  cfg.Difficulty,
		tuning:      cfg.Tuning,
		rng:         cfg.Rand,
		logger:      logger,

		aggression: aggression.New(cfg.Personality),
		mercy:      mercy.New(cfg.Personality, cfg.Difficulty, cfg.Tuning),
		selector:   tactics.NewSelector(cfg.Rand, cfg.Tuning),
		composer:   phrase.NewComposer(cfg.Rand, cfg.Tuning, cfg.Personality),
		signatures: signature.NewTracker(cfg.Personality, cfg.Rand, cfg.Tuning, logger),
		aim:        aim.New(cfg.Personality, cfg.Difficulty, cfg.Tuning, cfg.Rand),
		arena:      cfg.Arena,
	}
	c.resolvers = []resolver{
		c.continueSignature,
		c.triggerSignature,
		c.continuePhrase,
		c.composePhrase,
		c.selectDirect,
	}
	c.s = initialState()
	return c
}

func initialState() tickState {
	return tickState{State: components.StatePatrol, Side: 1}
}

func (c *Conductor) ID() string { return c.id }

func (c *Conductor) Personality() config.Personality { return c.personality }

func (c *Conductor) State() components.BotState { return c.s.State }

// Pattern returns the running pattern, nil before the first tick.
func (c *Conductor) Pattern() *tactics.Pattern { return c.s.Pattern }

// Phrase returns the running phrase, if any.
func (c *Conductor) Phrase() *phrase.Phrase { return c.s.Phrase }

// Aggression is the reading from the latest tick.
func (c *Conductor) Aggression() aggression.State { return c.s.Aggression }

// Mercy exposes the regulator for telemetry.
func (c *Conductor) Mercy() *mercy.Regulator { return c.mercy }

// Signatures exposes the tracker for telemetry.
func (c *Conductor) Signatures() *signature.Tracker { return c.signatures }

// SetCounterWeights forwards flow-analysis multipliers to the composer.
func (c *Conductor) SetCounterWeights(w map[phrase.Category]float64) {
	c.composer.SetCounterWeights(w)
}

// RecordEvent feeds a combat outcome to the regulator and the tracker. It
// may be called between ticks.
func (c *Conductor) RecordEvent(ev components.CombatEvent) {
	c.mercy.Record(ev)
	if m := c.signatures.OnEvent(ev); m != nil {
		c.logger.Debug("signature cancelled", "signature", m.ID, "event", ev.Kind)
		c.notify(components.Notification{Kind: components.NotifySignatureCancelled, At: ev.At, Signature: m.ID})
		c.clearPattern()
	}
}

// Drain returns and clears the queued notifications.
func (c *Conductor) Drain() []components.Notification {
	out := c.outbox
	c.outbox = nil
	return out
}

func (c *Conductor) notify(n components.Notification) {
	c.outbox = append(c.outbox, n)
}

// Reset returns every subsystem to its spawn state. Call on respawn.
func (c *Conductor) Reset() {
	c.aggression.Reset()
	c.mercy.Reset()
	c.selector.Reset()
	c.composer.Reset()
	c.signatures.Reset()
	c.aim.Reset()
	c.s = initialState()
	c.outbox = nil
}

// Snapshot is the full mutable state of a conductor and its subsystems.
type Snapshot struct {
	tick       tickState
	aggression aggression.History
	mercy      mercy.Snapshot
	selector   string
	composer   phrase.Snapshot
	signatures signature.Snapshot
	aim        aim.Snapshot
}

func (c *Conductor) Snapshot() Snapshot {
	t := c.s
	t.Path = append([]gamemath.Vec3(nil), c.s.Path...)
	return Snapshot{
		tick:       t,
		aggression: c.aggression.Snapshot(),
		mercy:      c.mercy.Snapshot(),
		selector:   c.selector.Snapshot(),
		composer:   c.composer.Snapshot(),
		signatures: c.signatures.Snapshot(),
		aim:        c.aim.Snapshot(),
	}
}

func (c *Conductor) Restore(s Snapshot) {
	c.s = s.tick
	c.s.Path = append([]gamemath.Vec3(nil), s.tick.Path...)
	c.aggression.Restore(s.aggression)
	c.mercy.Restore(s.mercy)
	c.selector.Restore(s.selector)
	c.composer.Restore(s.composer)
	c.signatures.Restore(s.signatures)
	c.aim.Restore(s.aim)
}
