// Package sim runs headless bot-versus-bot duels on a donburi world.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/automoto/arenabot/ai/conductor"
	"github.com/automoto/arenabot/ai/spatial"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/leveldata"
	"github.com/automoto/arenabot/shared/random"
	"github.com/automoto/arenabot/systems"
	"github.com/automoto/arenabot/systems/factory"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Options configures one duel.
type Options struct {
	Personalities [2]string
	Difficulty    config.BotDifficulty
	Bots          config.BotConfigData // zero value: config.Bot
	Arena         *leveldata.Arena     // nil: leveldata.Default()
	Duration      time.Duration        // zero: config.Sim.MatchDuration
	Tick          time.Duration        // zero: config.Sim.Tick
	Seed          uint64
	Round         int
	Start         time.Time // zero: a fixed epoch so seeded runs replay exactly
	Logger        *log.Logger
}

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Duel is one match between two conductors.
type Duel struct {
	ecs   *ecs.ECS
	bots  [2]*donburi.Entry
	brain [2]*conductor.Conductor
	ticks int
}

func New(opts Options) (*Duel, error) {
	if opts.Bots.Personalities == nil {
		opts.Bots = config.Bot
	}
	if opts.Arena == nil {
		opts.Arena = leveldata.Default()
	}
	if opts.Duration <= 0 {
		opts.Duration = config.Sim.MatchDuration
	}
	if opts.Tick <= 0 {
		opts.Tick = config.Sim.Tick
	}
	if opts.Start.IsZero() {
		opts.Start = epoch
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	var errs []error
	var personalities [2]config.Personality
	for i, id := range opts.Personalities {
		p, err := opts.Bots.Personality(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("sim: slot %d: %w", i, err))
		}
		personalities[i] = p
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	world := donburi.NewWorld()
	e := ecs.NewECS(world)
	systems.InitBotEvents(world)

	factory.CreateHost(e, opts.Tick, random.New(opts.Seed), opts.Logger)
	factory.CreateArena(e, opts.Arena)
	match := factory.CreateMatch(e, opts.Arena.Name, opts.Round, opts.Start, opts.Duration)
	tuning := opts.Bots.Tuning
	systems.InstallSense(e, spatial.New(opts.Arena.Bounds, opts.Arena.Obstacles, tuning, random.New(opts.Seed)))

	d := &Duel{ecs: e}
	difficulty := opts.Bots.Difficulty(opts.Difficulty)
	for slot, p := range personalities {
		rng := random.New(opts.Seed + uint64(slot) + 1)
		brain := conductor.New(conductor.Config{
			Personality: p,
			Difficulty:  difficulty,
			Tuning:      tuning,
			Arena:       spatial.New(opts.Arena.Bounds, opts.Arena.Obstacles, tuning, rng),
			Rand:        rng,
			Logger:      opts.Logger,
		})
		name := fmt.Sprintf("%s#%d", p.ID, slot+1)
		d.brain[slot] = brain
		d.bots[slot] = factory.CreateBot(e, slot, name, p.ID, brain, opts.Arena.Spawn(slot))
		components.Match.Get(match).GetPlayerScore(slot).Name = name
	}

	e.AddSystem(systems.UpdateMatch)
	e.AddSystem(systems.UpdateBots)
	e.AddSystem(systems.UpdateActors)
	e.AddSystem(systems.UpdateCombat)
	e.AddSystem(systems.ProcessBotEvents)

	opts.Logger.Info("duel ready",
		"match", components.Match.Get(match).ID,
		"map", opts.Arena.Name,
		"p1", personalities[0].ID, "p2", personalities[1].ID,
		"difficulty", opts.Difficulty, "seed", opts.Seed)
	return d, nil
}

// Step advances one tick. It reports false once the match is over.
func (d *Duel) Step() bool {
	if !systems.IsMatchPlaying(d.ecs) {
		return false
	}
	d.ecs.Update()
	d.ticks++
	return systems.IsMatchPlaying(d.ecs)
}

// Ticks is the number of ticks run so far.
func (d *Duel) Ticks() int { return d.ticks }

// Summary reports the scoreboard and telemetry so far.
func (d *Duel) Summary() systems.MatchSummary {
	return systems.Summarize(d.ecs)
}

// Brain returns the conductor in slot.
func (d *Duel) Brain(slot int) *conductor.Conductor { return d.brain[slot] }

// Actor returns the simulated body in slot.
func (d *Duel) Actor(slot int) components.ActorData {
	return *components.Actor.Get(d.bots[slot])
}

// Command returns the latest output of the bot in slot.
func (d *Duel) Command(slot int) components.Output {
	return *components.BotOutput.Get(d.bots[slot])
}

// World exposes the ECS world for inspection.
func (d *Duel) World() donburi.World { return d.ecs.World }
