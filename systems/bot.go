package systems

import (
	"sort"

	"github.com/automoto/arenabot/ai/spatial"
	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/random"
	"github.com/automoto/arenabot/systems/factory"
	"github.com/automoto/arenabot/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SenseData is the arena evaluator the host uses for visibility checks.
type SenseData struct {
	*spatial.Evaluator
}

var Sense = donburi.NewComponentType[SenseData]()

// InstallSense attaches ev to the arena entry.
func InstallSense(e *ecs.ECS, ev *spatial.Evaluator) {
	entry, ok := components.Arena.First(e.World)
	if !ok {
		return
	}
	donburi.Add(entry, Sense, &SenseData{Evaluator: ev})
}

// UpdateBots builds each living bot's input snapshot, runs its brain and
// stores the command. Must run before UpdateActors and UpdateCombat.
func UpdateBots(e *ecs.ECS) {
	if !IsMatchPlaying(e) {
		return
	}
	host, ok := hostData(e.World)
	if !ok {
		return
	}
	match, _ := matchData(e.World)
	arena := arenaData(e.World)
	sense := senseOf(e.World, arena)
	tele := telemetryData(e.World)

	bots := botsBySlot(e.World)
	for _, entry := range bots {
		updateBot(e.World, entry, opponentOf(entry, bots), host, match, arena, sense)
		if tele != nil {
			bot := components.Bot.Get(entry)
			out := components.BotOutput.Get(entry)
			tele.Slot(bot.Slot).StateTime[out.State.String()] += host.Tick
		}
	}
}

func updateBot(w donburi.World, entry, opp *donburi.Entry, host *components.HostData,
	match *components.MatchData, arena *components.ArenaData, sense *spatial.Evaluator) {
	bot := components.Bot.Get(entry)
	actor := components.Actor.Get(entry)
	if actor.Dead {
		prev := components.BotOutput.Get(entry)
		components.BotOutput.SetValue(entry, components.Output{State: prev.State, AimTarget: prev.AimTarget})
		return
	}

	in := components.Input{
		Now: match.Now,
		Self: components.SelfState{
			Position:  actor.Position,
			Health:    actor.Health,
			MaxHealth: actor.MaxHealth,
			Ammo:      actor.Ammo,
			MaxAmmo:   actor.MaxAmmo,
		},
		BotScore:      match.GetPlayerScore(bot.Slot).Kills,
		TimeRemaining: match.Remaining,
		MatchDuration: match.Duration,
		Covers:        arena.Covers,
		Bounds:        arena.Bounds,
	}

	if opp != nil {
		oa := components.Actor.Get(opp)
		in.OpponentScore = match.GetPlayerScore(components.Bot.Get(opp).Slot).Kills
		in.Opponent = components.OpponentState{
			Health:    oa.Health,
			MaxHealth: oa.MaxHealth,
			Visible:   canSee(sense, actor, oa),
		}
		if in.Opponent.Visible {
			in.Opponent.Position = oa.Position
			in.Opponent.Velocity = oa.Velocity
			bot.LastSeen = components.Sighting{Position: oa.Position, At: match.Now, Known: true}
		}
	}
	in.LastSeen = bot.LastSeen

	components.BotInput.SetValue(entry, in)
	components.BotOutput.SetValue(entry, bot.Brain.Conduct(in, host.Tick))
	publishNotifications(w, entry)
}

// RespawnBot puts a bot back at pos with full health and a fresh brain.
func RespawnBot(e *ecs.ECS, entry *donburi.Entry, pos gamemath.Vec3) {
	arena := arenaData(e.World)
	actor := components.Actor.Get(entry)
	*actor = components.ActorData{
		Position:  pos,
		Aim:       actor.Aim,
		Health:    actor.MaxHealth,
		MaxHealth: actor.MaxHealth,
		Ammo:      actor.MaxAmmo,
		MaxAmmo:   actor.MaxAmmo,
	}

	obj := components.Object.Get(entry)
	x, y := factory.ToSpace(arena.Bounds, pos)
	obj.X = x - obj.W/2
	obj.Y = y - obj.H/2
	if spaceEntry, ok := components.Space.First(e.World); ok && obj.Space == nil {
		components.Space.Get(spaceEntry).Add(obj.Object)
	}
	obj.Update()

	bot := components.Bot.Get(entry)
	bot.LastSeen = components.Sighting{}
	bot.Brain.Reset()
	components.BotOutput.SetValue(entry, components.Output{State: components.StatePatrol})
}

func canSee(sense *spatial.Evaluator, viewer, target *components.ActorData) bool {
	if target.Dead {
		return false
	}
	if viewer.Position.Dist(target.Position) > cfg.Sim.ViewRange {
		return false
	}
	return sense.HasLineOfSight(eyeOf(viewer), eyeOf(target))
}

func eyeOf(a *components.ActorData) gamemath.Vec3 {
	p := a.Position
	if a.Crouching {
		p.Y += cfg.Sim.CrouchEye
	} else {
		p.Y += cfg.Sim.EyeHeight
	}
	return p
}

func botsBySlot(w donburi.World) []*donburi.Entry {
	var bots []*donburi.Entry
	tags.Bot.Each(w, func(entry *donburi.Entry) {
		bots = append(bots, entry)
	})
	sort.Slice(bots, func(i, j int) bool {
		return components.Bot.Get(bots[i]).Slot < components.Bot.Get(bots[j]).Slot
	})
	return bots
}

// opponentOf returns the first other bot; duels have exactly one.
func opponentOf(entry *donburi.Entry, bots []*donburi.Entry) *donburi.Entry {
	for _, other := range bots {
		if other.Entity() != entry.Entity() {
			return other
		}
	}
	return nil
}

// senseOf returns the installed evaluator, installing one on first use.
func senseOf(w donburi.World, arena *components.ArenaData) *spatial.Evaluator {
	entry, ok := components.Arena.First(w)
	if ok && entry.HasComponent(Sense) {
		return Sense.Get(entry).Evaluator
	}
	ev := spatial.New(arena.Bounds, arena.Obstacles, cfg.Bot.Tuning, random.Default())
	if ok {
		donburi.Add(entry, Sense, &SenseData{Evaluator: ev})
	}
	return ev
}

func telemetryData(w donburi.World) *components.TelemetryData {
	if entry, ok := components.Telemetry.First(w); ok {
		return components.Telemetry.Get(entry)
	}
	return nil
}
