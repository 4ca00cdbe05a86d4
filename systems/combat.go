package systems

import (
	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/random"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCombat runs weapon timers, resolves shots, handles deaths and
// respawns, and queues the resulting combat events for the brains.
func UpdateCombat(ecs *ecs.ECS) {
	if !IsMatchPlaying(ecs) {
		return
	}
	host, ok := hostData(ecs.World)
	if !ok {
		return
	}
	match, _ := matchData(ecs.World)
	arena := arenaData(ecs.World)
	sense := senseOf(ecs.World, arena)

	bots := botsBySlot(ecs.World)
	for _, entry := range bots {
		actor := components.Actor.Get(entry)
		bot := components.Bot.Get(entry)

		if actor.Dead {
			actor.RespawnLeft -= host.Tick
			if actor.RespawnLeft <= 0 {
				score := match.GetPlayerScore(bot.Slot)
				RespawnBot(ecs, entry, arena.Spawn(bot.Slot+score.Deaths))
			}
			continue
		}

		out := components.BotOutput.Get(entry)
		tickWeapon(actor, out, host)
		if !out.Shoot || actor.Ammo <= 0 || actor.Reloading() || actor.FireCooldown > 0 {
			continue
		}

		actor.Ammo--
		actor.FireCooldown = cfg.Sim.FireInterval
		match.GetPlayerScore(bot.Slot).ShotsFired++

		target := opponentOf(entry, bots)
		if target == nil {
			continue
		}
		ta := components.Actor.Get(target)
		hit := !ta.Dead && canSee(sense, actor, ta) &&
			random.Chance(host.Rand, hitChance(actor.Aim, ta))
		resolveShot(ecs, match, entry, target, hit)
	}
}

func tickWeapon(actor *components.ActorData, out *components.Output, host *components.HostData) {
	if actor.FireCooldown > 0 {
		actor.FireCooldown = max(0, actor.FireCooldown-host.Tick)
	}
	if actor.Reloading() {
		actor.ReloadLeft -= host.Tick
		if actor.ReloadLeft <= 0 {
			actor.ReloadLeft = 0
			actor.Ammo = actor.MaxAmmo
		}
		return
	}
	if out.Reload && actor.Ammo < actor.MaxAmmo {
		actor.ReloadLeft = cfg.Sim.ReloadTime
	}
}

// hitChance falls off linearly with the ground distance between the aim
// point and the target.
func hitChance(aim gamemath.Vec3, target *components.ActorData) float64 {
	miss := aim.Flat().Dist(target.Position.Flat())
	chance := gamemath.Clamp01(1 - miss/cfg.Sim.HitRadius)
	if target.Crouching {
		chance *= cfg.Sim.CrouchExposure
	}
	return chance
}

func resolveShot(ecs *ecs.ECS, match *components.MatchData, shooter, target *donburi.Entry, hit bool) {
	now := match.Now
	w := ecs.World
	if !hit {
		CombatResolved.Publish(w, CombatResolvedEvent{Bot: shooter.Entity(), Event: components.CombatEvent{Kind: components.BotMissed, At: now}})
		CombatResolved.Publish(w, CombatResolvedEvent{Bot: target.Entity(), Event: components.CombatEvent{Kind: components.PlayerMissed, At: now}})
		return
	}

	shooterSlot := components.Bot.Get(shooter).Slot
	targetSlot := components.Bot.Get(target).Slot
	match.GetPlayerScore(shooterSlot).Hits++

	ta := components.Actor.Get(target)
	damage := min(cfg.Sim.Damage, ta.Health)
	ta.Health -= damage
	CombatResolved.Publish(w, CombatResolvedEvent{Bot: shooter.Entity(), Event: components.CombatEvent{Kind: components.BotHitPlayer, At: now, Damage: damage}})
	CombatResolved.Publish(w, CombatResolvedEvent{Bot: target.Entity(), Event: components.CombatEvent{Kind: components.PlayerHitBot, At: now, Damage: damage}})

	if ta.Health > 0 {
		return
	}
	killBot(ecs, target)
	match.AddKill(shooterSlot, targetSlot)
	CombatResolved.Publish(w, CombatResolvedEvent{Bot: shooter.Entity(), Event: components.CombatEvent{Kind: components.BotKilledPlayer, At: now}})
	CombatResolved.Publish(w, CombatResolvedEvent{Bot: target.Entity(), Event: components.CombatEvent{Kind: components.PlayerKilledBot, At: now}})

	if host, ok := hostData(w); ok {
		host.Logger.Info("kill",
			"killer", components.Bot.Get(shooter).Name,
			"victim", components.Bot.Get(target).Name,
			"score", match.GetPlayerScore(shooterSlot).Kills)
	}
}

func killBot(ecs *ecs.ECS, entry *donburi.Entry) {
	actor := components.Actor.Get(entry)
	actor.Health = 0
	actor.Dead = true
	actor.Velocity = gamemath.Vec3{}
	actor.ReloadLeft = 0
	actor.RespawnLeft = cfg.Sim.RespawnDelay

	obj := components.Object.Get(entry)
	if spaceEntry, ok := components.Space.First(ecs.World); ok && obj.Space != nil {
		components.Space.Get(spaceEntry).Remove(obj.Object)
	}
}
