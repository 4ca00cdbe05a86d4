package systems

import (
	"math"

	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/systems/factory"
	"github.com/automoto/arenabot/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateActors applies each bot's movement command, sliding along
// obstacles and other bots one axis at a time.
func UpdateActors(e *ecs.ECS) {
	if !IsMatchPlaying(e) {
		return
	}
	host, ok := hostData(e.World)
	if !ok {
		return
	}
	arena := arenaData(e.World)
	dt := host.Tick.Seconds()

	tags.Bot.Each(e.World, func(entry *donburi.Entry) {
		actor := components.Actor.Get(entry)
		if actor.Dead {
			actor.Velocity = gamemath.Vec3{}
			return
		}
		out := components.BotOutput.Get(entry)
		obj := components.Object.Get(entry)

		actor.Crouching = out.Crouch
		actor.Aim = out.AimTarget

		speed := cfg.Sim.MoveSpeed * gamemath.Clamp01(out.MoveSpeed)
		if actor.Crouching {
			speed *= cfg.Sim.CrouchSpeed
		}
		step := out.MoveDir.Flat().Normalize().Scale(speed * dt)

		before := actor.Position
		moveObject(obj.Object, arena.Bounds, step)
		actor.Position = factory.FromSpace(arena.Bounds, obj.X+obj.W/2, obj.Y+obj.H/2)
		if dt > 0 {
			actor.Velocity = actor.Position.Sub(before).Scale(1 / dt)
		}
	})
}

func moveObject(obj *resolv.Object, bounds gamemath.Bounds, step gamemath.Vec3) {
	dx := step.X * cfg.Sim.UnitPixels
	dy := step.Z * cfg.Sim.UnitPixels
	maxX := bounds.Width()*cfg.Sim.UnitPixels - obj.W
	maxY := bounds.Depth()*cfg.Sim.UnitPixels - obj.H

	if dx != 0 {
		dx = gamemath.Clamp(obj.X+dx, 0, math.Max(0, maxX)) - obj.X
		if obj.Check(dx, 0, tags.ResolvSolid, tags.ResolvBot) == nil {
			obj.X += dx
		}
	}
	if dy != 0 {
		dy = gamemath.Clamp(obj.Y+dy, 0, math.Max(0, maxY)) - obj.Y
		if obj.Check(0, dy, tags.ResolvSolid, tags.ResolvBot) == nil {
			obj.Y += dy
		}
	}
	obj.Update()
}
