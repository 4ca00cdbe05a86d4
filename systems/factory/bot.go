package factory

import (
	"github.com/automoto/arenabot/archetypes"
	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBot spawns a combatant driven by brain at pos.
func CreateBot(ecs *ecs.ECS, slot int, name, personality string, brain components.Brain, pos gamemath.Vec3) *donburi.Entry {
	bot := archetypes.Bot.Spawn(ecs)

	bounds := gamemath.Bounds{}
	if arenaEntry, ok := components.Arena.First(ecs.World); ok {
		bounds = components.Arena.Get(arenaEntry).Bounds
	}

	size := cfg.Sim.BodyWidth * cfg.Sim.UnitPixels
	x, y := ToSpace(bounds, pos)
	obj := resolv.NewObject(x-size/2, y-size/2, size, size)
	obj.AddTags(tags.ResolvBot)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = bot
	components.Object.SetValue(bot, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	components.Bot.SetValue(bot, components.BotData{
		Brain:       brain,
		Name:        name,
		Personality: personality,
		Slot:        slot,
	})
	components.Actor.SetValue(bot, components.ActorData{
		Position:  pos,
		Health:    cfg.Sim.MaxHealth,
		MaxHealth: cfg.Sim.MaxHealth,
		Ammo:      cfg.Sim.MagazineSize,
		MaxAmmo:   cfg.Sim.MagazineSize,
	})
	components.BotOutput.SetValue(bot, components.Output{State: components.StatePatrol})

	return bot
}
