package archetypes

import (
	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Bot = newArchetype(
		tags.Bot,
		components.Bot,
		components.BotInput,
		components.BotOutput,
		components.Actor,
		components.Object,
	)
	Obstacle = newArchetype(
		tags.Obstacle,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Arena = newArchetype(
		components.Arena,
	)
	Match = newArchetype(
		components.Match,
		components.Telemetry,
	)
	Host = newArchetype(
		components.Host,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
