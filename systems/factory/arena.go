package factory

import (
	"github.com/automoto/arenabot/archetypes"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateArena installs the map geometry: the arena singleton, the space
// and one obstacle entity per box.
func CreateArena(ecs *ecs.ECS, level *leveldata.Arena) *donburi.Entry {
	arena := archetypes.Arena.Spawn(ecs)
	components.Arena.SetValue(arena, components.ArenaData{
		Name:      level.Name,
		Bounds:    level.Bounds,
		Obstacles: level.Obstacles,
		Covers:    level.Covers,
		Spawns:    level.Spawns,
	})

	CreateSpace(ecs, level.Bounds)
	for _, box := range level.Obstacles {
		CreateObstacle(ecs, level.Bounds, box)
	}
	return arena
}
