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

// CreateObstacle adds the ground footprint of box to the space.
func CreateObstacle(ecs *ecs.ECS, bounds gamemath.Bounds, box gamemath.AABB) *donburi.Entry {
	obstacle := archetypes.Obstacle.Spawn(ecs)

	x, y := ToSpace(bounds, box.Min)
	w := (box.Max.X - box.Min.X) * cfg.Sim.UnitPixels
	h := (box.Max.Z - box.Min.Z) * cfg.Sim.UnitPixels

	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = obstacle

	components.Object.SetValue(obstacle, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return obstacle
}
