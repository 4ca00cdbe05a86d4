package factory

import (
	"math"

	"github.com/automoto/arenabot/archetypes"
	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const spaceCell = 16

func CreateSpace(ecs *ecs.ECS, bounds gamemath.Bounds) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	width := int(math.Ceil(bounds.Width() * cfg.Sim.UnitPixels))
	height := int(math.Ceil(bounds.Depth() * cfg.Sim.UnitPixels))
	spaceData := resolv.NewSpace(width, height, spaceCell, spaceCell)
	components.Space.Set(space, spaceData)
	return space
}

// ToSpace maps a ground-plane position to resolv pixel coordinates.
func ToSpace(b gamemath.Bounds, p gamemath.Vec3) (x, y float64) {
	return (p.X - b.MinX) * cfg.Sim.UnitPixels, (p.Z - b.MinZ) * cfg.Sim.UnitPixels
}

// FromSpace is the inverse of ToSpace on the ground plane.
func FromSpace(b gamemath.Bounds, x, y float64) gamemath.Vec3 {
	return gamemath.V3(b.MinX+x/cfg.Sim.UnitPixels, 0, b.MinZ+y/cfg.Sim.UnitPixels)
}
