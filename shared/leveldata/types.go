// Package leveldata parses arena maps from Tiled TMX files into plain
// geometry. One tile is one world unit; Tiled's Y axis becomes world Z.
package leveldata

import (
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
)

const (
	DefaultWallHeight     = 3.0
	DefaultObstacleHeight = 2.0
	DefaultCoverQuality   = 0.5
)

// Arena holds everything the engine and the host need from a map.
type Arena struct {
	Name      string
	Bounds    gamemath.Bounds
	Obstacles []gamemath.AABB
	Covers    []components.Cover
	Spawns    []gamemath.Vec3
	MapWidth  int // pixels
	MapHeight int
}

// Default is the built-in duel arena used when no map is given: a 30x30
// room with a central pillar and four low walls.
func Default() *Arena {
	box := func(x0, z0, x1, z1, h float64) gamemath.AABB {
		return gamemath.AABB{Min: gamemath.V3(x0, 0, z0), Max: gamemath.V3(x1, h, z1)}
	}
	cover := func(x, z, nx, nz float64, h components.CoverHeight, q float64) components.Cover {
		return components.Cover{Position: gamemath.V3(x, 0, z), Normal: gamemath.V3(nx, 0, nz), Height: h, Quality: q}
	}
	return &Arena{
		Name:   "default",
		Bounds: gamemath.Bounds{MinX: 0, MinZ: 0, MaxX: 30, MaxZ: 30},
		Obstacles: []gamemath.AABB{
			box(13, 13, 17, 17, DefaultWallHeight),
			box(6, 9, 10, 10, 1.0),
			box(20, 20, 24, 21, 1.0),
			box(9, 20, 10, 24, DefaultObstacleHeight),
			box(20, 6, 21, 10, DefaultObstacleHeight),
		},
		Covers: []components.Cover{
			cover(8, 8.5, 0, 1, components.CoverHalf, 0.6),
			cover(22, 21.5, 0, -1, components.CoverHalf, 0.6),
			cover(8.5, 22, 1, 0, components.CoverFull, 0.8),
			cover(21.5, 8, -1, 0, components.CoverFull, 0.8),
			cover(12.5, 15, 1, 0, components.CoverFull, 0.9),
			cover(17.5, 15, -1, 0, components.CoverFull, 0.9),
		},
		Spawns:    []gamemath.Vec3{gamemath.V3(3, 0, 3), gamemath.V3(27, 0, 27)},
		MapWidth:  30 * 16,
		MapHeight: 30 * 16,
	}
}
