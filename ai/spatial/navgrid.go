package spatial

import (
	"math"

	astar "github.com/beefsack/go-astar"
	"github.com/solarlune/resolv"

	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/tags"
)

const cellPixels = 16

// NavGrid is the walkable ground plane of an arena.
type NavGrid struct {
	Width, Depth int
	CellSize     float64
	Origin       gamemath.Vec3 // world position of cell (0, 0)
	Nodes        [][]*NavNode
}

// NavNode is a single grid cell. Implements astar.Pather.
type NavNode struct {
	X, Z     int
	Walkable bool
	Grid     *NavGrid
}

var neighborDirs = []struct{ dx, dz int }{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func (n *NavNode) PathNeighbors() []astar.Pather {
	var out []astar.Pather
	g := n.Grid
	for _, d := range neighborDirs {
		nx, nz := n.X+d.dx, n.Z+d.dz
		if !g.walkable(nx, nz) {
			continue
		}
		// No cutting corners around obstacles.
		if d.dx != 0 && d.dz != 0 && (!g.walkable(n.X+d.dx, n.Z) || !g.walkable(n.X, n.Z+d.dz)) {
			continue
		}
		out = append(out, g.Nodes[nz][nx])
	}
	return out
}

func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	t := to.(*NavNode)
	return math.Hypot(float64(t.X-n.X), float64(t.Z-n.Z))
}

func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	t := to.(*NavNode)
	return math.Hypot(float64(t.X-n.X), float64(t.Z-n.Z))
}

func (g *NavGrid) walkable(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Depth && g.Nodes[z][x].Walkable
}

// NewNavGrid rasterizes obstacle footprints inside bounds. Each footprint is
// added to a resolv space and every cell is probed against it.
func NewNavGrid(bounds gamemath.Bounds, obstacles []gamemath.AABB, cellSize float64) *NavGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	w := max(1, int(math.Ceil(bounds.Width()/cellSize)))
	d := max(1, int(math.Ceil(bounds.Depth()/cellSize)))

	grid := &NavGrid{
		Width:    w,
		Depth:    d,
		CellSize: cellSize,
		Origin:   gamemath.Vec3{X: bounds.MinX, Z: bounds.MinZ},
		Nodes:    make([][]*NavNode, d),
	}
	for z := 0; z < d; z++ {
		grid.Nodes[z] = make([]*NavNode, w)
		for x := 0; x < w; x++ {
			grid.Nodes[z][x] = &NavNode{X: x, Z: z, Walkable: true, Grid: grid}
		}
	}

	// Space coordinates are cellPixels per nav cell; each probe sits
	// inside exactly one space cell.
	scale := cellPixels / cellSize
	space := resolv.NewSpace(w*cellPixels, d*cellPixels, cellPixels, cellPixels)
	for _, o := range obstacles {
		minX, minZ := max(o.Min.X, bounds.MinX), max(o.Min.Z, bounds.MinZ)
		maxX, maxZ := min(o.Max.X, bounds.MaxX), min(o.Max.Z, bounds.MaxZ)
		if maxX <= minX || maxZ <= minZ {
			continue
		}
		space.Add(resolv.NewObject(
			(minX-bounds.MinX)*scale, (minZ-bounds.MinZ)*scale,
			(maxX-minX)*scale, (maxZ-minZ)*scale,
			tags.ResolvSolid,
		))
	}

	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			probe := resolv.NewObject(
				float64(x*cellPixels+2), float64(z*cellPixels+2),
				cellPixels-4, cellPixels-4,
			)
			space.Add(probe)
			if probe.Check(0, 0, tags.ResolvSolid) != nil {
				grid.Nodes[z][x].Walkable = false
			}
			space.Remove(probe)
		}
	}
	return grid
}

// Cell maps a world position to grid coordinates, clamped to the grid.
func (g *NavGrid) Cell(p gamemath.Vec3) (int, int) {
	x := int(math.Floor((p.X - g.Origin.X) / g.CellSize))
	z := int(math.Floor((p.Z - g.Origin.Z) / g.CellSize))
	return max(0, min(g.Width-1, x)), max(0, min(g.Depth-1, z))
}

// CellCenter is the world position of the middle of cell (x, z).
func (g *NavGrid) CellCenter(x, z int) gamemath.Vec3 {
	return gamemath.Vec3{
		X: g.Origin.X + (float64(x)+0.5)*g.CellSize,
		Z: g.Origin.Z + (float64(z)+0.5)*g.CellSize,
	}
}

// Walkable reports whether the cell containing p is free.
func (g *NavGrid) Walkable(p gamemath.Vec3) bool {
	x, z := g.Cell(p)
	return g.Nodes[z][x].Walkable
}

func (g *NavGrid) nearestWalkable(x, z int) *NavNode {
	if g.walkable(x, z) {
		return g.Nodes[z][x]
	}
	for radius := 1; radius < max(g.Width, g.Depth); radius++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if g.walkable(x+dx, z+dz) {
					return g.Nodes[z+dz][x+dx]
				}
			}
		}
	}
	return nil
}

// FindPath runs A* between two world positions and returns the cell
// centers to walk through, ending at to. It returns nil when no route
// exists.
func (g *NavGrid) FindPath(from, to gamemath.Vec3) []gamemath.Vec3 {
	start := g.nearestWalkable(g.Cell(from))
	goal := g.nearestWalkable(g.Cell(to))
	if start == nil || goal == nil {
		return nil
	}
	if start == goal {
		return []gamemath.Vec3{to}
	}

	path, _, found := astar.Path(start, goal)
	if !found {
		return nil
	}

	// astar.Path returns goal first.
	out := make([]gamemath.Vec3, 0, len(path))
	for i := len(path) - 2; i >= 0; i-- {
		n := path[i].(*NavNode)
		p := g.CellCenter(n.X, n.Z)
		p.Y = from.Y
		out = append(out, p)
	}
	if g.Walkable(to) {
		out[len(out)-1] = to
	}
	return out
}
