// Package spatial answers geometric questions about the arena: where the
// cover is, how exposed a spot is, where to fall back or flank to, and how
// to walk there.
package spatial

import (
	"math"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/random"
)

const (
	nearCoverDistance = 3.0
	boundaryDanger    = 2.0
	threatFar         = 20.0
	threatClose       = 5.0
	flankForward      = 0.3
)

// Safety is the result of evaluating one position against one threat.
type Safety struct {
	Score        float64 // 0 (exposed) .. 1 (safe)
	NearCover    bool
	Exposed      bool // the threat has line of sight
	NearBoundary bool
	ThreatClose  bool
	ThreatFar    bool
}

// Evaluator holds the static arena geometry.
type Evaluator struct {
	bounds    gamemath.Bounds
	obstacles []gamemath.AABB
	tuning    config.Tuning
	rng       random.Source
	grid      *NavGrid
}

func New(bounds gamemath.Bounds, obstacles []gamemath.AABB, t config.Tuning, rng random.Source) *Evaluator {
	e := &Evaluator{
		bounds:    bounds,
		obstacles: append([]gamemath.AABB(nil), obstacles...),
		tuning:    t,
		rng:       rng,
	}
	if !bounds.IsZero() {
		e.grid = NewNavGrid(bounds, obstacles, t.NavCellSize)
	}
	return e
}

func (e *Evaluator) Bounds() gamemath.Bounds { return e.bounds }

func (e *Evaluator) Obstacles() []gamemath.AABB { return e.obstacles }

// Grid is the navigation grid, nil for an unbounded arena.
func (e *Evaluator) Grid() *NavGrid { return e.grid }

// HasLineOfSight reports whether the segment from a to b clears every
// obstacle.
func (e *Evaluator) HasLineOfSight(a, b gamemath.Vec3) bool {
	for _, o := range e.obstacles {
		if gamemath.SegmentIntersectsBox(a, b, o) {
			return false
		}
	}
	return true
}

func (e *Evaluator) eye(p gamemath.Vec3) gamemath.Vec3 {
	p.Y += e.tuning.EyeHeight
	return p
}

// NearestCover returns the closest cover within maxDist of pos.
func (e *Evaluator) NearestCover(covers []components.Cover, pos gamemath.Vec3, maxDist float64) (components.Cover, bool) {
	var (
		best  components.Cover
		bestD = math.Inf(1)
	)
	for _, c := range covers {
		d := pos.Flat().Dist(c.Position.Flat())
		if d <= maxDist && d < bestD {
			best, bestD = c, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

// CoverScore rates c for a bot at bot hiding from threat.
func (e *Evaluator) CoverScore(c components.Cover, bot, threat gamemath.Vec3, maxDist float64) float64 {
	score := c.Quality * 0.4
	toThreat := threat.Sub(c.Position).Flat().Normalize()
	score += 0.3 * max(0, c.Normal.Flat().Normalize().Dot(toThreat))
	if maxDist > 0 {
		score += 0.2 * gamemath.Clamp01(1-bot.Flat().Dist(c.Position.Flat())/maxDist)
	}
	if c.Height == components.CoverFull {
		score += 0.1
	}
	return score
}

// BestCover returns the highest scoring cover within maxDist of bot.
func (e *Evaluator) BestCover(covers []components.Cover, bot, threat gamemath.Vec3, maxDist float64) (components.Cover, bool) {
	var (
		best      components.Cover
		bestScore = -1.0
	)
	for _, c := range covers {
		if bot.Flat().Dist(c.Position.Flat()) > maxDist {
			continue
		}
		if s := e.CoverScore(c, bot, threat, maxDist); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore >= 0
}

// Safety scores how safe pos is from a threat at threat.
func (e *Evaluator) Safety(covers []components.Cover, pos, threat gamemath.Vec3) Safety {
	s := Safety{Score: 0.5}

	if c, ok := e.NearestCover(covers, pos, nearCoverDistance); ok {
		s.NearCover = true
		closeness := 1 - pos.Flat().Dist(c.Position.Flat())/nearCoverDistance
		s.Score += 0.2 * closeness
	}

	if e.HasLineOfSight(e.eye(threat), e.eye(pos)) {
		s.Exposed = true
		s.Score -= 0.25
	} else {
		s.Score += 0.15
	}

	if !e.bounds.IsZero() && e.bounds.EdgeDistance(pos) < boundaryDanger {
		s.NearBoundary = true
		s.Score -= 0.15
	}

	switch d := pos.Flat().Dist(threat.Flat()); {
	case d > threatFar:
		s.ThreatFar = true
		s.Score += 0.1
	case d < threatClose:
		s.ThreatClose = true
		s.Score -= 0.15
	}

	s.Score = gamemath.Clamp01(s.Score)
	return s
}

// InCover reports whether pos is tucked behind something relative to threat:
// either next to a cover facing the threat, or out of its line of sight.
func (e *Evaluator) InCover(covers []components.Cover, pos, threat gamemath.Vec3) bool {
	if c, ok := e.NearestCover(covers, pos, e.tuning.CoverRadius); ok {
		toThreat := threat.Sub(c.Position).Flat().Normalize()
		if c.Normal.Flat().Normalize().Dot(toThreat) > 0 {
			return true
		}
	}
	return !e.HasLineOfSight(e.eye(threat), e.eye(pos))
}

// RetreatPosition is a point directly away from the threat, kept inside the
// arena.
func (e *Evaluator) RetreatPosition(bot, threat gamemath.Vec3) gamemath.Vec3 {
	away := bot.Sub(threat).Flat().Normalize()
	if away.IsZero() {
		away = gamemath.Vec3{X: 1}
	}
	p := bot.Add(away.Scale(e.tuning.RetreatDistance))
	return e.bounds.Clamp(p, e.tuning.BoundaryMargin)
}

// FlankPosition is a point off to one side of the threat line, slightly
// forward. The side is picked at random.
func (e *Evaluator) FlankPosition(bot, threat gamemath.Vec3) gamemath.Vec3 {
	toward := threat.Sub(bot).Flat().Normalize()
	if toward.IsZero() {
		toward = gamemath.Vec3{Z: 1}
	}
	side := 1.0
	if random.Chance(e.rng, 0.5) {
		side = -1
	}
	dir := toward.Perp().Scale(side).Add(toward.Scale(flankForward)).Normalize()
	p := bot.Add(dir.Scale(e.tuning.FlankDistance))
	return e.bounds.Clamp(p, e.tuning.BoundaryMargin)
}

// FindPath returns waypoints from from to to. An unbounded arena always
// walks straight. Nil means no route.
func (e *Evaluator) FindPath(from, to gamemath.Vec3) []gamemath.Vec3 {
	if e.grid == nil {
		return []gamemath.Vec3{to}
	}
	return e.grid.FindPath(from, to)
}
