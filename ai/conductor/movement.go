package conductor

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
)

// move turns the running pattern into a direction and speed.
func (c *Conductor) move(p *tactics.Pattern, tc *tickContext) (gamemath.Vec3, float64) {
	self := tc.in.Self.Position
	if !tc.hasThreat {
		return c.patrol(self, tc)
	}

	toward := tc.threat.Sub(self).Flat()
	dist := toward.Len()
	toward = toward.Normalize()
	lateral := toward.Perp().Scale(c.s.Side)
	speed := p.Speed
	elapsed := tc.now.Sub(c.s.PatternStartedAt)
	progress := 0.0
	if p.Duration > 0 {
		progress = gamemath.Clamp01(float64(elapsed) / float64(p.Duration))
	}

	var dir gamemath.Vec3
	switch p.Type {
	case tactics.Push:
		dir = toward
		if dist < c.tuning.StopDistance {
			speed *= dist / c.tuning.StopDistance
		}
	case tactics.Strafe:
		dir = lateral
	case tactics.Peek:
		dir = lateral
		if progress >= 0.5 {
			dir = lateral.Scale(-1)
		}
	case tactics.Retreat:
		if c.s.HasGoal {
			dir = c.travel(self, c.s.Goal)
		} else {
			dir = toward.Scale(-1)
		}
	case tactics.Hold:
		if c.s.HasGoal {
			dir = c.travel(self, c.s.Goal)
		}
	case tactics.Flank:
		if c.s.HasGoal {
			dir = c.travel(self, c.s.Goal)
		} else {
			dir = lateral
		}
	}
	if dir.IsZero() || speed <= 0 {
		return gamemath.Vec3{}, 0
	}

	dir = c.shape(p, dir, elapsed.Seconds(), progress)
	dir = c.keepInside(self, dir)
	if dir.IsZero() {
		return gamemath.Vec3{}, 0
	}
	return dir, gamemath.Clamp01(speed)
}

// shape applies the pattern's path modulation to a base direction.
func (c *Conductor) shape(p *tactics.Pattern, dir gamemath.Vec3, elapsed, progress float64) gamemath.Vec3 {
	lateral := dir.Perp()
	switch p.Path {
	case tactics.PathZigzag:
		period := c.tuning.ZigzagPeriod.Seconds()
		sign := 1.0
		if period > 0 && int(elapsed/period)%2 == 1 {
			sign = -1
		}
		return dir.Add(lateral.Scale(sign * c.tuning.ZigzagWeight)).Normalize()
	case tactics.PathArc:
		eased := float64(ease.InOutQuad(float32(progress), 0, 1, 1))
		bump := math.Sin(math.Pi * eased)
		return dir.Add(lateral.Scale(c.s.Side * bump * c.tuning.ArcWeight)).Normalize()
	}
	return dir
}

// keepInside strips the part of dir that would carry the bot past the
// arena margin.
func (c *Conductor) keepInside(self, dir gamemath.Vec3) gamemath.Vec3 {
	b := c.arena.Bounds()
	if b.IsZero() {
		return dir
	}
	next := b.Clamp(self.Add(dir), c.tuning.BoundaryMargin)
	return next.Sub(self).Flat().Normalize()
}

// travel steers toward goal along an A* path, replanning only when the
// goal moves. An unreachable goal is not searched again until it moves. It
// returns zero once the goal is reached.
func (c *Conductor) travel(self, goal gamemath.Vec3) gamemath.Vec3 {
	s := &c.s
	arrive := c.tuning.ArrivalRadius
	if self.Flat().Dist(goal.Flat()) <= arrive {
		return gamemath.Vec3{}
	}
	if !s.PathPlanned || s.PathGoal.Flat().Dist(goal.Flat()) > arrive {
		s.Path = c.arena.FindPath(self, goal)
		s.PathGoal = goal
		s.PathIndex = 0
		s.PathPlanned = true
	}
	for s.PathIndex < len(s.Path) && self.Flat().Dist(s.Path[s.PathIndex].Flat()) <= arrive {
		s.PathIndex++
	}
	if s.PathIndex >= len(s.Path) {
		return goal.Sub(self).Flat().Normalize()
	}
	return s.Path[s.PathIndex].Sub(self).Flat().Normalize()
}

// patrol wanders toward the last sighting, or a random point in the arena.
func (c *Conductor) patrol(self gamemath.Vec3, tc *tickContext) (gamemath.Vec3, float64) {
	s := &c.s
	b := c.arena.Bounds()
	if !s.HasPatrolGoal || self.Flat().Dist(s.PatrolGoal.Flat()) <= c.tuning.ArrivalRadius {
		if b.IsZero() {
			return gamemath.Vec3{}, 0
		}
		s.PatrolGoal = b.Clamp(gamemath.Vec3{
			X: b.MinX + c.rng.Float64()*b.Width(),
			Z: b.MinZ + c.rng.Float64()*b.Depth(),
		}, c.tuning.BoundaryMargin)
		s.HasPatrolGoal = true
	}
	dir := c.keepInside(self, c.travel(self, s.PatrolGoal))
	if dir.IsZero() {
		return gamemath.Vec3{}, 0
	}
	return dir, 0.6
}

func crouches(p *tactics.Pattern, state components.BotState) bool {
	if state == components.StateRetreat || p.Type == tactics.Retreat {
		return false
	}
	return p.Crouch || p.Type == tactics.Hold
}
