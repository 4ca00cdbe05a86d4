package conductor

import (
	"math"
	"time"

	"github.com/automoto/arenabot/ai/aggression"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
)

const never = time.Duration(math.MaxInt64)

// tickContext carries values derived once per tick.
type tickContext struct {
	in         components.Input
	dt         time.Duration
	now        time.Time
	visible    bool
	threat     gamemath.Vec3
	hasThreat  bool
	health     float64
	aggression float64 // after mercy
	cover      components.Cover
	hasCover   bool
}

// Conduct runs one decision tick. It never fails; the worst case is a
// poor choice for one tick.
func (c *Conductor) Conduct(in components.Input, dt time.Duration) components.Output {
	tc := &tickContext{
		in:      in,
		dt:      dt,
		now:     in.Now,
		visible: in.Opponent.Visible,
		health:  in.HealthRatio(),
	}
	tc.threat, tc.hasThreat = in.OpponentTarget()
	if tc.visible {
		c.s.SeenOpponent = true
		c.s.LastVisibleAt = tc.now
	}

	// Aggression and mercy.
	mods := aggression.Modifiers{
		ScoreDiff:     in.ScoreDiff(),
		HealthRatio:   tc.health,
		MatchProgress: in.MatchProgress(),
		DamageDealt:   c.mercy.RecentDamageDealt(),
		DamageTaken:   c.mercy.RecentDamageTaken(),
	}
	c.s.Aggression = c.aggression.State(in.MatchElapsed(), mods)
	c.updateMercy(tc.now)
	tc.aggression = c.s.Aggression.Current * c.mercy.AggressionMultiplier()

	// State machine.
	since := never
	if c.s.SeenOpponent {
		since = tc.now.Sub(c.s.LastVisibleAt)
	}
	next := nextState(c.s.State, situation{
		Visible:      tc.visible,
		SinceVisible: since,
		Health:       tc.health,
		Aggression:   tc.aggression,
		Signature:    c.signatures.IsExecuting(),
	}, c.tuning)
	c.setState(next, tc.now)

	// Cover.
	if tc.hasThreat {
		tc.cover, tc.hasCover = c.arena.BestCover(in.Covers, in.Self.Position, tc.threat, c.tuning.CoverSearch)
	} else {
		tc.cover, tc.hasCover = c.arena.NearestCover(in.Covers, in.Self.Position, c.tuning.CoverSearch)
	}

	pattern := c.resolvePattern(tc)

	out := components.Output{State: c.s.State}
	out.MoveDir, out.MoveSpeed = c.move(pattern, tc)
	out.AimTarget, out.Shoot, out.Reload = c.aimAndFire(pattern, tc, out.MoveDir)
	out.Crouch = crouches(pattern, c.s.State)
	return out
}

func (c *Conductor) updateMercy(now time.Time) {
	st := c.mercy.Update(now)
	if st.IsActive == c.s.MercyActive {
		return
	}
	c.s.MercyActive = st.IsActive
	kind := components.NotifyMercyDeactivated
	if st.IsActive {
		kind = components.NotifyMercyActivated
	}
	c.logger.Debug("mercy changed", "active", st.IsActive, "score", st.Score)
	c.notify(components.Notification{Kind: kind, At: now})
}
