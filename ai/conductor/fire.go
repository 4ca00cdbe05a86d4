package conductor

import (
	"time"

	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
)

const lookAhead = 5.0

// aimAndFire drives the aim simulator and decides shooting and reloading.
func (c *Conductor) aimAndFire(p *tactics.Pattern, tc *tickContext, moveDir gamemath.Vec3) (gamemath.Vec3, bool, bool) {
	in := tc.in
	self := in.Self.Position

	if !tc.hasThreat {
		look := c.aim.Current()
		if !moveDir.IsZero() {
			look = self.Add(moveDir.Scale(lookAhead))
			look.Y = self.Y + c.tuning.EyeHeight
			c.aim.SetAim(look)
		}
		return look, false, c.wantsReload(in, false)
	}

	var vel gamemath.Vec3
	if tc.visible {
		vel = in.Opponent.Velocity
	}
	st := c.aim.Update(tc.dt, tc.threat, vel, c.s.State)

	reload := c.wantsReload(in, tc.visible)
	if reload || in.Self.Ammo <= 0 || !tc.visible {
		return st.Current, false, reload
	}
	if !c.arena.HasLineOfSight(c.eye(self), c.eye(in.Opponent.Position)) {
		return st.Current, false, false
	}
	return st.Current, c.triggerDown(p, tc.now.Sub(c.s.PatternStartedAt), st.OnTarget), false
}

func (c *Conductor) eye(p gamemath.Vec3) gamemath.Vec3 {
	p.Y += c.tuning.EyeHeight
	return p
}

// triggerDown applies the pattern's fire discipline at elapsed time into
// the pattern.
func (c *Conductor) triggerDown(p *tactics.Pattern, elapsed time.Duration, onTarget bool) bool {
	switch p.Shoot {
	case tactics.ShootContinuous:
		return true
	case tactics.ShootBurst:
		return onTarget && dutyOn(elapsed, c.tuning.BurstPeriod, c.tuning.BurstOn)
	case tactics.ShootTap:
		return onTarget && dutyOn(elapsed, c.tuning.TapPeriod, c.tuning.TapOn)
	}
	return false
}

func dutyOn(elapsed, period, on time.Duration) bool {
	if period <= 0 {
		return true
	}
	return elapsed%period < on
}

func (c *Conductor) wantsReload(in components.Input, visible bool) bool {
	if in.Self.MaxAmmo <= 0 {
		return false
	}
	if in.Self.Ammo <= 0 {
		return true
	}
	return !visible && in.Self.Ammo < in.Self.MaxAmmo && in.AmmoRatio() < c.tuning.ReloadBelow
}
