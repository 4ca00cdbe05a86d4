package components

import "github.com/automoto/arenabot/shared/gamemath"

// Output is the engine's command for one tick.
type Output struct {
	MoveDir   gamemath.Vec3 // unit length or zero
	MoveSpeed float64       // 0..1
	AimTarget gamemath.Vec3
	Shoot     bool
	Reload    bool
	Crouch    bool
	State     BotState
}
