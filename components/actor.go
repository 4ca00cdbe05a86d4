package components

import (
	"time"

	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ActorData is the simulated body of a combatant. Position is the feet,
// on the ground plane.
type ActorData struct {
	Position gamemath.Vec3
	Velocity gamemath.Vec3
	Aim      gamemath.Vec3

	Health    float64
	MaxHealth float64
	Ammo      int
	MaxAmmo   int

	Crouching    bool
	FireCooldown time.Duration
	ReloadLeft   time.Duration
	RespawnLeft  time.Duration
	Dead         bool
}

func (a *ActorData) Reloading() bool { return a.ReloadLeft > 0 }

var Actor = donburi.NewComponentType[ActorData]()
