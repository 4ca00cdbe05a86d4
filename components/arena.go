package components

import (
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ArenaData is the static geometry of the loaded map.
type ArenaData struct {
	Name      string
	Bounds    gamemath.Bounds
	Obstacles []gamemath.AABB
	Covers    []Cover
	Spawns    []gamemath.Vec3
}

// Spawn returns spawn point i, wrapping around. An arena without spawns
// spawns at its center.
func (a *ArenaData) Spawn(i int) gamemath.Vec3 {
	if len(a.Spawns) == 0 {
		return a.Bounds.Center()
	}
	if i < 0 {
		i = -i
	}
	return a.Spawns[i%len(a.Spawns)]
}

var Arena = donburi.NewComponentType[ArenaData]()
