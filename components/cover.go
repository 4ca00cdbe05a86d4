package components

import "github.com/automoto/arenabot/shared/gamemath"

// CoverHeight classifies how much of the bot a cover hides.
type CoverHeight int

const (
	CoverFull CoverHeight = iota
	CoverHalf
)

func (h CoverHeight) String() string {
	if h == CoverHalf {
		return "half"
	}
	return "full"
}

// Cover is a spot the bot can hide behind. Normal points from the cover
// toward the side it protects against.
type Cover struct {
	Position gamemath.Vec3
	Normal   gamemath.Vec3
	Height   CoverHeight
	Quality  float64 // 0..1
}
