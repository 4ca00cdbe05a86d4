package gamemath

// Bounds is the playable ground-plane rectangle of an arena.
type Bounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Depth() float64 {
	return b.MaxZ - b.MinZ
}

func (b Bounds) Center() Vec3 {
	return Vec3{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}
}

// IsZero reports whether the bounds were never set.
func (b Bounds) IsZero() bool {
	return b.MinX == 0 && b.MinZ == 0 && b.MaxX == 0 && b.MaxZ == 0
}

// Clamp pulls p inside the bounds, keeping margin units away from every edge.
// The vertical component is preserved.
func (b Bounds) Clamp(p Vec3, margin float64) Vec3 {
	if b.IsZero() {
		return p
	}
	return Vec3{
		X: Clamp(p.X, b.MinX+margin, b.MaxX-margin),
		Y: p.Y,
		Z: Clamp(p.Z, b.MinZ+margin, b.MaxZ-margin),
	}
}

// EdgeDistance returns the distance from p to the closest edge.
func (b Bounds) EdgeDistance(p Vec3) float64 {
	return min(p.X-b.MinX, b.MaxX-p.X, p.Z-b.MinZ, b.MaxZ-p.Z)
}
