package gamemath

import "math"

// AABB is an axis-aligned box used for static arena obstacles.
type AABB struct {
	Min, Max Vec3
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// SegmentIntersectsBox runs the slab test for the segment from a to b.
func SegmentIntersectsBox(a, b Vec3, box AABB) bool {
	dir := b.Sub(a)
	tMin, tMax := 0.0, 1.0

	origin := [3]float64{a.X, a.Y, a.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < 1e-12 {
			// Parallel to this slab: miss unless the origin is inside it.
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return false
			}
			continue
		}
		inv := 1 / d[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
