package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Point3
	Max core.Point3
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Point3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}
	return AABB{Min: lo, Max: hi}
}

// Hit tests if a ray intersects the box within [tMin, tMax] using the slab method
func (b AABB) Hit(ray core.Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		direction := ray.Direction[axis]

		if direction == 0 {
			if origin < b.Min[axis] || origin > b.Max[axis] {
				return false
			}
			continue
		}

		invDirection := 1 / direction
		t1 := (b.Min[axis] - origin) * invDirection
		t2 := (b.Max[axis] - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns an AABB that bounds both boxes
func (b AABB) Union(other AABB) AABB {
	return NewAABBFromPoints(b.Min, b.Max, other.Min, other.Max)
}

// Center returns the center point of the box
func (b AABB) Center() core.Point3 {
	return core.Point3(mgl32.Vec3(b.Min).Add(mgl32.Vec3(b.Max)).Mul(0.5))
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b AABB) LongestAxis() int {
	size := b.Max.Subtract(b.Min)
	if size.X() > size.Y() && size.X() > size.Z() {
		return 0
	}
	if size.Y() > size.Z() {
		return 1
	}
	return 2
}

// Expand returns the box grown by amount in every direction
func (b AABB) Expand(amount float32) AABB {
	expansion := core.NewVec3(amount, amount, amount)
	return AABB{
		Min: b.Min.Add(expansion.Negate()),
		Max: b.Max.Add(expansion),
	}
}

// Bounds returns the face's bounding box, padded so that float32 rounding in
// the slab test never culls a hit the triangle test would accept
func (f *Face) Bounds() AABB {
	b := NewAABBFromPoints(f.Vertices[:]...)
	var extent float32
	for axis := 0; axis < 3; axis++ {
		extent = max(extent, float32(math.Abs(float64(b.Min[axis]))), float32(math.Abs(float64(b.Max[axis]))))
	}
	return b.Expand(1e-5 * (extent + 1))
}
