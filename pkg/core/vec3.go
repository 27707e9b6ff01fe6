package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NormalizeEpsilon is the length at or below which Normalize collapses a
// vector to zero instead of dividing.
const NormalizeEpsilon float32 = 1e-12

// Vec3 represents a 3D direction or displacement
type Vec3 mgl32.Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component
func (v Vec3) X() float32 { return v[0] }

// Y returns the second component
func (v Vec3) Y() float32 { return v[1] }

// Z returns the third component
func (v Vec3) Z() float32 { return v[2] }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Add(mgl32.Vec3(other)))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Sub(mgl32.Vec3(other)))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3(mgl32.Vec3(v).Mul(scalar))
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return mgl32.Vec3(v).Dot(mgl32.Vec3(other))
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Cross(mgl32.Vec3(other)))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return mgl32.Vec3(v).Len()
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return mgl32.Vec3(v).LenSqr()
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when the length is at or below NormalizeEpsilon
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length <= NormalizeEpsilon {
		return Vec3{}
	}
	return v.Multiply(1 / length)
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// IsZero reports whether all components are exactly zero
func (v Vec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Reflect mirrors v about the plane with normal n: v - 2*dot(v,n)*n
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Point3 represents a location in object space
type Point3 mgl32.Vec3

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float32) Point3 {
	return Point3{x, y, z}
}

// Subtract returns the displacement from other to p
func (p Point3) Subtract(other Point3) Vec3 {
	return Vec3(mgl32.Vec3(p).Sub(mgl32.Vec3(other)))
}

// Add returns p displaced by v
func (p Point3) Add(v Vec3) Point3 {
	return Point3(mgl32.Vec3(p).Add(mgl32.Vec3(v)))
}

// Vec returns the position vector of p
func (p Point3) Vec() Vec3 {
	return Vec3(p)
}

// Ray represents a ray with an origin, a direction and a valid
// parametric window [TMin, TMax]
type Ray struct {
	Origin    Point3
	Direction Vec3
	TMin      float32
	TMax      float32
}

// NewRay creates a new ray with an open-ended window starting at tMin
func NewRay(origin Point3, direction Vec3, tMin float32) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      tMin,
		TMax:      float32(math.Inf(1)),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
