package geometry

import (
	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// ParallelEpsilon bounds the Möller-Trumbore determinant, relative to
// |d|*|e1|*|e2|, below which a ray is treated as parallel to the triangle
// plane. The bound is the sine of the angle between ray and plane.
const ParallelEpsilon float32 = 1e-6

// Face is a triangle with a precomputed outward normal and an index into the
// scene's material table
type Face struct {
	Vertices [3]core.Point3
	Normal   core.Vec3 // unit length, or zero for a degenerate triangle
	BSDF     int
}

// NewFace creates a face and derives its normal from the vertex winding
// (right-hand rule over v0->v1, v0->v2)
func NewFace(vertices [3]core.Point3, bsdf int) Face {
	ab := vertices[1].Subtract(vertices[0])
	ac := vertices[2].Subtract(vertices[0])
	return Face{
		Vertices: vertices,
		Normal:   ab.Cross(ac).Normalize(),
		BSDF:     bsdf,
	}
}

// IsDegenerate reports whether the face has no area
func (f *Face) IsDegenerate() bool {
	return f.Normal.IsZero()
}

// Hit contains information about a ray-face intersection
type Hit struct {
	T         float32     // Parameter t along the ray
	U, V      float32     // Barycentric coordinates of v1 and v2
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Face normal oriented against the ray
	FrontFace bool        // Whether the ray hit the side the stored normal points to
	Face      int         // Index of the face in the scene
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *Hit) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) <= 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hit tests if a ray intersects with the face using the Möller-Trumbore algorithm.
// Rays parallel to the plane and rays landing exactly on an edge report no hit.
func (f *Face) Hit(ray core.Ray) (Hit, bool) {
	edge1 := f.Vertices[1].Subtract(f.Vertices[0])
	edge2 := f.Vertices[2].Subtract(f.Vertices[0])

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	limit := ParallelEpsilon * ray.Direction.Length() * edge1.Length() * edge2.Length()
	if a >= -limit && a <= limit {
		return Hit{}, false
	}

	inv := 1.0 / a
	s := ray.Origin.Subtract(f.Vertices[0])
	u := inv * s.Dot(h)
	if !(u > 0 && u < 1) {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := inv * ray.Direction.Dot(q)
	if !(v > 0 && u+v < 1) {
		return Hit{}, false
	}

	t := inv * edge2.Dot(q)
	if !(t >= ray.TMin && t <= ray.TMax) {
		return Hit{}, false
	}

	hit := Hit{
		T:     t,
		U:     u,
		V:     v,
		Point: ray.At(t),
	}
	hit.SetFaceNormal(ray, f.Normal)
	return hit, true
}
