package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/geometry"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
)

// TieEpsilon is the distance within which two hits count as equally near.
// The face stored first wins a tie.
const TieEpsilon float32 = 1e-6

// ErrBSDFIndex is returned when a face references a material that does not exist
var ErrBSDFIndex = errors.New("scene: face references an out-of-range bsdf")

// Scene is the immutable set of faces and the material table they reference.
// It is safe for concurrent reads and must not be modified after New.
type Scene struct {
	faces []geometry.Face
	bsdfs []material.BSDF
	accel *bvh
}

// New creates a scene after checking every face's material index
func New(faces []geometry.Face, bsdfs []material.BSDF) (*Scene, error) {
	for i := range faces {
		if idx := faces[i].BSDF; idx < 0 || idx >= len(bsdfs) {
			return nil, fmt.Errorf("%w: face %d uses bsdf %d of %d", ErrBSDFIndex, i, idx, len(bsdfs))
		}
	}
	return &Scene{faces: faces, bsdfs: bsdfs, accel: newBVH(faces)}, nil
}

// NumFaces returns the number of faces
func (s *Scene) NumFaces() int {
	return len(s.faces)
}

// NumBSDFs returns the number of materials
func (s *Scene) NumBSDFs() int {
	return len(s.bsdfs)
}

// Face returns the i-th face
func (s *Scene) Face(i int) *geometry.Face {
	return &s.faces[i]
}

// BSDF returns the i-th material
func (s *Scene) BSDF(i int) material.BSDF {
	return s.bsdfs[i]
}

// Material returns the material of the face that produced hit
func (s *Scene) Material(hit geometry.Hit) material.BSDF {
	return s.bsdfs[s.faces[hit.Face].BSDF]
}

// Intersect returns the nearest hit along the ray
func (s *Scene) Intersect(ray core.Ray) (geometry.Hit, bool) {
	return s.accel.hit(ray)
}

// BVHDepth returns the number of levels in the acceleration hierarchy
func (s *Scene) BVHDepth() int {
	return s.accel.depth()
}

// intersectLinear finds the nearest hit by scanning every face in order
func (s *Scene) intersectLinear(ray core.Ray) (geometry.Hit, bool) {
	var closest geometry.Hit
	found := false

	for i := range s.faces {
		hit, ok := s.faces[i].Hit(ray)
		if !ok {
			continue
		}
		hit.Face = i
		if !found || nearer(hit, closest) {
			closest = hit
			found = true
		}
	}

	return closest, found
}
