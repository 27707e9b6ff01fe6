package material

import (
	"errors"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// ErrInvalidAlbedo is returned when a diffuse albedo would create energy
var ErrInvalidAlbedo = errors.New("material: diffuse albedo must have components in [0,1] summing to at most 1")

// BSDF describes how a surface scatters or emits light. The set of
// implementations is closed: *Mirror, *Diffuse and *Emitter.
type BSDF interface {
	// Emission returns the radiance the surface emits
	Emission() core.Colour

	// Sample picks an outgoing direction for light arriving along incoming.
	// normal faces the incoming ray. Returns false when the surface absorbs.
	Sample(incoming, normal core.Vec3, sampler core.Sampler) (Sample, bool)
}

// Sample is the result of scattering at a surface
type Sample struct {
	Direction core.Vec3   // Outgoing direction (unit length)
	Weight    core.Colour // Throughput multiplier, already divided by the PDF
	Specular  bool        // Delta distribution; the direction is not sampled
}

// Wire tags identifying each BSDF variant in the binary scene format
const (
	TagMirror  byte = 1
	TagDiffuse byte = 2
	TagEmitter byte = 3
)

// Tag returns the wire tag for a BSDF, or 0 if it is not one of the known variants
func Tag(b BSDF) byte {
	switch b.(type) {
	case *Mirror:
		return TagMirror
	case *Diffuse:
		return TagDiffuse
	case *Emitter:
		return TagEmitter
	default:
		return 0
	}
}

// IsEmitter reports whether the BSDF is a light source
func IsEmitter(b BSDF) bool {
	_, ok := b.(*Emitter)
	return ok
}
