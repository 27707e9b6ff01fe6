package material

import (
	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// Emitter represents a two-sided light-emitting surface
type Emitter struct {
	Radiance core.Colour
}

// NewEmitter creates a new emissive material
func NewEmitter(radiance core.Colour) *Emitter {
	return &Emitter{Radiance: radiance}
}

// Emission returns the emitted radiance, identical on both sides
func (e *Emitter) Emission() core.Colour {
	return e.Radiance
}

// Sample implements BSDF. Emitters don't scatter, they absorb all incoming rays.
func (e *Emitter) Sample(incoming, normal core.Vec3, sampler core.Sampler) (Sample, bool) {
	return Sample{}, false
}
