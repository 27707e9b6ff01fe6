package material

import (
	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// Mirror is a perfect specular reflector
type Mirror struct{}

// NewMirror creates a new mirror material
func NewMirror() *Mirror {
	return &Mirror{}
}

// Emission implements BSDF; mirrors do not emit
func (m *Mirror) Emission() core.Colour {
	return core.Black
}

// Sample reflects the incoming direction about the normal without energy loss
func (m *Mirror) Sample(incoming, normal core.Vec3, sampler core.Sampler) (Sample, bool) {
	reflected := incoming.Normalize().Reflect(normal)
	if reflected.IsZero() {
		return Sample{}, false
	}
	return Sample{
		Direction: reflected,
		Weight:    core.White,
		Specular:  true,
	}, true
}
