package material

import (
	"fmt"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) material
type Diffuse struct {
	Albedo core.Colour
}

// NewDiffuse creates a diffuse material, rejecting albedos that are not
// energy conserving
func NewDiffuse(albedo core.Colour) (*Diffuse, error) {
	for i, c := range albedo {
		if !(c >= 0 && c <= 1) {
			return nil, fmt.Errorf("%w: component %d is %v", ErrInvalidAlbedo, i, c)
		}
	}
	if sum := albedo.Sum(); sum > 1 {
		return nil, fmt.Errorf("%w: sum is %v", ErrInvalidAlbedo, sum)
	}
	return &Diffuse{Albedo: albedo}, nil
}

// Emission implements BSDF; diffuse surfaces do not emit
func (d *Diffuse) Emission() core.Colour {
	return core.Black
}

// Sample draws a cosine-weighted direction around the normal. The BRDF
// (albedo/π) times cos θ over the PDF (cos θ/π) leaves a weight of albedo.
func (d *Diffuse) Sample(incoming, normal core.Vec3, sampler core.Sampler) (Sample, bool) {
	direction := core.SampleCosineHemisphere(normal, sampler.Get2D()).Normalize()

	// Grazing samples carry no energy
	if direction.Dot(normal) <= 0 {
		return Sample{}, false
	}

	return Sample{
		Direction: direction,
		Weight:    d.Albedo,
		Specular:  false,
	}, true
}
