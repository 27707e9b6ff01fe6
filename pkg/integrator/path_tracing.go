package integrator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

// Survival probability bounds for Russian roulette
const (
	minSurvival float32 = 0.05
	maxSurvival float32 = 0.95
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the estimator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Radiance follows one path from the camera, accumulating emission weighted
// by the path throughput until the path escapes, reaches a light, is absorbed
// or is killed by Russian roulette
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Colour, PathStats) {
	radiance := core.Black
	throughput := core.White
	ray.Direction = ray.Direction.Normalize()

	for depth := 0; ; depth++ {
		if pt.config.MaxDepth > 0 && depth >= pt.config.MaxDepth {
			return radiance, PathStats{Bounces: depth, Termination: TerminatedMaxDepth}
		}

		hit, isHit := s.Intersect(ray)
		if !isHit {
			radiance = radiance.Add(throughput.MultiplyColour(pt.config.Background))
			return radiance, PathStats{Bounces: depth, Termination: TerminatedBackground}
		}

		bsdf := s.Material(hit)
		radiance = radiance.Add(throughput.MultiplyColour(bsdf.Emission()))

		// Lights end the path; they are never scattered off
		if material.IsEmitter(bsdf) {
			return radiance, PathStats{Bounces: depth, Termination: TerminatedEmission}
		}

		scatter, didScatter := bsdf.Sample(ray.Direction, hit.Normal, sampler)
		if !didScatter {
			return radiance, PathStats{Bounces: depth, Termination: TerminatedAbsorbed}
		}

		throughput = throughput.MultiplyColour(scatter.Weight)
		if throughput.IsBlack() {
			return radiance, PathStats{Bounces: depth + 1, Termination: TerminatedAbsorbed}
		}

		origin := hit.Point.Add(hit.Normal.Multiply(pt.config.RayEpsilon))
		ray = core.NewRay(origin, scatter.Direction, pt.config.RayEpsilon)

		if depth+1 >= pt.config.MinBounces {
			survive, p := pt.applyRussianRoulette(throughput, sampler)
			if !survive {
				return radiance, PathStats{Bounces: depth + 1, Termination: TerminatedRoulette}
			}
			throughput = throughput.Multiply(1 / p)
		}
	}
}

// applyRussianRoulette decides whether a path continues and returns the
// survival probability used, so the caller can compensate the throughput
func (pt *PathTracingIntegrator) applyRussianRoulette(throughput core.Colour, sampler core.Sampler) (bool, float32) {
	survivalProb := mgl32.Clamp(throughput.Luminance(), minSurvival, maxSurvival)
	return sampler.Get1D() < survivalProb, survivalProb
}
