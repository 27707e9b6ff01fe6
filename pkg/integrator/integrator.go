package integrator

import (
	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance estimates the radiance arriving along ray with one random path
	Radiance(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Colour, PathStats)
}

// Config holds the tunable constants of the estimator
type Config struct {
	MinBounces int         // Bounces before Russian roulette may terminate a path
	MaxDepth   int         // Hard cap on path length; 0 disables the cap
	RayEpsilon float32     // Offset along the normal and minimum t for secondary rays
	Background core.Colour // Radiance of rays that leave the scene
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MinBounces: 3,
		MaxDepth:   64,
		RayEpsilon: 1e-4,
		Background: core.Black,
	}
}

// Termination records why a path stopped
type Termination int

const (
	TerminatedEmission Termination = iota
	TerminatedBackground
	TerminatedRoulette
	TerminatedMaxDepth
	TerminatedAbsorbed
	numTerminations
)

// NumTerminations is the number of distinct termination reasons
const NumTerminations = int(numTerminations)

func (t Termination) String() string {
	switch t {
	case TerminatedEmission:
		return "emission"
	case TerminatedBackground:
		return "background"
	case TerminatedRoulette:
		return "roulette"
	case TerminatedMaxDepth:
		return "max-depth"
	case TerminatedAbsorbed:
		return "absorbed"
	default:
		return "unknown"
	}
}

// PathStats describes a single traced path
type PathStats struct {
	Bounces     int
	Termination Termination
}
