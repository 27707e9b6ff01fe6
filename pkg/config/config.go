package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/integrator"
	"github.com/df07/go-mesh-pathtracer/pkg/renderer"
)

// ErrInvalid is returned when a configuration value is out of range
var ErrInvalid = errors.New("config: invalid value")

// CameraCfg places the pinhole camera. Vectors are JSON arrays [x, y, z].
type CameraCfg struct {
	Position core.Point3 `json:"position"`
	LookAt   core.Point3 `json:"lookAt"`
	Up       core.Vec3   `json:"up"`
	FOV      float32     `json:"fov"` // vertical, degrees
}

// Config holds everything about a render except the scene itself
type Config struct {
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	SamplesPerPixel int         `json:"spp"`
	Seed            uint64      `json:"seed"`
	MinBounces      int         `json:"minBounces"`
	MaxDepth        int         `json:"maxDepth"` // 0 means unlimited
	RayEpsilon      float32     `json:"rayEpsilon"`
	Background      core.Colour `json:"background"`
	Camera          CameraCfg   `json:"camera"`
}

// Default returns a configuration that frames the Cornell box
func Default() Config {
	ic := integrator.DefaultConfig()
	rc := renderer.DefaultConfig()
	return Config{
		Width:           rc.Width,
		Height:          rc.Height,
		SamplesPerPixel: rc.SamplesPerPixel,
		Seed:            rc.Seed,
		MinBounces:      ic.MinBounces,
		MaxDepth:        ic.MaxDepth,
		RayEpsilon:      ic.RayEpsilon,
		Background:      ic.Background,
		Camera: CameraCfg{
			Position: core.NewPoint3(0, 0, 3.5),
			LookAt:   core.NewPoint3(0, 0, 0),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      40,
		},
	}
}

// Load reads a JSON file over the defaults. Fields missing from the file keep
// their default value; unknown fields are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field for a usable value
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: spp %d", ErrInvalid, c.SamplesPerPixel)
	case c.MinBounces < 0:
		return fmt.Errorf("%w: minBounces %d", ErrInvalid, c.MinBounces)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: maxDepth %d", ErrInvalid, c.MaxDepth)
	case !(c.RayEpsilon > 0) || math.IsInf(float64(c.RayEpsilon), 1):
		return fmt.Errorf("%w: rayEpsilon %g", ErrInvalid, c.RayEpsilon)
	case !core.Vec3(c.Background).IsFinite() || c.Background.R() < 0 || c.Background.G() < 0 || c.Background.B() < 0:
		return fmt.Errorf("%w: background %v", ErrInvalid, c.Background)
	case !(c.Camera.FOV > 0 && c.Camera.FOV < 180):
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV)
	}

	forward := c.Camera.LookAt.Subtract(c.Camera.Position)
	if forward.Normalize().IsZero() {
		return fmt.Errorf("%w: camera position equals lookAt", ErrInvalid)
	}
	if forward.Normalize().Cross(c.Camera.Up).Normalize().IsZero() {
		return fmt.Errorf("%w: camera up %v is parallel to the view direction", ErrInvalid, c.Camera.Up)
	}
	return nil
}

// IntegratorConfig returns the estimator settings
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MinBounces: c.MinBounces,
		MaxDepth:   c.MaxDepth,
		RayEpsilon: c.RayEpsilon,
		Background: c.Background,
	}
}

// RendererConfig returns the render settings for the given worker count
func (c Config) RendererConfig(workers int) renderer.Config {
	return renderer.Config{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		NumWorkers:      workers,
		Seed:            c.Seed,
	}
}

// CameraConfig returns the camera settings
func (c Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Position: c.Camera.Position,
		LookAt:   c.Camera.LookAt,
		Up:       c.Camera.Up,
		VFov:     c.Camera.FOV,
	}
}
