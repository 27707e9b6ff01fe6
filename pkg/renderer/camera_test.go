package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

func testCamera(width, height int) *Camera {
	return NewCamera(CameraConfig{
		Position: core.NewPoint3(0, 0, 0),
		LookAt:   core.NewPoint3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}, width, height)
}

func vecClose(a, b core.Vec3, tolerance float32) bool {
	return math.Abs(float64(a.X()-b.X())) <= float64(tolerance) &&
		math.Abs(float64(a.Y()-b.Y())) <= float64(tolerance) &&
		math.Abs(float64(a.Z()-b.Z())) <= float64(tolerance)
}

func TestCamera_CentreRayLooksAtTarget(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position: core.NewPoint3(0, 0, 3.5),
		LookAt:   core.NewPoint3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
	}, 64, 48)

	// The corner of pixel (32, 24) is the image centre
	ray := camera.GetRay(32, 24, core.Vec2{})
	if !vecClose(ray.Direction, core.NewVec3(0, 0, -1), 1e-6) {
		t.Errorf("Expected centre ray along (0,0,-1), got %v", ray.Direction)
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := testCamera(2, 2)

	tests := []struct {
		name     string
		x, y     int
		jitter   core.Vec2
		expected core.Vec3
	}{
		// With a 90 degree FOV the viewport spans [-1,1] at distance 1
		{"Centre", 1, 1, core.NewVec2(0, 0), core.NewVec3(0, 0, -1)},
		{"TopLeft", 0, 0, core.NewVec2(0, 0), core.NewVec3(-1, 1, -1).Normalize()},
		{"BottomRight", 1, 1, core.NewVec2(1, 1), core.NewVec3(1, -1, -1).Normalize()},
		{"PixelCentre", 0, 1, core.NewVec2(0.5, 0.5), core.NewVec3(-0.5, -0.5, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.x, tt.y, tt.jitter)
			if ray.Origin != core.NewPoint3(0, 0, 0) {
				t.Errorf("Expected origin at camera position, got %v", ray.Origin)
			}
			if !vecClose(ray.Direction, tt.expected, 1e-5) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if math.Abs(float64(ray.Direction.Length()-1)) > 1e-5 {
				t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
			}
		})
	}
}

func TestCamera_AspectRatio(t *testing.T) {
	// A 2:1 image widens the viewport but keeps the vertical extent
	camera := testCamera(4, 2)
	ray := camera.GetRay(0, 0, core.NewVec2(0, 0))
	if !vecClose(ray.Direction, core.NewVec3(-2, 1, -1).Normalize(), 1e-5) {
		t.Errorf("Expected top-left direction towards (-2,1,-1), got %v", ray.Direction)
	}
}
