package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position core.Point3
	LookAt   core.Point3
	Up       core.Vec3
	VFov     float32 // Vertical field of view in degrees
}

// Camera generates primary rays for an image of fixed resolution
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	width, height   int
}

// NewCamera creates a pinhole camera whose viewport matches the aspect
// ratio of a width x height image, one unit in front of the eye
func NewCamera(config CameraConfig, width, height int) *Camera {
	aspectRatio := float32(width) / float32(height)
	viewportHeight := 2 * float32(math.Tan(float64(mgl32.DegToRad(config.VFov))/2))
	viewportWidth := aspectRatio * viewportHeight

	forward := config.LookAt.Subtract(config.Position).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	horizontal := right.Multiply(viewportWidth)
	vertical := up.Multiply(viewportHeight)
	lowerLeftCorner := config.Position.
		Add(forward).
		Add(horizontal.Multiply(-0.5)).
		Add(vertical.Multiply(-0.5))

	return &Camera{
		origin:          config.Position,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		width:           width,
		height:          height,
	}
}

// GetRay generates a ray through pixel (x, y), offset inside the pixel by
// jitter in [0,1)^2. Row 0 is the top of the image.
func (c *Camera) GetRay(x, y int, jitter core.Vec2) core.Ray {
	s := (float32(x) + jitter.X()) / float32(c.width)
	t := 1 - (float32(y)+jitter.Y())/float32(c.height)

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(c.origin, target.Subtract(c.origin).Normalize(), 0)
}
