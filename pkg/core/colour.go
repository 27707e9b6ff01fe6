package core

import "github.com/go-gl/mathgl/mgl32"

// Colour is a linear-light RGB radiance or reflectance triple. No range is
// enforced on construction.
type Colour mgl32.Vec3

// NewColour creates a new Colour
func NewColour(r, g, b float32) Colour {
	return Colour{r, g, b}
}

// Black is the zero colour
var Black = Colour{}

// White is unit reflectance on every channel
var White = Colour{1, 1, 1}

// R returns the red channel
func (c Colour) R() float32 { return c[0] }

// G returns the green channel
func (c Colour) G() float32 { return c[1] }

// B returns the blue channel
func (c Colour) B() float32 { return c[2] }

// Add returns the channel-wise sum
func (c Colour) Add(other Colour) Colour {
	return Colour(mgl32.Vec3(c).Add(mgl32.Vec3(other)))
}

// Multiply returns the colour scaled by a scalar
func (c Colour) Multiply(scalar float32) Colour {
	return Colour(mgl32.Vec3(c).Mul(scalar))
}

// MultiplyColour returns the channel-wise product
func (c Colour) MultiplyColour(other Colour) Colour {
	return Colour{c[0] * other[0], c[1] * other[1], c[2] * other[2]}
}

// Sum returns the sum of the three channels
func (c Colour) Sum() float32 {
	return c[0] + c[1] + c[2]
}

// MaxComponent returns the largest channel value
func (c Colour) MaxComponent() float32 {
	return max(c[0], c[1], c[2])
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Colour) Luminance() float32 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

// IsBlack reports whether every channel is zero
func (c Colour) IsBlack() bool {
	return c[0] == 0 && c[1] == 0 && c[2] == 0
}

// Clamp returns a colour with channels clamped to [minVal, maxVal]
func (c Colour) Clamp(minVal, maxVal float32) Colour {
	return Colour{
		mgl32.Clamp(c[0], minVal, maxVal),
		mgl32.Clamp(c[1], minVal, maxVal),
		mgl32.Clamp(c[2], minVal, maxVal),
	}
}

// Divide returns the colour with every channel divided by a scalar
func (c Colour) Divide(scalar float32) Colour {
	return Colour{c[0] / scalar, c[1] / scalar, c[2] / scalar}
}
