package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// DisplayGamma is the gamma applied when converting linear radiance to 8-bit
const DisplayGamma = 2.2

// Image is a row-major buffer of linear radiance, one colour per pixel
type Image struct {
	Width  int
	Height int
	Pix    []core.Colour
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Colour, width*height),
	}
}

// At returns the colour of pixel (x, y)
func (img *Image) At(x, y int) core.Colour {
	return img.Pix[y*img.Width+x]
}

// Set stores the colour of pixel (x, y)
func (img *Image) Set(x, y int, c core.Colour) {
	img.Pix[y*img.Width+x] = c
}

// Rows returns the pixels of rows [y0, y1) as a sub-slice of the buffer.
// Slices of disjoint row ranges can be written concurrently.
func (img *Image) Rows(y0, y1 int) []core.Colour {
	return img.Pix[y0*img.Width : y1*img.Width]
}

// ToRGBA converts the image to 8-bit sRGB-ish colour using DisplayGamma
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, colourToRGBA(img.At(x, y)))
		}
	}
	return out
}

func colourToRGBA(c core.Colour) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: gammaByte(c.R()),
		G: gammaByte(c.G()),
		B: gammaByte(c.B()),
		A: 255,
	}
}

func gammaByte(v float32) uint8 {
	// NaN passes through Clamp
	if math.IsNaN(float64(v)) {
		return 0
	}
	return uint8(math.Round(255 * math.Pow(float64(v), 1/DisplayGamma)))
}
