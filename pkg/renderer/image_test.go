package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

func TestImage_RowMajor(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, core.NewColour(1, 2, 3))

	if img.Pix[5] != core.NewColour(1, 2, 3) || img.At(2, 1) != core.NewColour(1, 2, 3) {
		t.Errorf("Expected pixel (2,1) at index 5, got %v", img.Pix)
	}
	if rows := img.Rows(1, 2); len(rows) != 3 || rows[2] != img.At(2, 1) {
		t.Errorf("Rows(1,2) returned %v", rows)
	}
}

func TestImage_ToRGBA(t *testing.T) {
	nan := float32(math.NaN())
	img := NewImage(4, 1)
	img.Set(0, 0, core.NewColour(0, 0, 0))
	img.Set(1, 0, core.NewColour(1, 1, 1))
	img.Set(2, 0, core.NewColour(0.25, 4, -1))
	img.Set(3, 0, core.NewColour(nan, 0.5, 0))

	rgba := img.ToRGBA()
	expected := []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{136, 255, 0, 255}, // 255 * 0.25^(1/2.2)
		{0, 186, 0, 255},   // 255 * 0.5^(1/2.2)
	}
	for x, want := range expected {
		if got := rgba.RGBAAt(x, 0); got != want {
			t.Errorf("Pixel %d: expected %v, got %v", x, want, got)
		}
	}
}
