package output

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(60 * x), uint8(100 * y), 40, 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.png", PNG, false},
		{"dir/OUT.PNG", PNG, false},
		{"out.jpg", JPEG, false},
		{"out.jpeg", JPEG, false},
		{"out.gif", GIF, false},
		{"out.bmp", 0, true},
		{"out", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil || format != tt.expected {
				t.Errorf("Expected %v, got %v (%v)", tt.expected, format, err)
			}
		})
	}
}

func TestWriteImage_Decodes(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	decoders := map[string]func(f *os.File) (image.Image, error){
		"render.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"render.jpg":  func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
		"render.gif":  func(f *os.File) (image.Image, error) { return gif.Decode(f) },
		"render.jpeg": func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteImage(path, src); err != nil {
				t.Fatalf("WriteImage failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open output: %v", err)
			}
			defer f.Close()

			img, err := decode(f)
			if err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Errorf("Expected bounds %v, got %v", src.Bounds(), img.Bounds())
			}
		})
	}
}

func TestWriteImage_PNGIsLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.png")
	src := testImage()
	if err := WriteImage(path, src); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := color.RGBAModel.Convert(img.At(x, y)); got != src.At(x, y) {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, src.At(x, y), got)
			}
		}
	}
}

func TestWriteImage_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.tga")
	if err := WriteImage(path, testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Expected ErrUnknownFormat, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no file to be created, got %v", err)
	}
}
