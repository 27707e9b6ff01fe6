package output

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for output paths with an unsupported extension
var ErrUnknownFormat = errors.New("output: unknown image format")

// JPEGQuality is the quality used when encoding JPEG output
const JPEGQuality = 95

// Format identifies an image encoding
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the encoding from the file extension, ignoring case
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, format Format, img image.Image) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		// Quantize to a fixed palette with dithering
		paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, img.Bounds().Min)
		return gif.Encode(w, paletted, nil)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// WriteImage encodes img into the file at path, choosing the format from
// the extension. The file is not created for unknown extensions.
func WriteImage(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(f, format, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %v: %w", format, err)
	}
	return f.Close()
}
