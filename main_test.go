package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli"

	"github.com/df07/go-mesh-pathtracer/pkg/loaders"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected renderArgs
		wantErr  bool
	}{
		{"DefaultThreads", []string{"in.bin", "out.png"}, renderArgs{"in.bin", "out.png", 1}, false},
		{"ExplicitThreads", []string{"in.bin", "out.png", "8"}, renderArgs{"in.bin", "out.png", 8}, false},
		{"NoArgs", nil, renderArgs{}, true},
		{"MissingOutput", []string{"in.bin"}, renderArgs{}, true},
		{"ZeroThreads", []string{"in.bin", "out.png", "0"}, renderArgs{}, true},
		{"NegativeThreads", []string{"in.bin", "out.png", "-2"}, renderArgs{}, true},
		{"NonIntegerThreads", []string{"in.bin", "out.png", "four"}, renderArgs{}, true},
		{"TooManyArgs", []string{"in.bin", "out.png", "2", "extra"}, renderArgs{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(cli.Args(tt.args))
			if tt.wantErr {
				if !errors.Is(err, errUsage) {
					t.Errorf("Expected usage error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestApp_UsageErrorDoesNotRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")

	var stderr bytes.Buffer
	app := newApp()
	app.ErrWriter = &stderr
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"pathtracer", "missing.bin", out, "zero"})
	if !errors.Is(err, errUsage) {
		t.Fatalf("Expected usage error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "INPUT_FILE OUTPUT_FILE [NUM_THREADS]") {
		t.Errorf("Expected usage on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no output image, got %v", err)
	}
}

func TestApp_RendersScene(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cornell.bin")
	out := filepath.Join(dir, "cornell.png")
	if err := loaders.SaveMesh(input, scene.NewCornellMesh()); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run([]string{"pathtracer", "--width", "12", "--height", "8", "--spp", "2", input, out, "3"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("Expected 12x8 image, got %v", b)
	}
}

func TestApp_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cornell.bin")
	cfgPath := filepath.Join(dir, "render.json")
	out := filepath.Join(dir, "cornell.gif")
	if err := loaders.SaveMesh(input, scene.NewCornellMesh()); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	if err := os.WriteFile(cfgPath, []byte(`{"width": 5, "height": 20, "spp": 1}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	app := newApp()
	app.Writer = &bytes.Buffer{}
	if err := app.Run([]string{"pathtracer", "--config", cfgPath, "--height", "4", input, out}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected output image: %v", err)
	}

	// A bad config is reported and nothing is written
	if err := os.WriteFile(cfgPath, []byte(`{"spp": 0}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	bad := filepath.Join(dir, "bad.png")
	if err := newApp().Run([]string{"pathtracer", "--config", cfgPath, input, bad}); err == nil {
		t.Error("Expected error for invalid config")
	}
	if _, err := os.Stat(bad); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no output image, got %v", err)
	}
}
