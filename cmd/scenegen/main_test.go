package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-mesh-pathtracer/pkg/loaders"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

func TestWriteScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cornell.bin")
	if err := newApp().Run([]string{"scenegen", path}); err != nil {
		t.Fatalf("scenegen failed: %v", err)
	}

	s, err := loaders.LoadScene(path)
	if err != nil {
		t.Fatalf("Failed to load written scene: %v", err)
	}
	expected, _ := scene.NewCornellMesh().Build()
	if s.NumFaces() != expected.NumFaces() || s.NumBSDFs() != expected.NumBSDFs() {
		t.Errorf("Expected %d faces and %d bsdfs, got %d and %d",
			expected.NumFaces(), expected.NumBSDFs(), s.NumFaces(), s.NumBSDFs())
	}
}

func TestWriteScene_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := newApp().Run([]string{"scenegen"}); err == nil {
		t.Error("Expected error without an output file")
	}
	if err := newApp().Run([]string{"scenegen", "--scene", "teapot", filepath.Join(dir, "x.bin")}); err == nil {
		t.Error("Expected error for an unknown scene")
	}
}

func TestWriteScene_PLY(t *testing.T) {
	dir := t.TempDir()
	plyPath := filepath.Join(dir, "tri.ply")
	out := filepath.Join(dir, "tri.bin")

	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\nelement vertex 3\n")
	buf.WriteString("property float x\nproperty float y\nproperty float z\n")
	buf.WriteString("element face 1\nproperty list uchar uint vertex_indices\nend_header\n")
	binary.Write(&buf, binary.LittleEndian, [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	binary.Write(&buf, binary.LittleEndian, uint8(3))
	binary.Write(&buf, binary.LittleEndian, [3]uint32{0, 1, 2})
	if err := os.WriteFile(plyPath, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write PLY: %v", err)
	}

	if err := newApp().Run([]string{"scenegen", "--ply", plyPath, "--albedo", "0.25", out}); err != nil {
		t.Fatalf("scenegen failed: %v", err)
	}
	s, err := loaders.LoadScene(out)
	if err != nil {
		t.Fatalf("Failed to load written scene: %v", err)
	}
	if want := len(scene.NewCornellShell().Faces) + 1; s.NumFaces() != want {
		t.Errorf("Expected %d faces, got %d", want, s.NumFaces())
	}

	if err := newApp().Run([]string{"scenegen", "--ply", plyPath, "--albedo", "0.9", out}); err == nil {
		t.Error("Expected error for an albedo that does not conserve energy")
	}
}
