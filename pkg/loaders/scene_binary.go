package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/log"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

// SceneVersion is the only version byte the decoder accepts
const SceneVersion byte = 0x01

// Sizes of the fixed-width records
const (
	headerSize = 1 + 3*4
	vertexSize = 3 * 4
	faceSize   = 4 * 4
)

var logger = log.New("loaders")

// LoadScene reads a binary scene file and builds the scene
func LoadScene(path string) (*scene.Scene, error) {
	startTime := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	mesh, err := DecodeMesh(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	s, err := mesh.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene from %s: %w", path, err)
	}

	logger.Infof("loaded scene %s: %d vertices, %d bsdfs, %d faces in %v",
		path, len(mesh.Vertices), len(mesh.BSDFs), len(mesh.Faces), time.Since(startTime))

	return s, nil
}

// Decode decodes binary scene data and builds the scene
func Decode(data []byte) (*scene.Scene, error) {
	mesh, err := DecodeMesh(data)
	if err != nil {
		return nil, err
	}
	return mesh.Build()
}

// DecodeMesh decodes binary scene data into its indexed form. All indices
// are checked against the decoded counts.
func DecodeMesh(data []byte) (*scene.Mesh, error) {
	c := NewCursor(data)

	version, err := c.Byte("version")
	if err != nil {
		return nil, err
	}
	if version != SceneVersion {
		return nil, &FormatError{
			Field:  "version",
			Offset: 0,
			Err:    fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrBadVersion, version, SceneVersion),
		}
	}

	vertexCount, err := c.Uint32("vertex_count")
	if err != nil {
		return nil, err
	}
	bsdfCount, err := c.Uint32("bsdf_count")
	if err != nil {
		return nil, err
	}
	faceCount, err := c.Uint32("face_count")
	if err != nil {
		return nil, err
	}

	// Reject counts the data cannot possibly hold before allocating for them
	if uint64(vertexCount)*vertexSize > uint64(c.Remaining()) {
		return nil, &FormatError{Field: "vertex_count", Offset: 1, Err: ErrTruncated}
	}

	mesh := &scene.Mesh{
		Vertices: make([]core.Point3, vertexCount),
	}

	for i := range mesh.Vertices {
		xyz, err := c.Float32x3("")
		if err != nil {
			return nil, withField(err, fmt.Sprintf("vertex[%d]", i))
		}
		mesh.Vertices[i] = core.Point3(xyz)
	}

	if uint64(bsdfCount) > uint64(c.Remaining()) {
		return nil, &FormatError{Field: "bsdf_count", Offset: 5, Err: ErrTruncated}
	}
	mesh.BSDFs = make([]material.BSDF, bsdfCount)
	for i := range mesh.BSDFs {
		b, err := decodeBSDF(c, i)
		if err != nil {
			return nil, err
		}
		mesh.BSDFs[i] = b
	}

	if uint64(faceCount)*faceSize > uint64(c.Remaining()) {
		return nil, &FormatError{Field: "face_count", Offset: 9, Err: ErrTruncated}
	}
	mesh.Faces = make([]scene.FaceRecord, faceCount)
	for i := range mesh.Faces {
		rec, err := decodeFace(c, i, vertexCount, bsdfCount)
		if err != nil {
			return nil, err
		}
		mesh.Faces[i] = rec
	}

	if c.Remaining() > 0 {
		return nil, &FormatError{
			Field:  "eof",
			Offset: c.Offset(),
			Err:    fmt.Errorf("%w: %d bytes", ErrTrailingData, c.Remaining()),
		}
	}

	return mesh, nil
}

// decodeBSDF reads one tagged BSDF record
func decodeBSDF(c *Cursor, i int) (material.BSDF, error) {
	start := c.Offset()
	field := fmt.Sprintf("bsdf[%d]", i)

	tag, err := c.Byte(field + ".tag")
	if err != nil {
		return nil, err
	}

	switch tag {
	case material.TagMirror:
		return material.NewMirror(), nil
	case material.TagDiffuse:
		albedo, err := c.Float32x3(field + ".albedo")
		if err != nil {
			return nil, err
		}
		d, err := material.NewDiffuse(core.Colour(albedo))
		if err != nil {
			return nil, &FormatError{Field: field + ".albedo", Offset: start + 1, Err: err}
		}
		return d, nil
	case material.TagEmitter:
		radiance, err := c.Float32x3(field + ".radiance")
		if err != nil {
			return nil, err
		}
		return material.NewEmitter(core.Colour(radiance)), nil
	default:
		return nil, &FormatError{
			Field:  field + ".tag",
			Offset: start,
			Err:    fmt.Errorf("%w: %d", ErrUnknownBSDF, tag),
		}
	}
}

// decodeFace reads three vertex indices followed by the bsdf index
func decodeFace(c *Cursor, i int, vertexCount, bsdfCount uint32) (scene.FaceRecord, error) {
	var rec scene.FaceRecord
	for k := range rec.Vertices {
		start := c.Offset()
		idx, err := c.Uint32("")
		if err != nil {
			return rec, withField(err, fmt.Sprintf("face[%d].vertex[%d]", i, k))
		}
		if idx >= vertexCount {
			return rec, &FormatError{
				Field:  fmt.Sprintf("face[%d].vertex[%d]", i, k),
				Offset: start,
				Err:    fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, idx, vertexCount),
			}
		}
		rec.Vertices[k] = idx
	}

	start := c.Offset()
	idx, err := c.Uint32("")
	if err != nil {
		return rec, withField(err, fmt.Sprintf("face[%d].bsdf", i))
	}
	if idx >= bsdfCount {
		return rec, &FormatError{
			Field:  fmt.Sprintf("face[%d].bsdf", i),
			Offset: start,
			Err:    fmt.Errorf("%w: bsdf %d of %d", ErrIndexOutOfRange, idx, bsdfCount),
		}
	}
	rec.BSDF = idx

	return rec, nil
}

// withField names the field on a cursor error
func withField(err error, field string) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Field = field
	}
	return err
}

// EncodeMesh writes a mesh in the binary scene format
func EncodeMesh(w io.Writer, m *scene.Mesh) error {
	buf := make([]byte, 0, headerSize+len(m.Vertices)*vertexSize+len(m.BSDFs)*13+len(m.Faces)*faceSize)

	buf = append(buf, SceneVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Vertices)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.BSDFs)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Faces)))

	for _, v := range m.Vertices {
		buf = appendFloat32x3(buf, v)
	}

	for i, b := range m.BSDFs {
		tag := material.Tag(b)
		buf = append(buf, tag)
		switch bsdf := b.(type) {
		case *material.Mirror:
		case *material.Diffuse:
			buf = appendFloat32x3(buf, bsdf.Albedo)
		case *material.Emitter:
			buf = appendFloat32x3(buf, bsdf.Radiance)
		default:
			return fmt.Errorf("cannot encode bsdf %d of type %T: %w", i, b, ErrUnknownBSDF)
		}
	}

	for _, f := range m.Faces {
		for _, idx := range f.Vertices {
			buf = binary.LittleEndian.AppendUint32(buf, idx)
		}
		buf = binary.LittleEndian.AppendUint32(buf, f.BSDF)
	}

	_, err := w.Write(buf)
	return err
}

// SaveMesh writes a mesh to a binary scene file
func SaveMesh(path string, m *scene.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := EncodeMesh(w, m); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func appendFloat32x3[T ~[3]float32](buf []byte, v T) []byte {
	for _, c := range v {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
	}
	return buf
}
