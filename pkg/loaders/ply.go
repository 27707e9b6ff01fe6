package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/geometry"
)

// ErrPLYFormat is returned for PLY files this loader cannot read
var ErrPLYFormat = errors.New("loaders: unsupported ply data")

// PLYMesh is the triangle geometry of a PLY file. Polygons are fanned into
// triangles; all other vertex and face properties are ignored.
type PLYMesh struct {
	Vertices  []core.Point3
	Triangles [][3]uint32
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	name      string
	dataType  string // element type for lists
	isList    bool
	countType string
}

// plyElement is an element block such as "vertex" or "face"
type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// LoadPLY loads a binary little-endian PLY file
func LoadPLY(path string) (*PLYMesh, error) {
	startTime := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY file: %w", err)
	}

	mesh, err := DecodePLY(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	logger.Infof("loaded PLY %s: %d vertices, %d triangles in %v",
		path, len(mesh.Vertices), len(mesh.Triangles), time.Since(startTime))
	return mesh, nil
}

// DecodePLY decodes an in-memory PLY file
func DecodePLY(data []byte) (*PLYMesh, error) {
	elements, bodyOffset, err := parsePLYHeader(data)
	if err != nil {
		return nil, err
	}

	mesh := &PLYMesh{}
	c := NewCursor(data[bodyOffset:])
	for _, el := range elements {
		// Reject counts the body cannot possibly hold before allocating for them
		if el.count > c.Remaining()/max(plyMinRecordSize(el), 1) {
			return nil, &FormatError{Field: el.name + " count", Offset: c.Offset(), Err: ErrTruncated}
		}

		switch el.name {
		case "vertex":
			err = readPLYVertices(c, el, mesh)
		case "face":
			err = readPLYFaces(c, el, mesh)
		default:
			for i := 0; i < el.count && err == nil; i++ {
				err = skipPLYRecord(c, el, i)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

// parsePLYHeader parses the header and returns its elements and the offset
// where binary data starts
func parsePLYHeader(data []byte) ([]plyElement, int, error) {
	const terminator = "end_header\n"
	end := bytes.Index(data, []byte(terminator))
	if !bytes.HasPrefix(data, []byte("ply\n")) || end < 0 {
		return nil, 0, fmt.Errorf("%w: missing ply header", ErrPLYFormat)
	}

	var elements []plyElement
	for _, line := range strings.Split(string(data[:end]), "\n")[1:] {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "binary_little_endian" {
				return nil, 0, fmt.Errorf("%w: format %q", ErrPLYFormat, strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) < 3 {
				return nil, 0, fmt.Errorf("%w: bad element line %q", ErrPLYFormat, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, 0, fmt.Errorf("%w: invalid element count %q", ErrPLYFormat, parts[2])
			}
			elements = append(elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(elements) == 0 {
				return nil, 0, fmt.Errorf("%w: property before element", ErrPLYFormat)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, 0, err
			}
			el := &elements[len(elements)-1]
			el.props = append(el.props, prop)
		}
	}

	return elements, end + len(terminator), nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		prop := plyProperty{isList: true, countType: parts[1], dataType: parts[2], name: parts[3]}
		if plyTypeSize(prop.countType) == 0 || plyTypeSize(prop.dataType) == 0 {
			return plyProperty{}, fmt.Errorf("%w: list property %q", ErrPLYFormat, prop.name)
		}
		return prop, nil
	}
	if len(parts) == 2 && plyTypeSize(parts[0]) > 0 {
		return plyProperty{dataType: parts[0], name: parts[1]}, nil
	}
	return plyProperty{}, fmt.Errorf("%w: property %q", ErrPLYFormat, strings.Join(parts, " "))
}

// plyTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyMinRecordSize is the smallest encoding of one element record, with every
// list empty
func plyMinRecordSize(el plyElement) int {
	size := 0
	for _, prop := range el.props {
		if prop.isList {
			size += plyTypeSize(prop.countType)
		} else {
			size += plyTypeSize(prop.dataType)
		}
	}
	return size
}

// readPLYScalar reads one value of the given type as a float64
func readPLYScalar(c *Cursor, dataType, field string) (float64, error) {
	b, err := c.take(plyTypeSize(dataType), field)
	if err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(binary.LittleEndian.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case "uint", "uint32":
		return float64(binary.LittleEndian.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	}
}

// readPLYList reads a list property's count followed by its items
func readPLYList(c *Cursor, prop plyProperty, field string) ([]float64, error) {
	n, err := readPLYScalar(c, prop.countType, field)
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n)*plyTypeSize(prop.dataType) > c.Remaining() {
		return nil, &FormatError{Field: field, Offset: c.Offset(), Err: ErrTruncated}
	}

	items := make([]float64, int(n))
	for i := range items {
		if items[i], err = readPLYScalar(c, prop.dataType, field); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func readPLYVertices(c *Cursor, el plyElement, mesh *PLYMesh) error {
	axes := map[string]int{"x": 0, "y": 1, "z": 2}
	mesh.Vertices = make([]core.Point3, 0, el.count)

	for i := 0; i < el.count; i++ {
		var p core.Point3
		for _, prop := range el.props {
			field := fmt.Sprintf("vertex[%d].%s", i, prop.name)
			if prop.isList {
				if _, err := readPLYList(c, prop, field); err != nil {
					return err
				}
				continue
			}
			value, err := readPLYScalar(c, prop.dataType, field)
			if err != nil {
				return err
			}
			if axis, ok := axes[prop.name]; ok {
				p[axis] = float32(value)
			}
		}
		mesh.Vertices = append(mesh.Vertices, p)
	}
	return nil
}

func readPLYFaces(c *Cursor, el plyElement, mesh *PLYMesh) error {
	for i := 0; i < el.count; i++ {
		for _, prop := range el.props {
			field := fmt.Sprintf("face[%d].%s", i, prop.name)
			if !prop.isList {
				if _, err := readPLYScalar(c, prop.dataType, field); err != nil {
					return err
				}
				continue
			}

			offset := c.Offset()
			items, err := readPLYList(c, prop, field)
			if err != nil {
				return err
			}
			if prop.name != "vertex_indices" && prop.name != "vertex_index" {
				continue
			}

			indices := make([]uint32, len(items))
			for k, v := range items {
				if v < 0 || int(v) >= len(mesh.Vertices) {
					return &FormatError{Field: field, Offset: offset, Err: ErrIndexOutOfRange}
				}
				indices[k] = uint32(v)
			}
			// Fan-triangulate polygons
			for k := 1; k+1 < len(indices); k++ {
				mesh.Triangles = append(mesh.Triangles, [3]uint32{indices[0], indices[k], indices[k+1]})
			}
		}
	}
	return nil
}

func skipPLYRecord(c *Cursor, el plyElement, i int) error {
	for _, prop := range el.props {
		field := fmt.Sprintf("%s[%d].%s", el.name, i, prop.name)
		var err error
		if prop.isList {
			_, err = readPLYList(c, prop, field)
		} else {
			_, err = readPLYScalar(c, prop.dataType, field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Bounds returns the bounding box of the mesh vertices
func (m *PLYMesh) Bounds() geometry.AABB {
	return geometry.NewAABBFromPoints(m.Vertices...)
}

// Fit uniformly scales and translates the mesh so that it sits centred on
// the floor of the box [lo, hi] without exceeding it
func (m *PLYMesh) Fit(lo, hi core.Point3) {
	if len(m.Vertices) == 0 {
		return
	}

	bounds := m.Bounds()
	size := bounds.Max.Subtract(bounds.Min)
	target := hi.Subtract(lo)

	scale := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		if size[axis] > 0 {
			scale = min(scale, target[axis]/size[axis])
		}
	}
	if math.IsInf(float64(scale), 1) {
		scale = 1
	}

	centre := bounds.Center()
	for i, v := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			offset := (v[axis] - centre[axis]) * scale
			if axis == 1 {
				// Rest on the floor of the box
				m.Vertices[i][axis] = lo[axis] + (v[axis]-bounds.Min[axis])*scale
			} else {
				m.Vertices[i][axis] = (lo[axis]+hi[axis])/2 + offset
			}
		}
	}
}
