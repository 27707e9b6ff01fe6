package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/geometry"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
)

// ErrVertexIndex is returned when a face references a vertex that does not exist
var ErrVertexIndex = errors.New("scene: face references an out-of-range vertex")

// FaceRecord is an indexed triangle: three vertex indices and a material index
type FaceRecord struct {
	Vertices [3]uint32
	BSDF     uint32
}

// Mesh is the indexed form of a scene, as stored on disk
type Mesh struct {
	Vertices []core.Point3
	BSDFs    []material.BSDF
	Faces    []FaceRecord
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(p core.Point3) uint32 {
	m.Vertices = append(m.Vertices, p)
	return uint32(len(m.Vertices) - 1)
}

// AddBSDF appends a material and returns its index
func (m *Mesh) AddBSDF(b material.BSDF) uint32 {
	m.BSDFs = append(m.BSDFs, b)
	return uint32(len(m.BSDFs) - 1)
}

// AddTriangle appends a face over three existing vertices
func (m *Mesh) AddTriangle(v0, v1, v2, bsdf uint32) {
	m.Faces = append(m.Faces, FaceRecord{Vertices: [3]uint32{v0, v1, v2}, BSDF: bsdf})
}

// AddQuad appends the parallelogram corner, corner+u, corner+u+v, corner+v as
// two triangles whose normals follow u × v
func (m *Mesh) AddQuad(corner core.Point3, u, v core.Vec3, bsdf uint32) {
	a := m.AddVertex(corner)
	b := m.AddVertex(corner.Add(u))
	c := m.AddVertex(corner.Add(u).Add(v))
	d := m.AddVertex(corner.Add(v))
	m.AddTriangle(a, b, c, bsdf)
	m.AddTriangle(a, c, d, bsdf)
}

// AddMesh appends an indexed triangle list that uses a single material.
// Triangle indices are relative to the given vertices.
func (m *Mesh) AddMesh(vertices []core.Point3, triangles [][3]uint32, bsdf uint32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, vertices...)
	for _, tri := range triangles {
		m.AddTriangle(base+tri[0], base+tri[1], base+tri[2], bsdf)
	}
}

// Build resolves vertex indices into faces and creates the scene
func (m *Mesh) Build() (*Scene, error) {
	faces := make([]geometry.Face, len(m.Faces))
	for i, rec := range m.Faces {
		var vertices [3]core.Point3
		for k, idx := range rec.Vertices {
			if int(idx) >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: face %d uses vertex %d of %d", ErrVertexIndex, i, idx, len(m.Vertices))
			}
			vertices[k] = m.Vertices[idx]
		}
		if int(rec.BSDF) >= len(m.BSDFs) {
			return nil, fmt.Errorf("%w: face %d uses bsdf %d of %d", ErrBSDFIndex, i, rec.BSDF, len(m.BSDFs))
		}
		faces[i] = geometry.NewFace(vertices, int(rec.BSDF))
	}

	return New(faces, m.BSDFs)
}
