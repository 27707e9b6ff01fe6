package scene

import (
	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/material"
)

// NewCornellMesh creates a Cornell box spanning [-1,1]³ with the front (+Z)
// side open, a ceiling light and a mirror block. The default camera at
// (0,0,3.5) looking at the origin frames it.
func NewCornellMesh() *Mesh {
	m := NewCornellShell()
	mirror := m.AddBSDF(material.NewMirror())
	m.addBox(core.NewPoint3(0.1, -1, -0.6), core.NewPoint3(0.7, 0.2, 0), mirror)
	return m
}

// NewCornellShell creates the empty Cornell box: five walls and the light
func NewCornellShell() *Mesh {
	m := &Mesh{}

	// Albedos keep each channel sum at or below one
	white := m.AddBSDF(mustDiffuse(core.NewColour(0.3, 0.3, 0.3)))
	red := m.AddBSDF(mustDiffuse(core.NewColour(0.65, 0.05, 0.05)))
	green := m.AddBSDF(mustDiffuse(core.NewColour(0.12, 0.45, 0.15)))
	light := m.AddBSDF(material.NewEmitter(core.NewColour(12, 12, 12)))

	// Walls, normals facing into the box
	m.AddQuad(core.NewPoint3(-1, -1, -1), core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0), white) // floor
	m.AddQuad(core.NewPoint3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white)  // ceiling
	m.AddQuad(core.NewPoint3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), white) // back
	m.AddQuad(core.NewPoint3(-1, -1, -1), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2), red)   // left
	m.AddQuad(core.NewPoint3(1, -1, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), green)  // right

	// Ceiling light just below the ceiling, facing down
	m.AddQuad(core.NewPoint3(-0.25, 0.99, -0.25), core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, 0.5), light)

	return m
}

// addBox adds an open-bottomed axis-aligned box with outward normals
func (m *Mesh) addBox(lo, hi core.Point3, bsdf uint32) {
	d := hi.Subtract(lo)
	dx := core.NewVec3(d.X(), 0, 0)
	dy := core.NewVec3(0, d.Y(), 0)
	dz := core.NewVec3(0, 0, d.Z())

	m.AddQuad(core.NewPoint3(lo[0], hi[1], lo[2]), dz, dx, bsdf) // top
	m.AddQuad(core.NewPoint3(lo[0], lo[1], hi[2]), dx, dy, bsdf) // front
	m.AddQuad(lo, dy, dx, bsdf)                                  // back
	m.AddQuad(lo, dz, dy, bsdf)                                  // left
	m.AddQuad(core.NewPoint3(hi[0], lo[1], lo[2]), dy, dz, bsdf) // right
}

func mustDiffuse(albedo core.Colour) *material.Diffuse {
	d, err := material.NewDiffuse(albedo)
	if err != nil {
		panic(err)
	}
	return d
}
