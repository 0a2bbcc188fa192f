package scene

import (
	"github.com/fogleman/fauxgl"
)

// Mesh is an imported triangle mesh. It implements sequence.Object.
type Mesh struct {
	name     string
	hidden   bool
	Source   string
	Geometry *fauxgl.Mesh
	Material *Material
}

// NewMesh creates a visible mesh over geometry.
func NewMesh(name string, geometry *fauxgl.Mesh) *Mesh {
	m := new(Mesh)
	m.name = name
	m.Geometry = geometry
	return m
}

// Name of the mesh.
func (m *Mesh) Name() string {
	return m.name
}

// Hidden reports whether the mesh is hidden.
func (m *Mesh) Hidden() bool {
	return m.hidden
}

// SetHidden shows or hides the mesh.
func (m *Mesh) SetHidden(hidden bool) {
	m.hidden = hidden
}

// Triangles is the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	if m.Geometry == nil {
		return 0
	}
	return len(m.Geometry.Triangles)
}

// Bounds returns the corners of the axis-aligned box around the mesh.
func (m *Mesh) Bounds() (lo, hi fauxgl.Vector) {
	if m.Triangles() == 0 {
		return
	}
	box := m.Geometry.BoundingBox()
	return box.Min, box.Max
}
