package stl

import (
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// Model is a triangle soup as stored in an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Weld turns the soup into an indexed mesh. Corners with bit-identical
// coordinates share one point; points keep first-seen order.
func (m *Model) Weld() *mesh.Mesh {
	out := &mesh.Mesh{
		Points: make([]geometry.Vector3, 0, len(m.Triangles)),
		Faces:  make([]mesh.Face, 0, len(m.Triangles)),
	}
	index := make(map[geometry.Vector3]int, len(m.Triangles))

	lookup := func(v geometry.Vector3) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(out.Points)
		index[v] = i
		out.Points = append(out.Points, v)
		return i
	}

	for _, t := range m.Triangles {
		out.Faces = append(out.Faces, mesh.Face{lookup(t.V1), lookup(t.V2), lookup(t.V3)})
	}
	return out
}
