package editor

import (
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// tetrahedron is regular, centred on the origin, with edge length 2*sqrt(2)
func tetrahedron() *mesh.Mesh {
	return &mesh.Mesh{
		Points: []geometry.Vector3{
			geometry.NewVector3(1, 1, 1),
			geometry.NewVector3(1, -1, -1),
			geometry.NewVector3(-1, 1, -1),
			geometry.NewVector3(-1, -1, 1),
		},
		Faces: []mesh.Face{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
	}
}

// chainMesh returns vertices 0..n-1 one unit apart on the X axis, joined by
// degenerate faces so that the only edges are (i, i+1)
func chainMesh(n int) *mesh.Mesh {
	m := &mesh.Mesh{Points: make([]geometry.Vector3, n)}
	for i := range m.Points {
		m.Points[i] = geometry.NewVector3(float64(i), 0, 0)
	}
	for i := 0; i+1 < n; i++ {
		m.Faces = append(m.Faces, mesh.Face{i, i + 1, i + 1})
	}
	return m
}

// grid returns an n x n vertex grid with unit spacing in the XY plane
func grid(n int) *mesh.Mesh {
	m := &mesh.Mesh{}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			m.Points = append(m.Points, geometry.NewVector3(float64(x), float64(y), 0))
		}
	}
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			i := y*n + x
			m.Faces = append(m.Faces, mesh.Face{i, i + 1, i + n + 1}, mesh.Face{i, i + n + 1, i + n})
		}
	}
	return m
}
