// Package mesh holds the indexed triangle buffer edited by a session.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// ErrInvalidTopology is returned when a face references a vertex that does not exist.
var ErrInvalidTopology = errors.New("invalid topology")

// Face is a triangle given as three vertex indices
type Face [3]int

// Mesh is an ordered point buffer plus triangular faces indexing into it.
// Vertex ids are positions in Points and stay stable until RemovePoints.
type Mesh struct {
	Points []geometry.Vector3
	Faces  []Face
}

// New creates a mesh and checks that every face index is in range
func New(points []geometry.Vector3, faces []Face) (*Mesh, error) {
	m := &Mesh{Points: points, Faces: faces}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks face indices against the point count
func (m *Mesh) Validate() error {
	n := len(m.Points)
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidTopology, fi, idx, n)
			}
		}
	}
	return nil
}

// Clone returns a deep copy
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Points: make([]geometry.Vector3, len(m.Points)),
		Faces:  make([]Face, len(m.Faces)),
	}
	copy(c.Points, m.Points)
	copy(c.Faces, m.Faces)
	return c
}

// VertexCount returns the number of points
func (m *Mesh) VertexCount() int {
	return len(m.Points)
}

// FaceCount returns the number of triangles
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Triangle returns face i as a geometry.Triangle with a computed normal
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	t := geometry.Triangle{V1: m.Points[f[0]], V2: m.Points[f[1]], V3: m.Points[f[2]]}
	t.Normal = t.CalculateNormal()
	return t
}

// Bounds returns the bounding box of all points
func (m *Mesh) Bounds() geometry.BoundingBox {
	return geometry.BoundsOf(m.Points)
}

// SurfaceArea sums the area of all faces
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Faces {
		total += m.Triangle(i).Area()
	}
	return total
}

// RemovePoints deletes every point whose mask entry is true together with
// every face touching one of them. Surviving points keep their relative
// order and faces are renumbered to the compacted indices.
// It returns the number of points and faces removed.
func (m *Mesh) RemovePoints(mask []bool) (int, int, error) {
	if len(mask) != len(m.Points) {
		return 0, 0, fmt.Errorf("removal mask has %d entries for %d points", len(mask), len(m.Points))
	}

	remap := make([]int, len(m.Points))
	points := make([]geometry.Vector3, 0, len(m.Points))
	for i, p := range m.Points {
		if mask[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(points)
		points = append(points, p)
	}

	faces := make([]Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		faces = append(faces, Face{a, b, c})
	}

	removedPoints := len(m.Points) - len(points)
	removedFaces := len(m.Faces) - len(faces)
	m.Points = points
	m.Faces = faces
	return removedPoints, removedFaces, nil
}

// Equal reports whether both meshes have identical points and faces, index for index
func (m *Mesh) Equal(other *Mesh) bool {
	if len(m.Points) != len(other.Points) || len(m.Faces) != len(other.Faces) {
		return false
	}
	for i := range m.Points {
		if m.Points[i] != other.Points[i] {
			return false
		}
	}
	for i := range m.Faces {
		if m.Faces[i] != other.Faces[i] {
			return false
		}
	}
	return true
}

// Compact drops points no face references, renumbering the faces
func (m *Mesh) Compact() int {
	used := make([]bool, len(m.Points))
	for _, f := range m.Faces {
		used[f[0]], used[f[1]], used[f[2]] = true, true, true
	}
	unused := make([]bool, len(m.Points))
	for i := range used {
		unused[i] = !used[i]
	}
	removed, _, _ := m.RemovePoints(unused)
	return removed
}
