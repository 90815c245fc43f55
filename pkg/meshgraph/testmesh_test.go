package meshgraph

import (
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

func tetrahedron() ([]geometry.Vector3, []mesh.Face) {
	return []geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0),
			geometry.NewVector3(0, 0, 1),
		}, []mesh.Face{
			{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3},
		}
}

// grid returns an n x n vertex grid in the XY plane split into triangles
func grid(n int) ([]geometry.Vector3, []mesh.Face) {
	var points []geometry.Vector3
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			points = append(points, geometry.NewVector3(float64(x), float64(y), 0))
		}
	}
	var faces []mesh.Face
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			i := y*n + x
			faces = append(faces, mesh.Face{i, i + 1, i + n + 1}, mesh.Face{i, i + n + 1, i + n})
		}
	}
	return points, faces
}

// chain returns vertices 0..n-1 on the X axis joined by degenerate faces
func chain(n int) ([]geometry.Vector3, []mesh.Face) {
	points := make([]geometry.Vector3, n)
	for i := range points {
		points[i] = geometry.NewVector3(float64(i), 0, 0)
	}
	faces := make([]mesh.Face, 0, n-1)
	for i := 0; i+1 < n; i++ {
		faces = append(faces, mesh.Face{i, i + 1, i + 1})
	}
	return points, faces
}
