package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/meshgraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EdgeInfo contains information about a distinct mesh edge
type EdgeInfo struct {
	A, B   int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	VertexCount   int
	FaceCount     int
	EdgeCount     int
	Components    int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	MedianRadius  float64
	AllEdges      []EdgeInfo
}

// AnalyzeMesh performs comprehensive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) (*MeasurementResult, error) {
	g, err := meshgraph.FromMesh(m)
	if err != nil {
		return nil, err
	}

	result := &MeasurementResult{
		BoundingBox:  m.Bounds(),
		SurfaceArea:  m.SurfaceArea(),
		VertexCount:  m.VertexCount(),
		FaceCount:    m.FaceCount(),
		EdgeCount:    g.EdgeCount(),
		Components:   len(g.Components()),
		MedianRadius: MedianRadius(m.Points),
		AllEdges:     UniqueEdges(m.Points, g),
	}
	result.Dimensions = result.BoundingBox.Size()

	if len(result.AllEdges) > 0 {
		lengths := make([]float64, len(result.AllEdges))
		for i, e := range result.AllEdges {
			lengths[i] = e.Length
		}
		result.MinEdgeLength = floats.Min(lengths)
		result.MaxEdgeLength = floats.Max(lengths)
		result.AvgEdgeLength = stat.Mean(lengths, nil)
	}

	return result, nil
}

// UniqueEdges lists every graph edge once, lower vertex id first
func UniqueEdges(points []geometry.Vector3, g *meshgraph.Graph) []EdgeInfo {
	edges := make([]EdgeInfo, 0, g.EdgeCount())
	for a := 0; a < g.Len(); a++ {
		for _, b := range g.Neighbors(a) {
			if b <= a {
				continue
			}
			edges = append(edges, EdgeInfo{
				A:      a,
				B:      b,
				Start:  points[a],
				End:    points[b],
				Length: points[a].Distance(points[b]),
			})
		}
	}
	return edges
}

// FaceEdgeLengths returns the three edge lengths of every face, shared
// edges counted once per face
func FaceEdgeLengths(m *mesh.Mesh) []float64 {
	lengths := make([]float64, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			lengths = append(lengths, m.Points[f[k]].Distance(m.Points[f[(k+1)%3]]))
		}
	}
	return lengths
}

// EdgeStats returns the minimum and median face edge length.
// The smallest strictly positive length is also returned for meshes
// carrying degenerate faces.
func EdgeStats(m *mesh.Mesh) (minLength, medianLength, minPositive float64) {
	lengths := FaceEdgeLengths(m)
	if len(lengths) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(lengths)
	minLength = lengths[0]
	medianLength = median(lengths)
	for _, l := range lengths {
		if l > 0 {
			minPositive = l
			break
		}
	}
	return minLength, medianLength, minPositive
}

// Centroid returns the mean of a point set
func Centroid(points []geometry.Vector3) geometry.Vector3 {
	if len(points) == 0 {
		return geometry.Vector3{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return geometry.NewVector3(stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil))
}

// MedianRadius returns the median distance of the points from their centroid
func MedianRadius(points []geometry.Vector3) float64 {
	if len(points) == 0 {
		return 0
	}
	c := Centroid(points)
	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = p.Distance(c)
	}
	sort.Float64s(dist)
	return median(dist)
}

// median of an ascending slice, averaging the middle pair for even lengths
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex returns the index of the point closest to p and its distance.
// The index is -1 for an empty point set.
func FindNearestVertex(points []geometry.Vector3, p geometry.Vector3) (int, float64) {
	nearest := -1
	best := math.Inf(1)
	for i, v := range points {
		if d := p.DistanceSquared(v); d < best {
			best = d
			nearest = i
		}
	}
	if nearest < 0 {
		return -1, math.Inf(1)
	}
	return nearest, math.Sqrt(best)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
