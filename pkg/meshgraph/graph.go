// Package meshgraph builds the vertex adjacency graph of a triangle mesh and
// computes geodesic (shortest path along edges) distance fields over it.
package meshgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrInvalidTopology is shared with the mesh package so callers can test either.
var ErrInvalidTopology = mesh.ErrInvalidTopology

// ErrVertexOutOfRange is returned for a query vertex outside the graph.
var ErrVertexOutOfRange = errors.New("vertex out of range")

// Graph is an undirected graph with one node per mesh vertex and one edge
// per distinct pair of vertices sharing a face, weighted by Euclidean length.
type Graph struct {
	g *simple.WeightedUndirectedGraph

	// compressed adjacency, neighbours of i are targets[offsets[i]:offsets[i+1]]
	offsets []int
	targets []int
	weights []float64
}

// New builds the graph from a point buffer and face list.
// Repeated indices inside a face produce no self edge.
func New(points []geometry.Vector3, faces []mesh.Face) (*Graph, error) {
	n := len(points)
	g := simple.NewWeightedUndirectedGraph(0, inf)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}

	for fi, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidTopology, fi, idx, n)
			}
		}
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			if a == b {
				continue
			}
			w := points[a].Distance(points[b])
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(a), simple.Node(b), w))
		}
	}

	mg := &Graph{g: g}
	mg.compress(n)
	return mg, nil
}

// FromMesh builds the graph for a mesh buffer
func FromMesh(m *mesh.Mesh) (*Graph, error) {
	return New(m.Points, m.Faces)
}

func (mg *Graph) compress(n int) {
	mg.offsets = make([]int, n+1)
	for i := 0; i < n; i++ {
		nodes := graph.NodesOf(mg.g.From(int64(i)))
		ids := make([]int, len(nodes))
		for k, node := range nodes {
			ids[k] = int(node.ID())
		}
		sort.Ints(ids)
		for _, j := range ids {
			w, _ := mg.g.Weight(int64(i), int64(j))
			mg.targets = append(mg.targets, j)
			mg.weights = append(mg.weights, w)
		}
		mg.offsets[i+1] = len(mg.targets)
	}
}

// Len returns the number of vertices
func (mg *Graph) Len() int {
	return len(mg.offsets) - 1
}

// EdgeCount returns the number of distinct undirected edges
func (mg *Graph) EdgeCount() int {
	return len(mg.targets) / 2
}

// HasEdge reports whether i and j share a face
func (mg *Graph) HasEdge(i, j int) bool {
	if i == j {
		return false
	}
	return mg.g.HasEdgeBetween(int64(i), int64(j))
}

// Weight returns the Euclidean length of edge (i, j)
func (mg *Graph) Weight(i, j int) (float64, bool) {
	if i == j || !mg.HasEdge(i, j) {
		return inf, false
	}
	return mg.g.Weight(int64(i), int64(j))
}

// Neighbors returns the sorted neighbour ids of vertex i.
// The returned slice aliases internal storage and must not be modified.
func (mg *Graph) Neighbors(i int) []int {
	return mg.targets[mg.offsets[i]:mg.offsets[i+1]]
}

func (mg *Graph) neighborWeights(i int) []float64 {
	return mg.weights[mg.offsets[i]:mg.offsets[i+1]]
}

// Components returns the connected components, each sorted by vertex id and
// ordered by their smallest member.
func (mg *Graph) Components() [][]int {
	cc := topo.ConnectedComponents(mg.g)
	out := make([][]int, 0, len(cc))
	for _, nodes := range cc {
		ids := make([]int, len(nodes))
		for k, node := range nodes {
			ids[k] = int(node.ID())
		}
		sort.Ints(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}

// Underlying exposes the gonum graph for algorithms in gonum/graph/path and friends
func (mg *Graph) Underlying() graph.WeightedUndirected {
	return mg.g
}
