package meshgraph

import (
	"container/heap"
	"context"
	"fmt"
	"math"
)

var inf = math.Inf(1)

// checkEvery is the number of settled vertices between context checks
const checkEvery = 1024

// Field holds single-source shortest-path distances along mesh edges.
// Unreachable vertices have distance +Inf.
type Field struct {
	Source int
	Dist   []float64
}

// Compute runs Dijkstra from source over g. The context is polled between
// settle steps so a long computation can be abandoned.
func Compute(ctx context.Context, g *Graph, source int) (*Field, error) {
	n := g.Len()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: source %d of %d", ErrVertexOutOfRange, source, n)
	}

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = inf
	}
	settled := make([]bool, n)
	dist[source] = 0

	pq := &queue{{vertex: source, dist: 0}}
	count := 0
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		u := item.vertex
		if settled[u] {
			continue
		}
		settled[u] = true

		count++
		if count%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		weights := g.neighborWeights(u)
		for k, v := range g.Neighbors(u) {
			if settled[v] {
				continue
			}
			if d := dist[u] + weights[k]; d < dist[v] {
				dist[v] = d
				heap.Push(pq, queueItem{vertex: v, dist: d})
			}
		}
	}

	return &Field{Source: source, Dist: dist}, nil
}

// MaxFinite returns the largest finite distance, ignoring unreachable vertices
func (f *Field) MaxFinite() float64 {
	longest := 0.0
	for _, d := range f.Dist {
		if !math.IsInf(d, 1) && d > longest {
			longest = d
		}
	}
	return longest
}

// Reachable counts vertices with a finite distance
func (f *Field) Reachable() int {
	count := 0
	for _, d := range f.Dist {
		if !math.IsInf(d, 1) {
			count++
		}
	}
	return count
}

// Within marks every vertex whose distance is strictly below radius
func (f *Field) Within(radius float64) []bool {
	mask := make([]bool, len(f.Dist))
	for i, d := range f.Dist {
		mask[i] = d < radius
	}
	return mask
}

type queueItem struct {
	vertex int
	dist   float64
}

// queue is a min-heap on distance; stale entries are skipped when popped
type queue []queueItem

func (q queue) Len() int            { return len(q) }
func (q queue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
