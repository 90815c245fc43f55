package editor

import (
	"math"
	"testing"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

func TestNewBrushScalesWithMesh(t *testing.T) {
	m := tetrahedron()
	b := NewBrush(m, DefaultBrushSettings())

	// regular tetrahedron: every point is sqrt(3) from the centroid, every edge 2*sqrt(2)
	radius := math.Sqrt(3)
	if math.Abs(b.Radius-radius/1.2) > 1e-12 {
		t.Errorf("Radius failed: expected %v, got %v", radius/1.2, b.Radius)
	}
	if math.Abs(b.Step-radius/20) > 1e-12 {
		t.Errorf("Step failed: expected %v, got %v", radius/20, b.Step)
	}
	if math.Abs(b.Min-math.Sqrt2) > 1e-12 {
		t.Errorf("Min failed: expected %v, got %v", math.Sqrt2, b.Min)
	}
}

func TestBrushDecreaseClamps(t *testing.T) {
	b := Brush{Radius: 1, Step: 0.3, Min: 0.25}

	for i := 0; i < 10; i++ {
		b.Decrease()
		if b.Radius < b.Min {
			t.Fatalf("Decrease failed: radius %v below minimum %v", b.Radius, b.Min)
		}
	}
	if b.Radius != 0.25 {
		t.Errorf("Decrease failed: expected clamp at 0.25, got %v", b.Radius)
	}
	if b.Radius <= 0 {
		t.Error("Decrease failed: radius reached zero")
	}
}

func TestBrushIncreaseUnbounded(t *testing.T) {
	b := Brush{Radius: 1, Step: 1000, Min: 0.1}
	for i := 0; i < 1000; i++ {
		b.Increase()
	}
	if b.Radius != 1+1000*1000 {
		t.Errorf("Increase failed: expected %v, got %v", 1+1000*1000, b.Radius)
	}
}

func TestNewBrushDegenerateEdges(t *testing.T) {
	m := chainMesh(5)
	b := NewBrush(m, DefaultBrushSettings())

	// the chain's faces repeat a vertex, so the shortest edge is zero
	if b.Min != 0.5 {
		t.Errorf("Min failed: expected smallest positive edge fallback 0.5, got %v", b.Min)
	}

	single := &mesh.Mesh{Points: []geometry.Vector3{{X: 1}}}
	b = NewBrush(single, DefaultBrushSettings())
	if b.Min <= 0 || b.Step <= 0 || b.Radius < b.Min {
		t.Errorf("NewBrush failed for single point: %+v", b)
	}
}
