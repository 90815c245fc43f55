package editor

import (
	"errors"
	"testing"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

func TestLandmarkAddRemoveLast(t *testing.T) {
	l := NewLandmarkSet(true)
	p1 := geometry.NewVector3(1, 2, 3)
	p2 := geometry.NewVector3(4, 5, 6)

	if err := l.Add(p1, "h1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := l.Add(p2, "h2"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	p, h, err := l.RemoveLast()
	if err != nil {
		t.Fatalf("RemoveLast failed: %v", err)
	}
	if p != p2 || h != "h2" {
		t.Errorf("RemoveLast failed: expected %v/h2, got %v/%v", p2, p, h)
	}

	points := l.Points()
	if len(points) != 1 || points[0] != p1 {
		t.Errorf("RemoveLast failed: expected [%v], got %v", p1, points)
	}
	if l.Handle(0) != "h1" {
		t.Errorf("Handle failed: expected h1, got %v", l.Handle(0))
	}
}

func TestLandmarkEmptyAndInactive(t *testing.T) {
	l := NewLandmarkSet(false)

	if err := l.Add(geometry.Vector3{}, nil); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Add while inactive: expected ErrInvalidMode, got %v", err)
	}
	if _, _, err := l.RemoveLast(); !errors.Is(err, ErrEmptyLandmarkSet) {
		t.Errorf("RemoveLast on empty set: expected ErrEmptyLandmarkSet, got %v", err)
	}

	if !l.Toggle() {
		t.Fatal("Toggle failed: expected placement enabled")
	}
	if err := l.Add(geometry.Vector3{}, nil); err != nil {
		t.Errorf("Add after toggle failed: %v", err)
	}
}

func TestLandmarkOrderPreserved(t *testing.T) {
	l := NewLandmarkSet(true)
	for i := 0; i < 5; i++ {
		_ = l.Add(geometry.NewVector3(float64(i), 0, 0), i)
	}
	for i, p := range l.Points() {
		if p.X != float64(i) {
			t.Errorf("Points failed: expected X=%d at %d, got %v", i, i, p.X)
		}
	}
}
