package editor

import (
	"fmt"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// LandmarkSet is an ordered list of placed points. Each point carries an
// opaque handle owned by the renderer, returned on removal and otherwise
// never touched.
type LandmarkSet struct {
	active  bool
	points  []geometry.Vector3
	handles []any
}

// NewLandmarkSet returns an empty set with placement enabled or disabled.
func NewLandmarkSet(active bool) *LandmarkSet {
	return &LandmarkSet{active: active}
}

// Active reports whether placement is enabled.
func (l *LandmarkSet) Active() bool { return l.active }

// Toggle flips placement mode and returns the new state.
func (l *LandmarkSet) Toggle() bool {
	l.active = !l.active
	return l.active
}

// Len returns the number of landmarks.
func (l *LandmarkSet) Len() int { return len(l.points) }

// Add appends a landmark. Only legal while placement is enabled.
func (l *LandmarkSet) Add(p geometry.Vector3, handle any) error {
	if !l.active {
		return fmt.Errorf("%w: landmark placement is disabled", ErrInvalidMode)
	}
	l.points = append(l.points, p)
	l.handles = append(l.handles, handle)
	return nil
}

// RemoveLast pops the most recent landmark and its handle.
func (l *LandmarkSet) RemoveLast() (geometry.Vector3, any, error) {
	n := len(l.points)
	if n == 0 {
		return geometry.Vector3{}, nil, ErrEmptyLandmarkSet
	}
	p, h := l.points[n-1], l.handles[n-1]
	l.points = l.points[:n-1]
	l.handles = l.handles[:n-1]
	return p, h, nil
}

// Points returns the landmarks in placement order.
func (l *LandmarkSet) Points() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(l.points))
	copy(out, l.points)
	return out
}

// Handle returns the renderer handle of landmark i.
func (l *LandmarkSet) Handle(i int) any {
	return l.handles[i]
}
