package editor

import (
	"fmt"

	"github.com/philipparndt/meshedit/pkg/mesh"
)

// History owns the live mesh and a log of deletion masks. Undo rebuilds the
// mesh by replaying the log against a pristine copy taken at construction,
// so memory grows with the number of edits rather than with mesh snapshots.
type History struct {
	pristine *mesh.Mesh
	live     *mesh.Mesh
	frames   [][]bool
}

// NewHistory takes ownership of m as the live mesh and keeps a deep copy as
// the replay base.
func NewHistory(m *mesh.Mesh) *History {
	return &History{pristine: m.Clone(), live: m}
}

// Mesh returns the live mesh.
func (h *History) Mesh() *mesh.Mesh {
	return h.live
}

// Depth returns the number of recorded deletions.
func (h *History) Depth() int {
	return len(h.frames)
}

// DeleteSelected removes the marked vertices and every face touching them
// from the live mesh and records the mask. An empty mask records nothing.
func (h *History) DeleteSelected(mask []bool) (removedPoints, removedFaces int, err error) {
	if len(mask) != h.live.VertexCount() {
		return 0, 0, fmt.Errorf("%w: deletion mask has %d entries for %d vertices", ErrMaskLength, len(mask), h.live.VertexCount())
	}
	if countMask(mask) == 0 {
		return 0, 0, nil
	}

	frame := cloneMask(mask)
	removedPoints, removedFaces, err = h.live.RemovePoints(frame)
	if err != nil {
		return 0, 0, err
	}
	h.frames = append(h.frames, frame)
	return removedPoints, removedFaces, nil
}

// Undo discards the latest deletion, rebuilds the live mesh from the
// remaining frames and returns the discarded mask, which is expressed in the
// index space of the rebuilt mesh.
func (h *History) Undo() ([]bool, error) {
	if len(h.frames) == 0 {
		return nil, ErrEmptyUndoStack
	}

	last := h.frames[len(h.frames)-1]
	h.frames = h.frames[:len(h.frames)-1]

	rebuilt, err := h.Replay(len(h.frames))
	if err != nil {
		return nil, err
	}
	h.live = rebuilt
	return last, nil
}

// Replay applies the first n frames in order to a fresh copy of the pristine mesh.
func (h *History) Replay(n int) (*mesh.Mesh, error) {
	if n < 0 || n > len(h.frames) {
		return nil, fmt.Errorf("replay of %d frames out of %d", n, len(h.frames))
	}
	m := h.pristine.Clone()
	for i := 0; i < n; i++ {
		if _, _, err := m.RemovePoints(h.frames[i]); err != nil {
			return nil, fmt.Errorf("replaying frame %d: %w", i, err)
		}
	}
	return m, nil
}
