package editor

import "fmt"

// VertexSelectionMode selects the algorithm deciding which vertices are in range.
type VertexSelectionMode int

const (
	// ModeNone previews the brush without changing the selection.
	ModeNone VertexSelectionMode = iota
	// ModeBrushing applies the brush to the selection on every pointer move.
	ModeBrushing
	// ModeGeodesic marks vertices by shortest path distance from a source vertex.
	ModeGeodesic
)

func (m VertexSelectionMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeBrushing:
		return "brushing"
	case ModeGeodesic:
		return "geodesic"
	default:
		return fmt.Sprintf("VertexSelectionMode(%d)", int(m))
	}
}

// BrushSelectionType decides whether the in-range set is added or removed.
type BrushSelectionType int

const (
	Select BrushSelectionType = iota
	Deselect
)

func (t BrushSelectionType) String() string {
	switch t {
	case Select:
		return "select"
	case Deselect:
		return "deselect"
	default:
		return fmt.Sprintf("BrushSelectionType(%d)", int(t))
	}
}

// Selection tracks the persisted selection, the transient in-range set and
// the active tool. Both masks are indexed by vertex id.
type Selection struct {
	selected  []bool
	inRange   []bool
	mode      VertexSelectionMode
	brushType BrushSelectionType
}

// NewSelection returns an empty selection over n vertices.
func NewSelection(n int) *Selection {
	return &Selection{
		selected:  make([]bool, n),
		inRange:   make([]bool, n),
		brushType: Deselect,
	}
}

// Len returns the vertex count the masks cover.
func (s *Selection) Len() int { return len(s.selected) }

// Mode returns the active tool mode.
func (s *Selection) Mode() VertexSelectionMode { return s.mode }

// Type returns the brush selection type.
func (s *Selection) Type() BrushSelectionType { return s.brushType }

// SetType changes whether commits add or remove vertices.
func (s *Selection) SetType(t BrushSelectionType) { s.brushType = t }

// IsSelected reports whether vertex i is selected.
func (s *Selection) IsSelected(i int) bool { return s.selected[i] }

// IsInRange reports whether vertex i is inside the tool's influence region.
func (s *Selection) IsInRange(i int) bool { return s.inRange[i] }

// Selected returns a copy of the selection mask.
func (s *Selection) Selected() []bool { return cloneMask(s.selected) }

// InRange returns a copy of the in-range mask.
func (s *Selection) InRange() []bool { return cloneMask(s.inRange) }

// SelectedCount returns the number of selected vertices.
func (s *Selection) SelectedCount() int { return countMask(s.selected) }

// InRangeCount returns the number of in-range vertices.
func (s *Selection) InRangeCount() int { return countMask(s.inRange) }

// SetInRange replaces the in-range mask.
func (s *Selection) SetInRange(mask []bool) error {
	if len(mask) != len(s.inRange) {
		return fmt.Errorf("%w: in-range mask has %d entries for %d vertices", ErrMaskLength, len(mask), len(s.inRange))
	}
	copy(s.inRange, mask)
	return nil
}

// SetSelected replaces the selection mask.
func (s *Selection) SetSelected(mask []bool) error {
	if len(mask) != len(s.selected) {
		return fmt.Errorf("%w: selection mask has %d entries for %d vertices", ErrMaskLength, len(mask), len(s.selected))
	}
	copy(s.selected, mask)
	return nil
}

// Commit folds the in-range set into the selection: union for Select,
// subtraction for Deselect. Only legal while brushing.
func (s *Selection) Commit() error {
	if s.mode != ModeBrushing {
		return fmt.Errorf("%w: commit in %s mode", ErrInvalidMode, s.mode)
	}
	s.apply(s.brushType)
	return nil
}

// Union adds the in-range set to the selection regardless of mode.
func (s *Selection) Union() {
	s.apply(Select)
}

func (s *Selection) apply(t BrushSelectionType) {
	for i, in := range s.inRange {
		if !in {
			continue
		}
		switch t {
		case Select:
			s.selected[i] = true
		case Deselect:
			s.selected[i] = false
		}
	}
}

// Invert complements the selection.
func (s *Selection) Invert() {
	for i := range s.selected {
		s.selected[i] = !s.selected[i]
	}
}

// EnterMode switches to a tool mode. Brushing can only be entered from
// None; Geodesic can be entered from None or re-entered from Geodesic.
// Entering None is the same as ExitMode.
func (s *Selection) EnterMode(mode VertexSelectionMode) error {
	switch mode {
	case ModeNone:
		s.ExitMode()
		return nil
	case ModeBrushing:
		if s.mode != ModeNone {
			return fmt.Errorf("%w: cannot start brushing from %s mode", ErrInvalidMode, s.mode)
		}
	case ModeGeodesic:
		if s.mode == ModeBrushing {
			return fmt.Errorf("%w: cannot start geodesic selection while brushing", ErrInvalidMode)
		}
	default:
		return fmt.Errorf("%w: unknown mode %s", ErrInvalidMode, mode)
	}
	s.mode = mode
	return nil
}

// ExitMode returns to None and clears the in-range set.
func (s *Selection) ExitMode() {
	s.mode = ModeNone
	clearMask(s.inRange)
}

// Reset clears both masks over a new vertex count. The mode is kept.
func (s *Selection) Reset(n int) {
	s.selected = make([]bool, n)
	s.inRange = make([]bool, n)
}

func cloneMask(mask []bool) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)
	return out
}

func countMask(mask []bool) int {
	n := 0
	for _, v := range mask {
		if v {
			n++
		}
	}
	return n
}

func clearMask(mask []bool) {
	for i := range mask {
		mask[i] = false
	}
}
