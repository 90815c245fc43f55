package editor

// RGB is an 8-bit colour handed to the viewer.
type RGB struct {
	R, G, B uint8
}

var (
	ColorUnselected = RGB{178, 178, 178}
	ColorSelected   = RGB{255, 0, 0}
	ColorBrush      = RGB{0, 255, 255}
	ColorGeodesic   = RGB{25, 127, 25}

	BackgroundInactive = RGB{0, 0, 255}
	BackgroundTool     = RGB{0, 178, 178}
	BackgroundIdle     = RGB{178, 178, 178}
	BackgroundSaved    = RGB{0, 0, 0}
)

// VertexColors returns one colour per live vertex. In-range vertices take the
// tool colour even when they are also selected.
func (s *Session) VertexColors() []RGB {
	n := s.history.Mesh().VertexCount()
	colors := make([]RGB, n)
	if s.kind != KindEdit {
		for i := range colors {
			colors[i] = ColorUnselected
		}
		return colors
	}

	inRange := ColorBrush
	if s.selection.Mode() == ModeGeodesic {
		inRange = ColorGeodesic
	}
	for i := range colors {
		switch {
		case s.selection.IsInRange(i):
			colors[i] = inRange
		case s.selection.IsSelected(i):
			colors[i] = ColorSelected
		default:
			colors[i] = ColorUnselected
		}
	}
	return colors
}

// Background returns the viewport clear colour, which signals the session state.
func (s *Session) Background() RGB {
	if s.saved {
		return BackgroundSaved
	}
	if s.kind != KindEdit {
		return BackgroundIdle
	}
	if !s.active {
		return BackgroundInactive
	}
	switch s.selection.Mode() {
	case ModeBrushing, ModeGeodesic:
		return BackgroundTool
	default:
		return BackgroundIdle
	}
}
