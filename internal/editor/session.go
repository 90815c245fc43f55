// Package editor is the interactive mesh editing core: brush and geodesic
// vertex selection, deletion with undo, and landmark placement. It has no
// rendering dependency; a viewer forwards input as events and reads back
// colours and the live mesh.
package editor

import (
	"context"
	"fmt"
	"math"

	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/meshgraph"
	"go.uber.org/zap"
)

// Kind is what a session produces: a cleaned mesh or a landmark list.
type Kind int

const (
	KindEdit Kind = iota
	KindLandmark
)

func (k Kind) String() string {
	switch k {
	case KindEdit:
		return "edit"
	case KindLandmark:
		return "landmark"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Saver persists the result of a session.
type Saver interface {
	SaveMesh(m *mesh.Mesh) error
	SaveLandmarks(points []geometry.Vector3) error
}

// Options configure a session.
type Options struct {
	Kind   Kind
	Brush  BrushSettings
	Logger *zap.Logger
	Saver  Saver
}

// Session holds all editing state for one mesh. Every method runs to
// completion on the caller's goroutine; a session must not be shared.
type Session struct {
	kind  Kind
	log   *zap.Logger
	saver Saver

	history   *History
	selection *Selection
	landmarks *LandmarkSet
	brush     Brush

	// graph is rebuilt lazily after topology changes
	graph *meshgraph.Graph
	field *meshgraph.Field
	// brush radius to restore when geodesic selection is cancelled
	radiusBeforeGeodesic float64

	active   bool
	pick     geometry.Vector3
	hasPick  bool
	revision uint64
	saved    bool
}

// NewSession starts editing m. The session takes ownership of m. A face
// referencing a missing vertex fails with meshgraph.ErrInvalidTopology.
func NewSession(m *mesh.Mesh, opts Options) (*Session, error) {
	g, err := meshgraph.FromMesh(m)
	if err != nil {
		return nil, fmt.Errorf("building adjacency graph: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		kind:      opts.Kind,
		log:       log,
		saver:     opts.Saver,
		history:   NewHistory(m),
		selection: NewSelection(m.VertexCount()),
		landmarks: NewLandmarkSet(opts.Kind == KindLandmark),
		brush:     NewBrush(m, opts.Brush),
		graph:     g,
		active:    opts.Kind == KindEdit,
	}

	s.log.Info("session started",
		zap.Stringer("kind", s.kind),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()),
		zap.Float64("radius", s.brush.Radius),
		zap.Float64("minRadius", s.brush.Min))
	return s, nil
}

// Kind returns what the session produces.
func (s *Session) Kind() Kind { return s.kind }

// Mesh returns the live mesh. Callers must not modify it.
func (s *Session) Mesh() *mesh.Mesh { return s.history.Mesh() }

// Revision increases whenever the live mesh topology changes.
func (s *Session) Revision() uint64 { return s.revision }

// Selection exposes the selection state for inspection.
func (s *Session) Selection() *Selection { return s.selection }

// Landmarks exposes the landmark list for inspection.
func (s *Session) Landmarks() *LandmarkSet { return s.landmarks }

// Brush returns the current brush.
func (s *Session) Brush() Brush { return s.brush }

// UndoDepth returns the number of deletions that can be undone.
func (s *Session) UndoDepth() int { return s.history.Depth() }

// Saved reports whether the last action was a successful save.
func (s *Session) Saved() bool { return s.saved }

// Active reports whether pointer input drives the editor rather than the
// camera: selection tools in an edit session, placement in a landmark session.
func (s *Session) Active() bool {
	if s.kind == KindLandmark {
		return s.landmarks.Active()
	}
	return s.active
}

// HasEdits reports whether reloading the source would lose work.
func (s *Session) HasEdits() bool {
	return s.history.Depth() > 0 || s.landmarks.Len() > 0 || s.selection.SelectedCount() > 0
}

// HandleEvent dispatches one input event. Mode violations and operations on
// empty collections are logged and dropped; other errors are returned.
func (s *Session) HandleEvent(ctx context.Context, ev Event) error {
	if ev.Kind != EventPointerMoved && !(ev.Kind == EventKey && ev.Key == KeySave) {
		s.saved = false
	}

	var err error
	switch ev.Kind {
	case EventPointerMoved:
		err = s.PointerMoved(ev.Pos)
	case EventLeftClick:
		if s.kind == KindLandmark {
			err = s.PlaceLandmark(ev.Pos, ev.Handle)
		} else {
			err = s.LeftClick(ev.Pos)
		}
	case EventRightClick:
		err = s.RightClick(ev.Pos)
	case EventKey:
		err = s.KeyPressed(ctx, ev.Key, ev.Pos)
	default:
		err = fmt.Errorf("%w: unknown event %s", ErrInvalidMode, ev.Kind)
	}

	if err != nil && recoverable(err) {
		s.log.Debug("event ignored", zap.Stringer("event", ev.Kind), zap.Stringer("key", ev.Key), zap.Error(err))
		return nil
	}
	return err
}

// PointerMoved refreshes the in-range set. While brushing it also commits.
// Geodesic mode keeps its field until the next click.
func (s *Session) PointerMoved(pos geometry.Vector3) error {
	s.setPick(pos)
	if s.kind != KindEdit || !s.active {
		return nil
	}

	switch s.selection.Mode() {
	case ModeNone:
		s.updateInRange()
	case ModeBrushing:
		s.updateInRange()
		return s.selection.Commit()
	case ModeGeodesic:
	}
	return nil
}

// LeftClick starts selecting, stops brushing, or accepts a geodesic selection.
func (s *Session) LeftClick(pos geometry.Vector3) error {
	if s.kind == KindLandmark {
		return s.PlaceLandmark(pos, nil)
	}

	switch s.selection.Mode() {
	case ModeNone:
		return s.startBrushing(Select, pos)
	case ModeBrushing:
		s.selection.ExitMode()
		return nil
	case ModeGeodesic:
		s.acceptGeodesic()
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, s.selection.Mode())
	}
}

// RightClick starts deselecting, stops brushing, or cancels a geodesic selection.
func (s *Session) RightClick(pos geometry.Vector3) error {
	if s.kind != KindEdit {
		return fmt.Errorf("%w: right click in %s session", ErrInvalidMode, s.kind)
	}

	switch s.selection.Mode() {
	case ModeNone:
		return s.startBrushing(Deselect, pos)
	case ModeBrushing:
		s.selection.ExitMode()
		return nil
	case ModeGeodesic:
		s.cancelGeodesic()
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, s.selection.Mode())
	}
}

// KeyPressed runs the action bound to key. pos is the current pick position.
func (s *Session) KeyPressed(ctx context.Context, key Key, pos geometry.Vector3) error {
	switch key {
	case KeyToggle:
		s.Toggle()
		return nil
	case KeyInvert:
		return s.Invert()
	case KeyDelete:
		if s.kind == KindLandmark {
			_, _, err := s.RemoveLastLandmark()
			return err
		}
		return s.DeleteSelected()
	case KeyDeleteInverse:
		return s.DeleteInverse()
	case KeyIncrease:
		return s.IncreaseRadius()
	case KeyDecrease:
		return s.DecreaseRadius()
	case KeyUndo:
		return s.Undo()
	case KeyGeodesic:
		return s.EnterGeodesic(ctx, pos)
	case KeySave:
		return s.Save()
	default:
		return fmt.Errorf("%w: unknown key %s", ErrInvalidMode, key)
	}
}

// Toggle switches pointer input between the editor and the camera.
// Turning selection off abandons any running tool.
func (s *Session) Toggle() {
	if s.kind == KindLandmark {
		s.landmarks.Toggle()
		return
	}
	s.active = !s.active
	if !s.active {
		s.exitTool()
	}
	s.log.Debug("selection toggled", zap.Bool("active", s.active))
}

// Invert complements the selection.
func (s *Session) Invert() error {
	if err := s.requireEdit("invert"); err != nil {
		return err
	}
	s.selection.Invert()
	return nil
}

// DeleteSelected removes the selected vertices and records an undo frame.
func (s *Session) DeleteSelected() error {
	if err := s.requireEdit("delete"); err != nil {
		return err
	}
	s.exitTool()

	removedPoints, removedFaces, err := s.history.DeleteSelected(s.selection.Selected())
	if err != nil {
		return err
	}
	if removedPoints == 0 {
		s.log.Debug("delete with empty selection")
		return nil
	}

	s.selection.Reset(s.history.Mesh().VertexCount())
	s.topologyChanged()
	s.log.Info("deleted selection",
		zap.Int("points", removedPoints),
		zap.Int("faces", removedFaces),
		zap.Int("remaining", s.history.Mesh().VertexCount()),
		zap.Int("undoDepth", s.history.Depth()))
	return nil
}

// DeleteInverse keeps only the selected vertices.
func (s *Session) DeleteInverse() error {
	if err := s.Invert(); err != nil {
		return err
	}
	return s.DeleteSelected()
}

// Undo restores the mesh as it was before the latest deletion, with the
// deleted vertices selected.
func (s *Session) Undo() error {
	if err := s.requireEdit("undo"); err != nil {
		return err
	}
	s.exitTool()

	mask, err := s.history.Undo()
	if err != nil {
		return err
	}

	s.selection.Reset(len(mask))
	if err := s.selection.SetSelected(mask); err != nil {
		return err
	}
	s.topologyChanged()
	s.log.Info("undo",
		zap.Int("vertices", s.history.Mesh().VertexCount()),
		zap.Int("restored", countMask(mask)),
		zap.Int("undoDepth", s.history.Depth()))
	return nil
}

// IncreaseRadius grows the tool radius by one step.
func (s *Session) IncreaseRadius() error {
	if err := s.requireActiveEdit("increase radius"); err != nil {
		return err
	}
	s.brush.Increase()
	s.updateInRange()
	return nil
}

// DecreaseRadius shrinks the tool radius by one step down to the minimum.
func (s *Session) DecreaseRadius() error {
	if err := s.requireActiveEdit("decrease radius"); err != nil {
		return err
	}
	s.brush.Decrease()
	s.updateInRange()
	return nil
}

// EnterGeodesic computes shortest path distances from the vertex nearest to
// pos and marks its whole connected component as in range. Calling it again
// while already in geodesic mode moves the source.
func (s *Session) EnterGeodesic(ctx context.Context, pos geometry.Vector3) error {
	if err := s.requireEdit("geodesic selection"); err != nil {
		return err
	}
	if s.selection.Mode() == ModeBrushing {
		return fmt.Errorf("%w: cannot start geodesic selection while brushing", ErrInvalidMode)
	}

	s.setPick(pos)
	m := s.history.Mesh()
	source, _ := analysis.FindNearestVertex(m.Points, pos)
	if source < 0 {
		return fmt.Errorf("%w: mesh has no vertices", ErrInvalidMode)
	}

	if s.graph == nil {
		g, err := meshgraph.FromMesh(m)
		if err != nil {
			return fmt.Errorf("building adjacency graph: %w", err)
		}
		s.graph = g
	}

	field, err := meshgraph.Compute(ctx, s.graph, source)
	if err != nil {
		return fmt.Errorf("computing geodesic distances: %w", err)
	}

	if s.selection.Mode() == ModeNone {
		s.radiusBeforeGeodesic = s.brush.Radius
	}
	if err := s.selection.EnterMode(ModeGeodesic); err != nil {
		return err
	}
	s.field = field
	// strict in-range test, so step just past the farthest reachable vertex
	s.brush.Radius = math.Nextafter(field.MaxFinite(), math.Inf(1))
	s.updateInRange()

	s.log.Info("geodesic selection",
		zap.Int("source", source),
		zap.Float64("radius", field.MaxFinite()),
		zap.Int("reachable", field.Reachable()))
	return nil
}

// PlaceLandmark appends a landmark while placement is enabled.
func (s *Session) PlaceLandmark(pos geometry.Vector3, handle any) error {
	if s.kind != KindLandmark {
		return fmt.Errorf("%w: landmarks in %s session", ErrInvalidMode, s.kind)
	}
	if err := s.landmarks.Add(pos, handle); err != nil {
		return err
	}
	s.log.Debug("landmark placed", zap.Int("index", s.landmarks.Len()-1))
	return nil
}

// RemoveLastLandmark drops the most recent landmark and returns it with its handle.
func (s *Session) RemoveLastLandmark() (geometry.Vector3, any, error) {
	if s.kind != KindLandmark {
		return geometry.Vector3{}, nil, fmt.Errorf("%w: landmarks in %s session", ErrInvalidMode, s.kind)
	}
	return s.landmarks.RemoveLast()
}

// Save hands the result to the configured saver.
func (s *Session) Save() error {
	if s.saver == nil {
		return ErrNoDestination
	}

	var err error
	switch s.kind {
	case KindEdit:
		err = s.saver.SaveMesh(s.history.Mesh())
	case KindLandmark:
		err = s.saver.SaveLandmarks(s.landmarks.Points())
	default:
		err = fmt.Errorf("%w: unknown session kind %s", ErrInvalidMode, s.kind)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s result: %w", s.kind, err)
	}

	s.saved = true
	s.log.Info("saved", zap.Stringer("kind", s.kind))
	return nil
}

func (s *Session) startBrushing(t BrushSelectionType, pos geometry.Vector3) error {
	if !s.active {
		return fmt.Errorf("%w: selection is toggled off", ErrInvalidMode)
	}
	s.selection.SetType(t)
	if err := s.selection.EnterMode(ModeBrushing); err != nil {
		return err
	}
	s.setPick(pos)
	s.updateInRange()
	return s.selection.Commit()
}

// acceptGeodesic adds the component to the selection and resizes the brush
// to the spread of what was just selected.
func (s *Session) acceptGeodesic() {
	s.selection.Union()

	points := s.history.Mesh().Points
	var inRange []geometry.Vector3
	for i, p := range points {
		if s.selection.IsInRange(i) {
			inRange = append(inRange, p)
		}
	}
	s.brush.Set(analysis.MedianRadius(inRange))
	s.field = nil
	s.selection.ExitMode()
	s.log.Debug("geodesic selection accepted", zap.Int("vertices", len(inRange)), zap.Float64("radius", s.brush.Radius))
}

func (s *Session) cancelGeodesic() {
	s.brush.Radius = s.radiusBeforeGeodesic
	s.field = nil
	s.selection.ExitMode()
}

// exitTool leaves any running tool without committing.
func (s *Session) exitTool() {
	if s.selection.Mode() == ModeGeodesic {
		s.cancelGeodesic()
		return
	}
	s.selection.ExitMode()
}

func (s *Session) topologyChanged() {
	s.graph = nil
	s.field = nil
	s.revision++
}

func (s *Session) setPick(pos geometry.Vector3) {
	s.pick = pos
	s.hasPick = true
}

func (s *Session) updateInRange() {
	var mask []bool
	switch s.selection.Mode() {
	case ModeGeodesic:
		if s.field == nil {
			return
		}
		mask = s.field.Within(s.brush.Radius)
	default:
		if !s.hasPick {
			return
		}
		points := s.history.Mesh().Points
		mask = make([]bool, len(points))
		r2 := s.brush.Radius * s.brush.Radius
		for i, p := range points {
			mask[i] = p.DistanceSquared(s.pick) < r2
		}
	}
	// lengths always match the live mesh
	_ = s.selection.SetInRange(mask)
}

func (s *Session) requireEdit(op string) error {
	if s.kind != KindEdit {
		return fmt.Errorf("%w: %s in %s session", ErrInvalidMode, op, s.kind)
	}
	return nil
}

func (s *Session) requireActiveEdit(op string) error {
	if err := s.requireEdit(op); err != nil {
		return err
	}
	if !s.active {
		return fmt.Errorf("%w: %s with selection toggled off", ErrInvalidMode, op)
	}
	return nil
}
