package app

import (
	"context"
	"errors"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"go.uber.org/zap"
)

// keyBindings maps keyboard keys to editor actions
var keyBindings = []struct {
	key    int32
	action editor.Key
}{
	{rl.KeyT, editor.KeyToggle},
	{rl.KeyI, editor.KeyInvert},
	{rl.KeyDelete, editor.KeyDelete},
	{rl.KeyF, editor.KeyDeleteInverse},
	{rl.KeyTwo, editor.KeyIncrease},
	{rl.KeyOne, editor.KeyDecrease},
	{rl.KeyZ, editor.KeyUndo},
	{rl.KeyG, editor.KeyGeodesic},
	{rl.KeyA, editor.KeySave},
}

// handleInput turns this frame's input into camera moves and editor events.
// Only context errors are returned; failed actions are shown in the HUD.
func (app *App) handleInput(ctx context.Context) error {
	mousePos := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	// View shortcuts work in every state
	if rl.IsKeyPressed(rl.KeyY) {
		app.setCameraXZView()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.View.showBrush = !app.View.showBrush
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) && (delta.X != 0 || delta.Y != 0) {
		app.doPan(delta)
	}

	pos, hit := app.pickSurface(mousePos)
	if hit {
		app.Interaction.pick = pos
		app.Interaction.hasPick = true
	}

	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			ev := editor.Event{Kind: editor.EventKey, Key: b.action, Pos: app.Interaction.pick}
			if err := app.dispatch(ctx, ev); err != nil {
				return err
			}
		}
	}

	if !app.session.Active() {
		// pointer drives the camera
		if rl.IsMouseButtonDown(rl.MouseLeftButton) && (delta.X != 0 || delta.Y != 0) {
			app.doOrbit(delta)
		}
		return nil
	}

	if hit && (delta.X != 0 || delta.Y != 0) {
		if err := app.dispatch(ctx, editor.Event{Kind: editor.EventPointerMoved, Pos: pos}); err != nil {
			return err
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if app.session.Kind() == editor.KindLandmark {
			// landmarks only land on the surface
			if !hit {
				return nil
			}
			return app.dispatch(ctx, editor.Event{Kind: editor.EventLeftClick, Pos: pos, Handle: app.newMarker()})
		}
		return app.dispatch(ctx, editor.Event{Kind: editor.EventLeftClick, Pos: app.Interaction.pick})
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		return app.dispatch(ctx, editor.Event{Kind: editor.EventRightClick, Pos: app.Interaction.pick})
	}

	// right drag orbits while placing landmarks
	if app.session.Kind() == editor.KindLandmark && rl.IsMouseButtonDown(rl.MouseRightButton) {
		app.doOrbit(delta)
	}
	return nil
}

// pointPickTolerance is how far a ray may pass a point, relative to the model size
const pointPickTolerance = 0.02

// pickSurface casts a ray from the cursor and returns the first mesh hit.
// Meshes left without faces are drawn as points and picked by the point
// closest to the camera near the ray.
func (app *App) pickSurface(mousePos rl.Vector2) (geometry.Vector3, bool) {
	ray := rl.GetScreenToWorldRay(mousePos, app.Camera.camera)
	if m := app.session.Mesh(); m.FaceCount() == 0 {
		tolerance := float64(app.Model.size) * pointPickTolerance
		i, ok := nearestToRay(m.Points, fromRL(ray.Position), fromRL(ray.Direction), tolerance)
		if !ok {
			return geometry.Vector3{}, false
		}
		return m.Points[i], true
	}
	if !app.Model.uploaded {
		return geometry.Vector3{}, false
	}
	collision := rl.GetRayCollisionMesh(ray, app.Model.mesh, rl.MatrixIdentity())
	if !collision.Hit {
		return geometry.Vector3{}, false
	}
	return fromRL(collision.Point), true
}

// nearestToRay returns the point in front of origin that lies within
// tolerance of the ray and is closest to origin along it.
func nearestToRay(points []geometry.Vector3, origin, dir geometry.Vector3, tolerance float64) (int, bool) {
	dir = dir.Normalize()
	best, bestT := -1, math.Inf(1)
	for i, p := range points {
		v := p.Sub(origin)
		t := v.Dot(dir)
		if t < 0 || t >= bestT {
			continue
		}
		if v.Sub(dir.Mul(t)).Length() <= tolerance {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}

// dispatch forwards an event to the session and reports failures in the HUD
func (app *App) dispatch(ctx context.Context, ev editor.Event) error {
	err := app.session.HandleEvent(ctx, ev)
	if err == nil {
		if ev.Kind == editor.EventKey && ev.Key == editor.KeySave {
			app.showMessage("saved")
		}
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	app.log.Warn("action failed", zap.Stringer("event", ev.Kind), zap.Stringer("key", ev.Key), zap.Error(err))
	app.showMessage(err.Error())
	return nil
}
