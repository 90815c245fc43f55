package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/pkg/geometry"
)

// maxPitch keeps the orbit camera off the poles where the up vector degenerates
const maxPitch = math.Pi/2 - 0.01

// initCamera frames the bounding box and looks down the Z axis
func (app *App) initCamera(bbox geometry.BoundingBox) {
	center := bbox.Center()
	distance := float32(math.Max(bbox.MaxDimension(), 1e-3) * 2.0)

	app.Model.center = toRL(center)
	app.Model.size = float32(bbox.MaxDimension())

	app.Camera.target = app.Model.center
	app.Camera.distance = distance
	app.Camera.defaultDist = distance
	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: app.Model.center.X, Y: app.Model.center.Y, Z: app.Model.center.Z + distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.setCameraXYView()
	app.updateCamera()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Model.center
}

// setCameraXYView looks along -Z with Y up
func (app *App) setCameraXYView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.defaultAngleX = 0
	app.Camera.defaultAngleY = 0
	app.Camera.target = app.Model.center
}

// setCameraXZView looks down onto the XZ plane
func (app *App) setCameraXZView() {
	app.Camera.angleX = maxPitch
	app.Camera.angleY = 0
	app.Camera.target = app.Model.center
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doOrbit rotates the camera around its target based on mouse delta
func (app *App) doOrbit(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * 0.01
	app.Camera.angleX += delta.Y * 0.01
	app.Camera.angleX = float32(math.Max(-maxPitch, math.Min(maxPitch, float64(app.Camera.angleX))))
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}

// doZoom scales the camera distance by the wheel movement
func (app *App) doZoom(wheel float32) {
	app.Camera.distance *= 1 - wheel*0.1
	minDist := app.Camera.defaultDist * 0.01
	if app.Camera.distance < minDist {
		app.Camera.distance = minDist
	}
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRL(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
