package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// ModelData holds the GPU copy of the live mesh
type ModelData struct {
	mesh     rl.Mesh
	material rl.Material
	uploaded bool
	revision uint64
	center   rl.Vector3 // Model center
	size     float32    // Model size (max dimension)

	// one entry per uploaded corner
	corners []int
	shade   []float32
	colors  []uint8
	scratch []uint8

	edges      [][2]rl.Vector3 // wireframe, built on demand
	edgesValid bool
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showBrush     bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	pick    geometry.Vector3 // last surface point under the cursor
	hasPick bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string
	fileWatcher      *watcher.FileWatcher
	changed          chan struct{}
	loaded           chan loadResult
	isLoading        bool
	loadingStartTime time.Time
}

type loadResult struct {
	mesh *mesh.Mesh
	err  error
}

// UIState holds UI-related state
type UIState struct {
	title        string
	landmarkSize float32
	message      string
	messageUntil time.Time
}

// marker is the renderer handle stored with each landmark
type marker struct {
	radius float32
	color  rl.Color
}
