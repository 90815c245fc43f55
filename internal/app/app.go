// Package app is the raylib viewer that drives an editor session from
// mouse and keyboard input.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/internal/batch"
	"github.com/philipparndt/meshedit/internal/config"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"go.uber.org/zap"
)

// Request describes one interactive session.
type Request struct {
	Mesh  *mesh.Mesh
	Kind  editor.Kind
	Saver editor.Saver
	// Source is watched for changes when set
	Source string
	Title  string
}

// Viewer opens a window per session. It implements batch.Editor.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger
}

// NewViewer creates a viewer using the window, brush and watch settings of cfg.
func NewViewer(cfg *config.Config, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{cfg: cfg, log: log}
}

type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState

	session *editor.Session
	req     Request
	cfg     *config.Config
	log     *zap.Logger
}

// Edit runs the session of one batch item.
func (v *Viewer) Edit(ctx context.Context, job batch.Job) error {
	return v.Run(ctx, Request{
		Mesh:  job.Mesh,
		Kind:  job.Kind,
		Saver: job.Saver,
		Title: fmt.Sprintf("%s (%d of %d)", filepath.Base(job.Pair.In.Path()), job.Index+1, job.Total),
	})
}

// Run opens the window and blocks until it is closed or ctx is done.
func (v *Viewer) Run(ctx context.Context, req Request) error {
	app := &App{
		req: req,
		cfg: v.cfg,
		log: v.log,
		View: ViewSettings{
			showBrush: true,
		},
		FileWatch: FileWatchState{
			sourceFile: req.Source,
		},
	}

	session, err := app.newSession(req.Mesh)
	if err != nil {
		return err
	}
	app.session = session

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("meshedit - %s", session.Kind())
	}
	app.UI.title = title
	app.UI.landmarkSize = landmarkSize(v.cfg.Landmarks.Size, req.Mesh)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(v.cfg.Window.Width), int32(v.cfg.Window.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Window.FPS))

	if v.cfg.Watch.Enabled && req.Source != "" {
		if err := app.setupFileWatcher(v.cfg.Watch.Debounce); err != nil {
			v.log.Warn("auto-reload will not be available", zap.Error(err))
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	app.Model.material = rl.LoadMaterialDefault()
	defer rl.UnloadMaterial(app.Model.material)
	app.uploadMesh(session.Mesh())
	defer app.unloadMesh()
	app.initCamera(session.Mesh().Bounds())

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		app.checkReload(ctx)
		app.applyLoadedModel()

		if err := app.handleInput(ctx); err != nil {
			return err
		}
		app.syncMesh()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(background(app.session.Background()))
		rl.BeginMode3D(app.Camera.camera)
		app.drawScene()
		rl.EndMode3D()
		app.drawUI()
		rl.EndDrawing()
	}

	v.log.Info("window closed",
		zap.Bool("saved", app.session.Saved()),
		zap.Int("vertices", app.session.Mesh().VertexCount()),
		zap.Int("landmarks", app.session.Landmarks().Len()))
	return nil
}

func (app *App) newSession(m *mesh.Mesh) (*editor.Session, error) {
	return editor.NewSession(m, editor.Options{
		Kind: app.req.Kind,
		Brush: editor.BrushSettings{
			RadiusDivisor: app.cfg.Brush.RadiusDivisor,
			StepDivisor:   app.cfg.Brush.StepDivisor,
			MinEdgeFactor: app.cfg.Brush.MinEdgeFactor,
		},
		Logger: app.log.Named("session"),
		Saver:  app.req.Saver,
	})
}
