package app

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/pkg/meshio"
	"github.com/philipparndt/meshedit/pkg/watcher"
	"go.uber.org/zap"
)

// setupFileWatcher watches the source file and, for OpenSCAD sources, its dependencies
func (app *App) setupFileWatcher(debounce time.Duration) error {
	files, err := meshio.Dependencies(app.FileWatch.sourceFile)
	if err != nil {
		return fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	fw, err := watcher.NewFileWatcher(debounce, app.log.Named("watch"))
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	app.FileWatch.changed = make(chan struct{}, 1)
	app.FileWatch.loaded = make(chan loadResult, 1)

	callback := func(changedFile string) {
		app.log.Info("file changed", zap.String("path", changedFile))
		select {
		case app.FileWatch.changed <- struct{}{}:
		default:
		}
	}

	if err := fw.Watch(files, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	app.log.Info("watching for changes", zap.Strings("files", files))
	return nil
}

// checkReload starts a background reload when the source changed and the
// session has nothing to lose
func (app *App) checkReload(ctx context.Context) {
	if app.FileWatch.changed == nil {
		return
	}

	select {
	case <-app.FileWatch.changed:
	default:
		return
	}

	if app.FileWatch.isLoading {
		return
	}
	if app.session.HasEdits() {
		app.log.Info("source changed, keeping current edits")
		app.showMessage("source changed on disk; reload skipped because of unsaved edits")
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	app.log.Info("reloading model", zap.String("path", app.FileWatch.sourceFile))

	// Load in background, the GPU upload happens on the main thread
	go func() {
		m, err := meshio.Load(ctx, app.FileWatch.sourceFile)
		app.FileWatch.loaded <- loadResult{mesh: m, err: err}
	}()
}

// applyLoadedModel swaps in a reloaded mesh (must be called on main thread)
func (app *App) applyLoadedModel() {
	if app.FileWatch.loaded == nil {
		return
	}

	var res loadResult
	select {
	case res = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if res.err != nil {
		app.log.Warn("error reloading model", zap.Error(res.err))
		app.showMessage(res.err.Error())
		return
	}
	// edits made while loading win over the file
	if app.session.HasEdits() {
		app.log.Info("discarding reload, session has edits")
		return
	}

	session, err := app.newSession(res.mesh)
	if err != nil {
		app.log.Warn("error reloading model", zap.Error(err))
		app.showMessage(err.Error())
		return
	}

	// Keep the camera where it was, shifted by the change of model center
	oldCenter := app.Model.center
	newCenter := toRL(res.mesh.Bounds().Center())

	app.session = session
	app.Model.revision = session.Revision()
	app.uploadMesh(session.Mesh())
	app.Model.center = newCenter
	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Subtract(newCenter, oldCenter))

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	app.log.Info("model reloaded", zap.Duration("elapsed", elapsed), zap.Int("vertices", res.mesh.VertexCount()))
	app.showMessage(fmt.Sprintf("reloaded in %.2fs", elapsed.Seconds()))
}
