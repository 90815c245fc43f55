package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/meshio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job is one interactive session handed to an Editor.
type Job struct {
	Index int
	Total int
	Kind  editor.Kind
	Pair  Pair
	Mesh  *mesh.Mesh
	Saver editor.Saver
}

// Editor runs one interactive session and returns when the user is done
// with the mesh.
type Editor interface {
	Edit(ctx context.Context, job Job) error
}

// LoadFunc reads a source mesh.
type LoadFunc func(ctx context.Context, path string) (*mesh.Mesh, error)

// Failure records a file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Report summarises a batch run.
type Report struct {
	Processed []string
	Failed    []Failure
}

// Err combines all per-file errors, or nil.
func (r Report) Err() error {
	var err error
	for _, f := range r.Failed {
		err = multierr.Append(err, fmt.Errorf("%s: %w", f.Path, f.Err))
	}
	return err
}

// Runner processes pairs one after another.
type Runner struct {
	Kind editor.Kind
	// Preload reads every source before the first session starts
	Preload bool
	Load    LoadFunc
	Log     *zap.Logger
}

// Run opens an editing session for every pair. Unreadable sources and
// failed sessions are recorded and skipped; a name mismatch or a cancelled
// context ends the run.
func (r *Runner) Run(ctx context.Context, pairs []Pair, ed Editor) (Report, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	load := r.Load
	if load == nil {
		load = meshio.Load
	}

	var report Report
	for _, p := range pairs {
		if err := p.Check(); err != nil {
			return report, err
		}
	}

	var loaded []*mesh.Mesh
	var loadErrs []error
	if r.Preload {
		var err error
		loaded, loadErrs, err = preload(ctx, pairs, load, log)
		if err != nil {
			return report, err
		}
	}

	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		in := p.In.Path()

		var m *mesh.Mesh
		var err error
		if r.Preload {
			m, err = loaded[i], loadErrs[i]
			loaded[i] = nil
		} else {
			log.Info("loading", zap.String("path", in))
			m, err = load(ctx, in)
		}
		if err != nil {
			log.Warn("file is missing or cannot be loaded", zap.String("path", in), zap.Error(err))
			report.Failed = append(report.Failed, Failure{Path: in, Err: err})
			continue
		}

		log.Info("processing",
			zap.Int("index", i+1),
			zap.Int("total", len(pairs)),
			zap.String("path", in),
			zap.String("output", p.Out.Path()))

		job := Job{Index: i, Total: len(pairs), Kind: r.Kind, Pair: p, Mesh: m, Saver: r.saver(p)}
		if err := ed.Edit(ctx, job); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			log.Warn("session failed", zap.String("path", in), zap.Error(err))
			report.Failed = append(report.Failed, Failure{Path: in, Err: err})
			continue
		}
		report.Processed = append(report.Processed, in)
	}

	log.Info("batch finished", zap.Int("processed", len(report.Processed)), zap.Int("failed", len(report.Failed)))
	return report, nil
}

func (r *Runner) saver(p Pair) meshio.FileSaver {
	if r.Kind == editor.KindLandmark {
		return meshio.FileSaver{LandmarkPath: p.Out.Path()}
	}
	return meshio.FileSaver{MeshPath: p.Out.Path()}
}

// preload reads all sources concurrently. Load errors are kept per file.
func preload(ctx context.Context, pairs []Pair, load LoadFunc, log *zap.Logger) ([]*mesh.Mesh, []error, error) {
	meshes := make([]*mesh.Mesh, len(pairs))
	errs := make([]error, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Info("preloading", zap.Int("index", i+1), zap.Int("total", len(pairs)), zap.String("path", p.In.Path()))
			meshes[i], errs[i] = load(ctx, p.In.Path())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return meshes, errs, nil
}
