package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/meshio"
	"go.uber.org/zap/zaptest"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func touch(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func sourceTree(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	touch(t, filepath.Join(src, "a.obj"), triangleOBJ)
	touch(t, filepath.Join(src, "sub", "b.OBJ"), triangleOBJ)
	touch(t, filepath.Join(src, "sub", "a.obj"), triangleOBJ)
	touch(t, filepath.Join(src, ".hidden.obj"), triangleOBJ)
	touch(t, filepath.Join(src, "notes.txt"), "x")
	return src
}

func TestDiscover(t *testing.T) {
	src := sourceTree(t)

	files, duplicates, err := Discover(src, ".obj")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Discover failed: expected 2 files, got %v", files)
	}
	if files[0].Path() != filepath.Join(src, "a.obj") {
		t.Errorf("Discover failed: expected %s first, got %s", filepath.Join(src, "a.obj"), files[0].Path())
	}
	if files[1].SubPath != "sub" || files[1].Name != "b" || files[1].Ext != ".OBJ" {
		t.Errorf("Discover failed: unexpected second file %+v", files[1])
	}
	if len(duplicates) != 1 || duplicates[0] != filepath.Join(src, "sub", "a.obj") {
		t.Errorf("Discover failed: expected sub/a.obj as duplicate, got %v", duplicates)
	}
}

func TestMakePairs(t *testing.T) {
	files := []File{{Root: "/src", SubPath: "x/y", Name: "face", Ext: ".obj"}}

	preserved := MakePairs("/dst", files, ".txt", true)
	if got := preserved[0].Out.Path(); got != filepath.Join("/dst", "x", "y", "face.txt") {
		t.Errorf("MakePairs failed: got %s", got)
	}

	flat := MakePairs("/dst", files, ".obj", false)
	if got := flat[0].Out.Path(); got != filepath.Join("/dst", "face.obj") {
		t.Errorf("MakePairs flat failed: got %s", got)
	}
	if err := flat[0].Check(); err != nil {
		t.Errorf("Check failed: %v", err)
	}

	bad := Pair{In: files[0], Out: File{Root: "/dst", Name: "other", Ext: ".obj"}}
	if err := bad.Check(); !errors.Is(err, ErrNameMismatch) {
		t.Errorf("Check failed: expected ErrNameMismatch, got %v", err)
	}
}

func TestSkipExisting(t *testing.T) {
	dst := t.TempDir()
	touch(t, filepath.Join(dst, "a.txt"), "1,2,3\n")
	pairs := []Pair{
		{In: File{Root: "src", Name: "a", Ext: ".obj"}, Out: File{Root: dst, Name: "a", Ext: ".txt"}},
		{In: File{Root: "src", Name: "b", Ext: ".obj"}, Out: File{Root: dst, Name: "b", Ext: ".txt"}},
	}

	kept := SkipExisting(pairs)
	if len(kept) != 1 || kept[0].Out.Name != "b" {
		t.Errorf("SkipExisting failed: expected only b, got %+v", kept)
	}
	if len(pairs) != 2 || pairs[0].Out.Name != "a" {
		t.Errorf("SkipExisting failed: input pairs modified: %+v", pairs)
	}
}

func TestOutputExt(t *testing.T) {
	if OutputExt(editor.KindLandmark) != ".txt" || OutputExt(editor.KindEdit) != ".obj" {
		t.Errorf("OutputExt failed: got %s and %s", OutputExt(editor.KindLandmark), OutputExt(editor.KindEdit))
	}
}

func TestHomeLayout(t *testing.T) {
	src, dst := HomeLayout("/study", editor.KindLandmark)
	if src != filepath.Join("/study", "IMAGES", "01 ORIGINAL IMAGES") {
		t.Errorf("HomeLayout failed: source %s", src)
	}
	if dst != filepath.Join("/study", "IMAGES", "22 TEXT POSE POINTS") {
		t.Errorf("HomeLayout failed: landmark destination %s", dst)
	}
	if _, dst := HomeLayout("/study", editor.KindEdit); dst != filepath.Join("/study", "IMAGES", "31 OBJ CLEANED") {
		t.Errorf("HomeLayout failed: edit destination %s", dst)
	}
}

func TestPrepare(t *testing.T) {
	src := sourceTree(t)
	dst := filepath.Join(t.TempDir(), "out")
	touch(t, filepath.Join(dst, "a.obj"), triangleOBJ)

	opts := Options{
		Kind:               editor.KindEdit,
		Source:             src,
		Destination:        dst,
		Extension:          ".obj",
		PreserveSubfolders: true,
	}
	pairs, err := Prepare(opts, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(pairs) != 1 || pairs[0].In.Name != "b" {
		t.Errorf("Prepare failed: expected only b pending, got %v", pairs)
	}

	opts.Overwrite = true
	pairs, _ = Prepare(opts, nil)
	if len(pairs) != 2 {
		t.Errorf("Prepare with overwrite failed: expected 2 pairs, got %d", len(pairs))
	}
}

func TestPrepareErrors(t *testing.T) {
	src := sourceTree(t)

	if _, err := Prepare(Options{Source: src, Destination: src, Extension: ".obj"}, nil); !errors.Is(err, ErrSameDirectory) {
		t.Errorf("Prepare failed: expected ErrSameDirectory, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := Prepare(Options{Source: missing, Destination: t.TempDir(), Extension: ".obj"}, nil); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Prepare failed: expected ErrNotDirectory, got %v", err)
	}
	if _, err := Prepare(Options{Home: missing, Extension: ".obj"}, nil); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Prepare failed: expected ErrNotDirectory for home, got %v", err)
	}
}

func TestPrepareHome(t *testing.T) {
	home := t.TempDir()
	src, dst := HomeLayout(home, editor.KindLandmark)
	touch(t, filepath.Join(src, "face.obj"), triangleOBJ)

	pairs, err := Prepare(Options{Kind: editor.KindLandmark, Home: home, Extension: ".obj", PreserveSubfolders: true}, nil)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Out.Path() != filepath.Join(dst, "face.txt") {
		t.Errorf("Prepare failed: unexpected pairs %v", pairs)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("Prepare failed: destination not created: %v", err)
	}
}

// scriptedEditor saves each job unchanged, with one landmark in landmark runs,
// or fails for the listed names
type scriptedEditor struct {
	mu    sync.Mutex
	seen  []string
	fail  map[string]error
	after func()
}

func (e *scriptedEditor) Edit(ctx context.Context, job Job) error {
	e.mu.Lock()
	e.seen = append(e.seen, job.Pair.In.Name)
	e.mu.Unlock()
	if e.after != nil {
		defer e.after()
	}
	if err := e.fail[job.Pair.In.Name]; err != nil {
		return err
	}

	s, err := editor.NewSession(job.Mesh, editor.Options{Kind: job.Kind, Saver: job.Saver})
	if err != nil {
		return err
	}
	if job.Kind == editor.KindLandmark {
		if err := s.PlaceLandmark(geometry.NewVector3(1, 2, 3), nil); err != nil {
			return err
		}
	}
	return s.Save()
}

func TestRunnerRun(t *testing.T) {
	for _, preload := range []bool{false, true} {
		src := t.TempDir()
		dst := t.TempDir()
		touch(t, filepath.Join(src, "a.obj"), triangleOBJ)
		touch(t, filepath.Join(src, "b.obj"), "v 0 0 0\n")
		touch(t, filepath.Join(src, "c.obj"), triangleOBJ)
		touch(t, filepath.Join(src, "d.obj"), triangleOBJ)

		files, _, _ := Discover(src, ".obj")
		pairs := MakePairs(dst, files, ".txt", true)

		ed := &scriptedEditor{fail: map[string]error{"c": errors.New("window closed unexpectedly")}}
		r := &Runner{Kind: editor.KindLandmark, Preload: preload, Log: zaptest.NewLogger(t)}
		report, err := r.Run(context.Background(), pairs, ed)
		if err != nil {
			t.Fatalf("Run(preload=%v) failed: %v", preload, err)
		}

		if len(report.Processed) != 2 || len(report.Failed) != 2 {
			t.Errorf("Run(preload=%v) failed: expected 2 processed 2 failed, got %v and %v", preload, report.Processed, report.Failed)
		}
		if !errors.Is(report.Err(), meshio.ErrUnreadableSource) {
			t.Errorf("Report.Err failed: expected ErrUnreadableSource in %v", report.Err())
		}
		if len(ed.seen) != 3 {
			t.Errorf("Run(preload=%v) failed: expected 3 sessions, got %v", preload, ed.seen)
		}

		data, err := os.ReadFile(filepath.Join(dst, "d.txt"))
		if err != nil || string(data) != "1,2,3\n" {
			t.Errorf("Run(preload=%v) failed: expected saved landmarks, got %q (%v)", preload, data, err)
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	src := t.TempDir()
	for _, n := range []string{"a", "b", "c"} {
		touch(t, filepath.Join(src, n+".obj"), triangleOBJ)
	}
	files, _, _ := Discover(src, ".obj")
	pairs := MakePairs(t.TempDir(), files, ".obj", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ed := &scriptedEditor{after: cancel}

	r := &Runner{Kind: editor.KindEdit}
	_, err := r.Run(ctx, pairs, ed)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run failed: expected context.Canceled, got %v", err)
	}
	if len(ed.seen) != 1 {
		t.Errorf("Run failed: expected 1 session before cancel, got %v", ed.seen)
	}
}

func TestRunnerNameMismatch(t *testing.T) {
	pairs := []Pair{{
		In:  File{Root: "/src", Name: "a", Ext: ".obj"},
		Out: File{Root: "/dst", Name: "b", Ext: ".obj"},
	}}
	r := &Runner{Load: func(context.Context, string) (*mesh.Mesh, error) {
		t.Fatal("load must not run on a mismatched pair")
		return nil, nil
	}}
	if _, err := r.Run(context.Background(), pairs, &scriptedEditor{}); !errors.Is(err, ErrNameMismatch) {
		t.Errorf("Run failed: expected ErrNameMismatch, got %v", err)
	}
}
