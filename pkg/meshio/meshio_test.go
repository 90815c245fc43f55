package meshio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadOBJ(t *testing.T) {
	input := `# quad and triangle
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
f -4//1 -2//1 -1//1
`
	m, err := ReadOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}

	if m.VertexCount() != 4 {
		t.Errorf("ReadOBJ failed: expected 4 points, got %d", m.VertexCount())
	}
	expected := []mesh.Face{{0, 1, 2}, {0, 2, 3}, {0, 2, 3}}
	if len(m.Faces) != len(expected) {
		t.Fatalf("ReadOBJ failed: expected faces %v, got %v", expected, m.Faces)
	}
	for i := range expected {
		if m.Faces[i] != expected[i] {
			t.Errorf("face %d failed: expected %v, got %v", i, expected[i], m.Faces[i])
		}
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 2 x\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
		{"zero index", "v 0 0 0\nf 0 1 1\n"},
		{"bad index", "v 0 0 0\nf a 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadOBJ(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ReadOBJ(%q) failed: expected error", tt.input)
			}
		})
	}
}

func TestWriteOBJRoundTrip(t *testing.T) {
	src := &mesh.Mesh{
		Points: []geometry.Vector3{
			geometry.NewVector3(0.5, -1.25, 3),
			geometry.NewVector3(1e-9, 2, 0),
			geometry.NewVector3(7, 8, 9),
		},
		Faces: []mesh.Face{{0, 1, 2}},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, src); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if !strings.Contains(buf.String(), "f 1 2 3\n") {
		t.Errorf("WriteOBJ failed: expected 1-based face record, got %q", buf.String())
	}

	got, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	if !got.Equal(src) {
		t.Errorf("round trip failed: expected %v, got %v", src, got)
	}
}

func TestLandmarksRoundTrip(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(1, 2, 3),
		geometry.NewVector3(-0.5, 0, 1e6),
	}

	var buf bytes.Buffer
	if err := WriteLandmarks(&buf, points); err != nil {
		t.Fatalf("WriteLandmarks failed: %v", err)
	}
	if buf.String() != "1,2,3\n-0.5,0,1e+06\n" {
		t.Errorf("WriteLandmarks failed: got %q", buf.String())
	}

	got, err := ReadLandmarks(&buf)
	if err != nil {
		t.Fatalf("ReadLandmarks failed: %v", err)
	}
	if len(got) != 2 || got[0] != points[0] || got[1] != points[1] {
		t.Errorf("ReadLandmarks failed: expected %v, got %v", points, got)
	}
}

func TestLoadOBJ(t *testing.T) {
	// the trailing point is unreferenced and gets dropped
	path := writeTestFile(t, "Tri.OBJ", "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 5 5 5\nf 1 2 3\n")

	m, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Errorf("Load failed: expected 3 points 1 face, got %d and %d", m.VertexCount(), m.FaceCount())
	}
}

func TestLoadSTLWelds(t *testing.T) {
	stl := `solid s
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 1 1 0
endloop
endfacet
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 1 0
vertex 0 1 0
endloop
endfacet
endsolid s
`
	m, err := Load(context.Background(), writeTestFile(t, "square.stl", stl))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.VertexCount() != 4 || m.FaceCount() != 2 {
		t.Errorf("Load failed: expected 4 points 2 faces, got %d and %d", m.VertexCount(), m.FaceCount())
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.obj")},
		{"no faces", writeTestFile(t, "points.obj", "v 0 0 0\nv 1 0 0\n")},
		{"empty", writeTestFile(t, "empty.obj", "")},
		{"out of range", writeTestFile(t, "broken.obj", "v 0 0 0\nf 1 2 3\n")},
		{"parse error", writeTestFile(t, "bad.obj", "v 0 0\n")},
		{"nan point", writeTestFile(t, "nan.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nv nan 0 0\nf 1 2 3\nf 1 3 4\n")},
		{"inf point", writeTestFile(t, "inf.obj", "v 0 0 0\nv 1 0 0\nv 0 Inf 0\nf 1 2 3\n")},
		{"unsupported", writeTestFile(t, "mesh.ply", "ply\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(context.Background(), tt.path); !errors.Is(err, ErrUnreadableSource) {
				t.Errorf("Load(%s) failed: expected ErrUnreadableSource, got %v", tt.path, err)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"a.obj":   true,
		"b.STL":   true,
		"c.scad":  true,
		"d.ply":   false,
		"noext":   false,
		"e.obj.x": false,
	}
	for path, want := range tests {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%s) failed: expected %v, got %v", path, want, got)
		}
	}
}

func TestFileSaver(t *testing.T) {
	dir := t.TempDir()
	saver := FileSaver{
		MeshPath:     filepath.Join(dir, "out", "nested", "face.obj"),
		LandmarkPath: filepath.Join(dir, "out", "face.txt"),
	}

	m := &mesh.Mesh{
		Points: []geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:  []mesh.Face{{0, 1, 2}},
	}
	if err := saver.SaveMesh(m); err != nil {
		t.Fatalf("SaveMesh failed: %v", err)
	}
	if err := saver.SaveLandmarks([]geometry.Vector3{{X: 1, Y: 2, Z: 3}}); err != nil {
		t.Fatalf("SaveLandmarks failed: %v", err)
	}

	got, err := Load(context.Background(), saver.MeshPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(m) {
		t.Errorf("SaveMesh failed: expected %v, got %v", m, got)
	}

	data, err := os.ReadFile(saver.LandmarkPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "1,2,3\n" {
		t.Errorf("SaveLandmarks failed: got %q", string(data))
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "out"))
	if len(entries) != 2 {
		t.Errorf("expected no temp files left behind, got %d entries", len(entries))
	}

	if err := (FileSaver{}).SaveMesh(m); err == nil {
		t.Error("SaveMesh failed: expected error without a path")
	}
}

func TestDependencies(t *testing.T) {
	deps, err := Dependencies("model.obj")
	if err != nil || len(deps) != 1 || deps[0] != "model.obj" {
		t.Errorf("Dependencies failed: expected [model.obj], got %v (%v)", deps, err)
	}
}
