package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// FileSaver writes session results to fixed paths, creating parent
// directories as needed. An empty path disables that kind of result.
type FileSaver struct {
	MeshPath     string
	LandmarkPath string
}

// SaveMesh writes m as OBJ to MeshPath.
func (s FileSaver) SaveMesh(m *mesh.Mesh) error {
	if s.MeshPath == "" {
		return fmt.Errorf("no mesh output path configured")
	}
	return writeFile(s.MeshPath, func(w io.Writer) error { return WriteOBJ(w, m) })
}

// SaveLandmarks writes points as CSV to LandmarkPath.
func (s FileSaver) SaveLandmarks(points []geometry.Vector3) error {
	if s.LandmarkPath == "" {
		return fmt.Errorf("no landmark output path configured")
	}
	return writeFile(s.LandmarkPath, func(w io.Writer) error { return WriteLandmarks(w, points) })
}

// writeFile replaces path through a temp file in the same directory.
func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
