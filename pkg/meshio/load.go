// Package meshio reads source meshes and writes editing results.
package meshio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/openscad"
	"github.com/philipparndt/meshedit/pkg/stl"
)

// ErrUnreadableSource is returned for files that are missing, fail to parse
// or contain no usable geometry.
var ErrUnreadableSource = errors.New("unreadable source mesh")

// Extensions lists the source formats Load understands.
var Extensions = []string{".obj", ".stl", ".scad"}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads a mesh by file extension and cleans it: faces must reference
// existing points, coordinates must be finite, and points no face uses are
// dropped.
func Load(ctx context.Context, path string) (*mesh.Mesh, error) {
	m, err := decode(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableSource, path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableSource, path, err)
	}
	if len(m.Points) == 0 {
		return nil, fmt.Errorf("%w: %s: no points", ErrUnreadableSource, path)
	}
	for i, p := range m.Points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: %s: point %d is not finite", ErrUnreadableSource, path, i)
		}
	}
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%w: %s: no faces", ErrUnreadableSource, path)
	}
	m.Compact()
	return m, nil
}

func decode(ctx context.Context, path string) (*mesh.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		return ReadOBJ(file)

	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		return model.Weld(), nil

	case ".scad":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		model, err := openscad.NewRenderer(filepath.Dir(path)).Render(ctx, filepath.Base(path))
		if err != nil {
			return nil, err
		}
		return model.Weld(), nil

	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

// Dependencies returns the files whose change should trigger a reload of path.
func Dependencies(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(filepath.Base(path))
}
