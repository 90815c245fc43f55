package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// ReadOBJ parses the geometry of a Wavefront OBJ stream. Only v and f
// records are used; polygons are fan triangulated around their first corner.
func ReadOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := readVertex(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			m.Points = append(m.Points, p)
		case "f":
			if err := readFace(m, fields); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return m, nil
}

func readVertex(fields []string) (geometry.Vector3, error) {
	if len(fields) < 4 {
		return geometry.Vector3{}, fmt.Errorf("invalid vertex: expected 3 coordinates, found %d", len(fields)-1)
	}
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vertex coordinate %q", fields[i+1])
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

func readFace(m *mesh.Mesh, fields []string) error {
	if len(fields) < 4 {
		return fmt.Errorf("invalid face: expected at least 3 corners, found %d", len(fields)-1)
	}

	corners := make([]int, len(fields)-1)
	for i, token := range fields[1:] {
		idx, err := faceIndex(token, len(m.Points))
		if err != nil {
			return err
		}
		corners[i] = idx
	}

	for j := 1; j+1 < len(corners); j++ {
		m.Faces = append(m.Faces, mesh.Face{corners[0], corners[j], corners[j+1]})
	}
	return nil
}

// faceIndex resolves a v, v/vt, v//vn or v/vt/vn token. Positive indices
// are 1-based, negative ones count back from the latest vertex.
func faceIndex(token string, count int) (int, error) {
	pos, _, _ := strings.Cut(token, "/")
	i, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", token)
	}

	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return count + i, nil
	default:
		return 0, fmt.Errorf("invalid face index %q: indices start at 1", token)
	}
}

// WriteOBJ writes points as v records and faces as 1-based f records.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Points {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
