package meshio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/meshedit/pkg/geometry"
)

// WriteLandmarks writes one x,y,z row per landmark in placement order.
func WriteLandmarks(w io.Writer, points []geometry.Vector3) error {
	cw := csv.NewWriter(w)
	for _, p := range points {
		if err := cw.Write([]string{formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)}); err != nil {
			return fmt.Errorf("failed to write landmarks: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write landmarks: %w", err)
	}
	return nil
}

// ReadLandmarks parses rows written by WriteLandmarks.
func ReadLandmarks(r io.Reader) ([]geometry.Vector3, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read landmarks: %w", err)
	}

	points := make([]geometry.Vector3, 0, len(records))
	for i, rec := range records {
		var xyz [3]float64
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("landmark %d: invalid coordinate %q", i+1, field)
			}
			xyz[j] = v
		}
		points = append(points, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))
	}
	return points, nil
}
