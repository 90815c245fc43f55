package editor

import (
	"math"

	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/mesh"
)

// fallbackMinRadius keeps the brush usable on meshes without any positive edge length
const fallbackMinRadius = 1e-6

// BrushSettings derive the brush from the scale of the mesh.
type BrushSettings struct {
	RadiusDivisor float64
	StepDivisor   float64
	MinEdgeFactor float64
}

// DefaultBrushSettings returns the stock brush scaling.
func DefaultBrushSettings() BrushSettings {
	return BrushSettings{RadiusDivisor: 1.2, StepDivisor: 20, MinEdgeFactor: 0.5}
}

// Brush is the radius of the selection tool. It never drops below Min and
// has no upper bound.
type Brush struct {
	Radius float64
	Step   float64
	Min    float64
}

// NewBrush sizes a brush for m: the initial radius and the step follow the
// median distance of the points from their centroid, the minimum follows the
// shortest face edge.
func NewBrush(m *mesh.Mesh, settings BrushSettings) Brush {
	meshRadius := analysis.MedianRadius(m.Points)
	minEdge, _, minPositive := analysis.EdgeStats(m)

	b := Brush{}
	if settings.StepDivisor > 0 {
		b.Step = meshRadius / settings.StepDivisor
	}
	b.Min = minEdge * settings.MinEdgeFactor
	if b.Min <= 0 {
		b.Min = minPositive * settings.MinEdgeFactor
	}
	if b.Min <= 0 {
		b.Min = b.Step
	}
	if b.Min <= 0 {
		b.Min = fallbackMinRadius
	}
	if b.Step <= 0 {
		b.Step = b.Min
	}
	if settings.RadiusDivisor > 0 {
		b.Radius = meshRadius / settings.RadiusDivisor
	}
	b.Radius = math.Max(b.Radius, b.Min)
	return b
}

// Increase grows the radius by one step.
func (b *Brush) Increase() {
	b.Radius += b.Step
}

// Decrease shrinks the radius by one step, clamping at Min.
func (b *Brush) Decrease() {
	b.Radius = math.Max(b.Radius-b.Step, b.Min)
}

// Set changes the radius, clamping at Min.
func (b *Brush) Set(radius float64) {
	b.Radius = math.Max(radius, b.Min)
}
