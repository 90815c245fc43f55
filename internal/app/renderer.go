package app

import (
	"bytes"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/pkg/analysis"
	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/meshgraph"
)

// colorBuffer is the raylib vertex buffer slot holding colours
const colorBuffer = 3

// lightDir is the direction of the light baked into vertex colours
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// uploadMesh converts the live mesh to a raylib triangle soup with baked
// lighting. Every face gets its own three corners so that flat shading
// survives; corners remember their vertex id for colouring.
func (app *App) uploadMesh(m *mesh.Mesh) {
	app.unloadMesh()
	app.Model.edgesValid = false

	triangleCount := len(m.Faces)
	vertexCount := triangleCount * 3
	if triangleCount == 0 {
		app.Model.corners = nil
		return
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)
	corners := make([]int, vertexCount)
	shade := make([]float32, vertexCount)

	idx := 0
	for fi, face := range m.Faces {
		normal := m.Triangle(fi).CalculateNormal()
		// Min 30% ambient, both sides lit
		lightIntensity := math.Max(0.3, math.Abs(normal.Dot(lightDir)))

		for _, vi := range face {
			p := m.Points[vi]
			vertices[idx*3+0] = float32(p.X)
			vertices[idx*3+1] = float32(p.Y)
			vertices[idx*3+2] = float32(p.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			corners[idx] = vi
			shade[idx] = float32(lightIntensity)
			idx++
		}
	}

	app.Model.corners = corners
	app.Model.shade = shade
	app.Model.colors = colors
	app.Model.scratch = make([]uint8, len(colors))
	app.fillColors(colors)

	app.Model.mesh = rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
		Vertices:      &vertices[0],
		Normals:       &normals[0],
		Texcoords:     &texcoords[0],
		Colors:        &colors[0],
	}

	// dynamic buffers, colours change every frame while brushing
	rl.UploadMesh(&app.Model.mesh, true)
	app.Model.uploaded = true
}

func (app *App) unloadMesh() {
	if app.Model.uploaded {
		rl.UnloadMesh(&app.Model.mesh)
		app.Model.uploaded = false
	}
}

// fillColors writes shaded session colours for every corner into dst
func (app *App) fillColors(dst []uint8) {
	colors := app.session.VertexColors()
	for i, vi := range app.Model.corners {
		c := colors[vi]
		s := app.Model.shade[i]
		dst[i*4+0] = uint8(float32(c.R) * s)
		dst[i*4+1] = uint8(float32(c.G) * s)
		dst[i*4+2] = uint8(float32(c.B) * s)
		dst[i*4+3] = 255
	}
}

// syncMesh re-uploads after topology changes and otherwise refreshes the
// colour buffer when the session colours differ from the uploaded ones.
func (app *App) syncMesh() {
	if rev := app.session.Revision(); rev != app.Model.revision {
		app.Model.revision = rev
		app.uploadMesh(app.session.Mesh())
		return
	}
	if !app.Model.uploaded {
		return
	}

	app.fillColors(app.Model.scratch)
	if bytes.Equal(app.Model.scratch, app.Model.colors) {
		return
	}
	copy(app.Model.colors, app.Model.scratch)
	rl.UpdateMeshBuffer(app.Model.mesh, colorBuffer, app.Model.colors, 0)
}

// drawScene renders the mesh, the brush and the landmarks inside 3D mode
func (app *App) drawScene() {
	if app.Model.uploaded {
		rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
	} else {
		// faces are gone, show what is left of the points
		colors := app.session.VertexColors()
		for i, p := range app.session.Mesh().Points {
			c := colors[i]
			rl.DrawPoint3D(toRL(p), rl.NewColor(c.R, c.G, c.B, 255))
		}
	}

	if app.View.showWireframe {
		app.drawWireframe()
	}

	if app.View.showBrush && app.session.Kind() == editor.KindEdit && app.session.Active() &&
		app.session.Selection().Mode() != editor.ModeGeodesic && app.Interaction.hasPick {
		c := editor.ColorBrush
		rl.DrawSphereWires(toRL(app.Interaction.pick), float32(app.session.Brush().Radius), 8, 16, rl.NewColor(c.R, c.G, c.B, 120))
	}

	landmarks := app.session.Landmarks()
	for i, p := range landmarks.Points() {
		m, ok := landmarks.Handle(i).(marker)
		if !ok {
			m = app.newMarker()
		}
		rl.DrawSphere(toRL(p), m.radius, m.color)
	}
}

// drawWireframe draws every unique mesh edge as a line
func (app *App) drawWireframe() {
	if !app.Model.edgesValid {
		app.Model.edges = app.Model.edges[:0]
		m := app.session.Mesh()
		if g, err := meshgraph.FromMesh(m); err == nil {
			for _, e := range analysis.UniqueEdges(m.Points, g) {
				app.Model.edges = append(app.Model.edges, [2]rl.Vector3{toRL(e.Start), toRL(e.End)})
			}
		}
		app.Model.edgesValid = true
	}

	wireframeColor := rl.NewColor(60, 60, 60, 200)
	for _, e := range app.Model.edges {
		rl.DrawLine3D(e[0], e[1], wireframeColor)
	}
}

// landmarkSize returns the configured marker radius, or 2% of the median
// point radius when the configuration leaves it at zero
func landmarkSize(size float64, m *mesh.Mesh) float32 {
	if size > 0 {
		return float32(size)
	}
	r := 0.02 * analysis.MedianRadius(m.Points)
	if r <= 0 {
		r = 1
	}
	return float32(r)
}

func (app *App) newMarker() marker {
	return marker{radius: app.UI.landmarkSize, color: rl.NewColor(230, 40, 40, 255)}
}
