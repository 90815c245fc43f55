package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/version"
)

const messageDuration = 4 * time.Second

func (app *App) showMessage(msg string) {
	app.UI.message = msg
	app.UI.messageUntil = time.Now().Add(messageDuration)
}

func background(c editor.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// drawUI draws the status panel and the key help
func (app *App) drawUI() {
	const (
		fontSize   = int32(16)
		lineHeight = int32(20)
		padding    = int32(10)
	)

	s := app.session
	m := s.Mesh()

	lines := []string{app.UI.title}
	switch s.Kind() {
	case editor.KindEdit:
		state := "camera"
		if s.Active() {
			state = "selecting"
		}
		lines = append(lines,
			fmt.Sprintf("Vertices: %d  Faces: %d", m.VertexCount(), m.FaceCount()),
			fmt.Sprintf("Input: %s  Mode: %s  Brush: %s", state, s.Selection().Mode(), s.Selection().Type()),
			fmt.Sprintf("Radius: %.3f  (step %.3f, min %.3f)", s.Brush().Radius, s.Brush().Step, s.Brush().Min),
			fmt.Sprintf("Selected: %d  In range: %d  Undo: %d", s.Selection().SelectedCount(), s.Selection().InRangeCount(), s.UndoDepth()),
			"t toggle  i invert  Del delete  f keep selection  1/2 radius",
			"z undo  g geodesic  a save  y xz view  w wireframe  Esc next",
		)
	case editor.KindLandmark:
		state := "camera"
		if s.Active() {
			state = "placing"
		}
		lines = append(lines,
			fmt.Sprintf("Vertices: %d  Faces: %d", m.VertexCount(), m.FaceCount()),
			fmt.Sprintf("Input: %s  Landmarks: %d", state, s.Landmarks().Len()),
			"t toggle placement  Del remove last  a save  y xz view  Esc next",
		)
	}

	width := int32(0)
	for _, l := range lines {
		if w := rl.MeasureText(l, fontSize); w > width {
			width = w
		}
	}
	height := int32(len(lines))*lineHeight + padding*2

	rl.DrawRectangle(padding, padding, width+padding*2, height, rl.NewColor(0, 0, 0, 180))
	y := padding * 2
	for i, l := range lines {
		color := rl.White
		if i == 0 {
			color = rl.Yellow
		}
		rl.DrawText(l, padding*2, y, fontSize, color)
		y += lineHeight
	}

	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		text := fmt.Sprintf("Reloading... (%.1fs)", elapsed)
		w := rl.MeasureText(text, fontSize)
		rl.DrawRectangle(screenWidth-w-40, 20, w+20, 30, rl.NewColor(0, 0, 0, 180))
		rl.DrawText(text, screenWidth-w-30, 27, fontSize, rl.Yellow)
	}

	if app.UI.message != "" && time.Now().Before(app.UI.messageUntil) {
		w := rl.MeasureText(app.UI.message, fontSize)
		rl.DrawRectangle(padding, screenHeight-50, w+padding*2, 30, rl.NewColor(0, 0, 0, 200))
		rl.DrawText(app.UI.message, padding*2, screenHeight-43, fontSize, rl.Yellow)
	}

	v := version.GetVersion()
	rl.DrawText(v, screenWidth-rl.MeasureText(v, 12)-10, screenHeight-20, 12, rl.LightGray)
}
