package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer fills the screen with a vertical sky gradient.
// Call it before BeginMode3D.
type BackgroundRenderer struct {
	screenW, screenH int32
	top, horizon     rl.Color
}

// NewBackgroundRenderer creates a sky from the zenith and horizon colors.
func NewBackgroundRenderer(screenW, screenH int32, top, horizon rl.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
		top:     top,
		horizon: horizon,
	}
}

// Resize updates the fill area.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the gradient.
func (b *BackgroundRenderer) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.top, b.horizon)
}
