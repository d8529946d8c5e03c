// Package renderer draws the 3D scene with raylib primitives.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Body colors
var (
	ColorCharacter = rl.Color{R: 90, G: 160, B: 230, A: 255}
	ColorPlayer    = rl.Color{R: 240, G: 170, B: 60, A: 255}
	ColorAirborne  = rl.Color{R: 170, G: 120, B: 220, A: 255}
	ColorPlatform  = rl.Color{R: 200, G: 200, B: 210, A: 255}
	ColorPaused    = rl.Color{R: 130, G: 130, B: 140, A: 255}
	ColorBlock     = rl.Color{R: 120, G: 110, B: 100, A: 255}
	ColorSensor    = rl.Color{R: 80, G: 220, B: 200, A: 70}
	ColorWire      = rl.Color{R: 30, G: 30, B: 30, A: 255}
)

// Vec converts a simulation vector to raylib.
func Vec(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

// CharacterStyle selects the capsule color.
type CharacterStyle struct {
	Player   bool
	Grounded bool
}

// DrawCharacter draws a Y-aligned capsule with a nose marking its facing.
func DrawCharacter(pos mgl64.Vec3, rot mgl64.Quat, halfHeight, radius float64, style CharacterStyle) {
	color := ColorCharacter
	switch {
	case style.Player:
		color = ColorPlayer
	case !style.Grounded:
		color = ColorAirborne
	}

	up := mgl64.Vec3{0, halfHeight, 0}
	start := Vec(pos.Sub(up))
	end := Vec(pos.Add(up))
	rl.DrawCapsule(start, end, float32(radius), 12, 6, color)
	rl.DrawCapsuleWires(start, end, float32(radius), 12, 6, rl.Fade(ColorWire, 0.3))

	fwd := rot.Rotate(mgl64.Vec3{0, 0, -1})
	nose := pos.Add(mgl64.Vec3{0, halfHeight * 0.6, 0}).Add(fwd.Mul(radius))
	rl.DrawSphere(Vec(nose), float32(radius*0.25), rl.RayWhite)
}

// DrawBox draws an axis-aligned box collider. Sensors are translucent.
func DrawBox(center, halfExtents mgl64.Vec3, color rl.Color, sensor bool) {
	size := Vec(halfExtents.Mul(2))
	c := Vec(center)
	if sensor {
		color = ColorSensor
	}
	rl.DrawCubeV(c, size, color)
	rl.DrawCubeWiresV(c, size, rl.Fade(ColorWire, 0.5))
}
