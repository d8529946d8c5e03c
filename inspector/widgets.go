package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Vec3 components are drawn in the usual axis colors.
var axisColors = [3]rl.Color{
	{R: 220, G: 110, B: 110, A: 255},
	{R: 110, G: 220, B: 110, A: 255},
	{R: 110, G: 150, B: 230, A: 255},
}

const (
	fontSize  = 14
	valueX    = 80 // label column width for bars and flags
	rowLabel  = 20
	rowBar    = 18
	rowBool   = 18
	rowAngle  = 44
	dialSize  = 40
	barWidth  = 120
	barHeight = 14
)

// DrawLabel draws "name: value".
func DrawLabel(x, y int32, name string, value any, format string) int32 {
	rl.DrawText(name+": "+FormatValue(value, format), x, y, fontSize, ColorText)
	return rowLabel
}

// DrawBar draws value as a fraction of full, clamped to [0, 1].
func DrawBar(x, y int32, name string, value, full float64) int32 {
	ratio := max(0, min(1, value/full))

	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	bx := x + valueX
	rl.DrawRectangle(bx, y, barWidth, barHeight, ColorBarBg)

	fill := ColorBarFill
	if ratio < 0.3 {
		fill = ColorBarLow
	}
	rl.DrawRectangle(bx, y, int32(barWidth*ratio), barHeight, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), bx+barWidth+5, y, fontSize, ColorTextDim)
	return rowBar
}

// DrawVec3 draws the three components side by side.
func DrawVec3(x, y int32, name string, v mgl64.Vec3, format string) int32 {
	if format == "" {
		format = "%.2f"
	}
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	cx := x + 100
	for i, c := range axisColors {
		rl.DrawText(fmt.Sprintf(format, v[i]), cx, y, fontSize, c)
		cx += 62
	}
	return rowLabel
}

// DrawAngle draws a compass dial for a heading in radians. Zero points along
// screen +X.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	r := int32(dialSize / 2)
	cx, cy := x+60+r, y+r
	mid := y + r - 7

	rl.DrawText(name, x, mid, fontSize, ColorTextDim)
	rl.DrawCircle(cx, cy, float32(r), ColorAngleBg)
	rl.DrawCircleLines(cx, cy, float32(r), ColorTextDim)

	needle := float64(r - 4)
	tip := rl.Vector2{
		X: float32(float64(cx) + needle*math.Cos(radians)),
		Y: float32(float64(cy) + needle*math.Sin(radians)),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, tip, 2, ColorAngleNeedle)
	rl.DrawText(fmt.Sprintf("%.0f deg", mgl64.RadToDeg(radians)), x+60+dialSize+5, mid, fontSize, ColorTextDim)
	return rowAngle
}

// DrawBool draws an ON/OFF flag.
func DrawBool(x, y int32, name string, on bool) int32 {
	color, text := ColorBoolOff, "OFF"
	if on {
		color, text = ColorBoolOn, "ON"
	}
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	rl.DrawRectangle(x+valueX, y, barHeight, barHeight, color)
	rl.DrawText(text, x+valueX+barHeight+5, y, fontSize, color)
	return rowBool
}

// resolve returns the widget a field is actually drawn with: fields whose value does
// not fit their tagged widget fall back to a label.
func resolve(f Field) Widget {
	switch f.Widget {
	case WidgetBar, WidgetAngle:
		if _, ok := NumericValue(f.Value); ok {
			return f.Widget
		}
	case WidgetBool:
		if _, ok := f.Value.(bool); ok {
			return f.Widget
		}
	case WidgetVec3:
		if _, ok := f.Value.(mgl64.Vec3); ok {
			return f.Widget
		}
	}
	return WidgetLabel
}

// DrawField draws f and returns the row height used.
func DrawField(x, y int32, f Field) int32 {
	switch resolve(f) {
	case WidgetBar:
		v, _ := NumericValue(f.Value)
		return DrawBar(x, y, f.Name, v, f.Max)
	case WidgetAngle:
		v, _ := NumericValue(f.Value)
		return DrawAngle(x, y, f.Name, v)
	case WidgetBool:
		return DrawBool(x, y, f.Name, f.Value.(bool))
	case WidgetVec3:
		return DrawVec3(x, y, f.Name, f.Value.(mgl64.Vec3), f.Format)
	}
	return DrawLabel(x, y, f.Name, f.Value, f.Format)
}

// FieldHeight is the row height DrawField will use for f.
func FieldHeight(f Field) int32 {
	switch resolve(f) {
	case WidgetBar:
		return rowBar
	case WidgetAngle:
		return rowAngle
	case WidgetBool:
		return rowBool
	}
	return rowLabel
}
