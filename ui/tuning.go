package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningValues are the live-editable controller parameters of one character.
type TuningValues struct {
	RideHeight   float32
	Strength     float32
	Damper       float32
	Acceleration float32
	Deceleration float32
	TopSpeed     float32
}

// TuningAction reports what the user did with the panel this frame.
type TuningAction int

const (
	TuningNone    TuningAction = iota
	TuningChanged              // A slider moved; apply Values to the body
	TuningReset                // Restore configured defaults on every body
)

// slider describes one raygui slider row.
type slider struct {
	label    string
	format   string
	min, max float32
	value    func(*TuningValues) *float32
}

var tuningSliders = []slider{
	{"Ride height", "%.2f", 0.5, 3.9, func(v *TuningValues) *float32 { return &v.RideHeight }},
	{"Strength", "%.0f", 0, 3000, func(v *TuningValues) *float32 { return &v.Strength }},
	{"Damper", "%.0f", 0, 120, func(v *TuningValues) *float32 { return &v.Damper }},
	{"Acceleration", "%.0f", 0, 400, func(v *TuningValues) *float32 { return &v.Acceleration }},
	{"Deceleration", "%.1f", 0, 40, func(v *TuningValues) *float32 { return &v.Deceleration }},
	{"Top speed", "%.0f", 0, 400, func(v *TuningValues) *float32 { return &v.TopSpeed }},
}

// TuningPanel renders raygui sliders for the followed character.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	values   TuningValues
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// IsVisible returns whether the panel is shown.
func (t *TuningPanel) IsVisible() bool {
	return t.visible
}

// SetValues loads the current parameters of the followed body.
func (t *TuningPanel) SetValues(v TuningValues) {
	t.values = v
}

// Values returns the slider state.
func (t *TuningPanel) Values() TuningValues {
	return t.values
}

// Height returns the panel height in pixels.
func (t *TuningPanel) Height() int32 {
	return int32(len(tuningSliders))*38 + 90
}

// Contains reports whether a screen point falls on the visible panel.
func (t *TuningPanel) Contains(px, py float32) bool {
	return t.visible &&
		px >= float32(t.x) && px <= float32(t.x+t.width) &&
		py >= float32(t.y) && py <= float32(t.y+t.Height())
}

// Draw renders the sliders and returns what changed.
func (t *TuningPanel) Draw() TuningAction {
	if !t.visible {
		return TuningNone
	}

	r := t.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(t.x, t.y, t.width, t.Height())

	x := float32(t.x) + pad
	y := float32(t.y) + pad
	rl.DrawText("Controller Tuning", int32(x), int32(y), 16, rl.White)
	y += 26

	action := TuningNone
	sliderWidth := float32(t.width) - pad*2 - 60
	for _, s := range tuningSliders {
		ptr := s.value(&t.values)
		rl.DrawText(s.label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14

		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 16},
			"", "",
			*ptr, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, *ptr), int32(x+sliderWidth+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		if next != *ptr {
			*ptr = next
			action = TuningChanged
		}
		y += 24
	}

	y += 6
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 24}, "Reset") {
		action = TuningReset
	}

	return action
}

// ApplyTheme sets the dark raygui style shared by all panels.
func ApplyTheme() {
	th := DefaultTheme()
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(th.PanelBg))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(th.BarBg))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 70, 85, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(th.BarFill))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(th.LabelColor))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(th.PanelBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(th.BarFill))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 12)
}
