package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws descriptor panels with one Theme.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

var centerTick = rl.Color{R: 80, G: 80, B: 80, A: 255}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// rowHeight is the vertical space a field takes.
func (r *Renderer) rowHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar, WidgetCenteredBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return r.Theme.LineHeight
}

func shown(visible func(any) bool, data any) bool {
	return visible == nil || visible(data)
}

func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// track draws the label and empty bar, returning the bar's x and width.
func (r *Renderer) track(x, y int32, label string, width int32) (int32, int32) {
	bx := x + r.Theme.LabelWidth
	bw := width - r.Theme.LabelWidth - 50
	r.label(x, y, label)
	rl.DrawRectangle(bx, y+2, bw, r.Theme.BarHeight, r.Theme.BarBg)
	return bx, bw
}

func (r *Renderer) drawBar(x, y int32, label string, value float32, rng FieldRange, width int32) {
	bx, bw := r.track(x, y, label, width)
	fill := int32(float32(bw) * rng.fraction(value))
	rl.DrawRectangle(bx, y+2, fill, r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), bx+bw+5, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// drawCenteredBar grows right for positive values and left for negative ones,
// scaled to the larger magnitude of the range ends.
func (r *Renderer) drawCenteredBar(x, y int32, label string, value float32, rng FieldRange, width int32) {
	bx, bw := r.track(x, y, label, width)
	cx := bx + bw/2
	rl.DrawLine(cx, y+2, cx, y+2+r.Theme.BarHeight, centerTick)

	extent := max(float32(math.Abs(float64(rng.Min))), float32(math.Abs(float64(rng.Max))))
	if extent == 0 {
		extent = 1
	}
	fill := int32(float32(bw/2) * min(float32(math.Abs(float64(value/extent))), 1))

	fx, color := cx, r.Theme.BarFillPositive
	if value < 0 {
		fx, color = cx-fill, r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fx, y+2, fill, r.Theme.BarHeight, color)
	rl.DrawText(fmt.Sprintf("%+.2f", value), bx+bw+5, y, r.Theme.FontSize, r.Theme.ValueColor)
}

func (r *Renderer) drawFlag(x, y int32, label string, on bool) {
	color, text := r.Theme.FlagOff, "no"
	if on {
		color, text = r.Theme.FlagOn, "yes"
	}
	r.label(x, y, label)
	ix := x + r.Theme.LabelWidth
	rl.DrawRectangle(ix, y+2, 10, 10, color)
	rl.DrawText(text, ix+14, y, r.Theme.FontSize, color)
}

// DrawField draws one field and returns the y below it.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	var value float32
	if fd.Getter != nil {
		value = fd.Getter(data)
	}

	switch fd.Widget {
	case WidgetText:
		var text string
		switch {
		case fd.TextGetter != nil:
			text = fd.TextGetter(data)
		case fd.Getter != nil:
			text = fmt.Sprintf(fd.Format, value)
		}
		r.label(x, y, fd.Label)
		rl.DrawText(text, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	case WidgetBar:
		r.drawBar(x, y, fd.Label, value, fd.Range, width)
	case WidgetCenteredBar:
		r.drawCenteredBar(x, y, fd.Label, value, fd.Range, width)
	case WidgetFlag:
		r.drawFlag(x, y, fd.Label, fd.FlagGetter != nil && fd.FlagGetter(data))
	case WidgetSection:
		rl.DrawText(fd.Label, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	}
	return y + r.rowHeight(fd.Widget)
}

// DrawSection draws a titled group of fields, skipping hidden ones.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if !shown(sd.Visible, data) {
		return y
	}
	if sd.Title != "" {
		rl.DrawText(sd.Title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}

// DrawPanelDescriptor draws a whole panel at (x, y) and returns its bottom edge.
func (r *Renderer) DrawPanelDescriptor(x, y int32, pd PanelDescriptor, data any) int32 {
	pad := r.Theme.Padding
	height := r.measure(pd, data)
	r.DrawPanel(x, y, pd.Width, height)

	cy := y + pad
	if pd.Title != "" {
		rl.DrawText(pd.Title, x+pad, cy, 16, rl.White)
		cy += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		cy = r.DrawSection(x+pad, cy, sd, data, pd.Width-pad*2)
	}
	return y + height
}

func (r *Renderer) measure(pd PanelDescriptor, data any) int32 {
	h := r.Theme.Padding * 2
	if pd.Title != "" {
		h += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if !shown(sd.Visible, data) {
			continue
		}
		if sd.Title != "" {
			h += r.Theme.LineHeight
		}
		for _, fd := range sd.Fields {
			if shown(fd.Visible, data) {
				h += r.rowHeight(fd.Widget)
			}
		}
		h += 4
	}
	return h
}
