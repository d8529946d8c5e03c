package ui

import (
	"fmt"
	"math"
)

// BodyView is the data the body panel reads from a character.
type BodyView struct {
	X, Y, Z       float64
	Speed         float64 // Horizontal
	VerticalSpeed float64
	Heading       float64 // Radians
	Grounded      bool
	ProbeHit      bool
	ProbeDistance float64
	RideHeight    float64
	SpringForce   float64
}

// BodyPanelDescriptor describes the followed character's readout.
func BodyPanelDescriptor() PanelDescriptor {
	return PanelDescriptor{
		ID:    "body",
		Title: "Player",
		Width: 260,
		Sections: []SectionDescriptor{
			{
				ID:    "state",
				Title: "State",
				Fields: []FieldDescriptor{
					{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
						b := d.(BodyView)
						return fmt.Sprintf("%.1f, %.1f, %.1f", b.X, b.Y, b.Z)
					}},
					{ID: "heading", Label: "Heading", Widget: WidgetText, Format: "%.0f deg", Getter: func(d any) float32 {
						return float32(d.(BodyView).Heading * 180 / math.Pi)
					}},
					{ID: "speed", Label: "Speed", Widget: WidgetBar, Getter: func(d any) float32 {
						return float32(d.(BodyView).Speed)
					}, Range: FieldRange{Min: 0, Max: 20}},
					{ID: "vspeed", Label: "Vert speed", Widget: WidgetCenteredBar, Getter: func(d any) float32 {
						return float32(d.(BodyView).VerticalSpeed)
					}, Range: FieldRange{Min: -15, Max: 15}},
				},
			},
			{
				ID:    "hover",
				Title: "Hover",
				Fields: []FieldDescriptor{
					{ID: "grounded", Label: "Grounded", Widget: WidgetFlag, FlagGetter: func(d any) bool {
						return d.(BodyView).Grounded
					}},
					{ID: "probe_hit", Label: "Probe hit", Widget: WidgetFlag, FlagGetter: func(d any) bool {
						return d.(BodyView).ProbeHit
					}},
					{ID: "distance", Label: "Distance", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 {
						return float32(d.(BodyView).ProbeDistance)
					}, Visible: func(d any) bool { return d.(BodyView).ProbeHit }},
					{ID: "ride_error", Label: "Ride error", Widget: WidgetCenteredBar, Getter: func(d any) float32 {
						b := d.(BodyView)
						return float32(b.ProbeDistance - b.RideHeight)
					}, Range: FieldRange{Min: -1, Max: 1}, Visible: func(d any) bool { return d.(BodyView).ProbeHit }},
					{ID: "spring", Label: "Spring", Widget: WidgetCenteredBar, Getter: func(d any) float32 {
						return float32(d.(BodyView).SpringForce)
					}, Range: FieldRange{Min: -1000, Max: 1000}},
				},
			},
		},
	}
}
