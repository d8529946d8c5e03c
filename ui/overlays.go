package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable debug layer.
type OverlayID string

const (
	OverlayProbeRays   OverlayID = "probe_rays"
	OverlayColliders   OverlayID = "colliders"
	OverlayWaypoints   OverlayID = "waypoints"
	OverlayFacing      OverlayID = "facing"
	OverlayForces      OverlayID = "forces"
	OverlayTerrainWire OverlayID = "terrain_wire"
	OverlayTerrainFill OverlayID = "terrain_fill"
)

// OverlayDescriptor describes one overlay. Overlays sharing a non-empty Group are
// mutually exclusive: enabling one disables the rest.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no binding
	KeyLabel    string // shown next to the check box
	Category    string
	Group       string
	On          bool // initial state
}

// Keys avoid the movement, camera and panel bindings.
var defaultOverlays = []OverlayDescriptor{
	{OverlayTerrainFill, "Terrain Shading", "Draw the heightfield as shaded triangles", rl.KeyG, "G", "scene", "terrain", true},
	{OverlayTerrainWire, "Terrain Wireframe", "Draw the heightfield as a line grid", rl.KeyH, "H", "scene", "terrain", false},
	{OverlayWaypoints, "Patrol Routes", "Show platform waypoints and the current target", rl.KeyN, "N", "scene", "", false},
	{OverlayProbeRays, "Probe Rays", "Show hover probes, green when grounded", rl.KeyR, "R", "debug", "", true},
	{OverlayColliders, "Colliders", "Show collider bounds used by the raycaster", rl.KeyC, "C", "debug", "", false},
	{OverlayFacing, "Facing", "Show each character's forward axis", rl.KeyF, "F", "debug", "", true},
	{OverlayForces, "Forces", "Show the controller force written this tick", rl.KeyV, "V", "debug", "", false},
}

// OverlayRegistry holds overlay descriptors in display order and their on/off state.
type OverlayRegistry struct {
	descs   []OverlayDescriptor
	enabled map[OverlayID]bool
}

// NewOverlayRegistry returns a registry holding the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register appends d, applying its initial state.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	r.descs = append(r.descs, d)
	r.enabled[d.ID] = false
	if d.On {
		r.SetEnabled(d.ID, true)
	}
}

func (r *OverlayRegistry) find(id OverlayID) (OverlayDescriptor, bool) {
	i := slices.IndexFunc(r.descs, func(d OverlayDescriptor) bool { return d.ID == id })
	if i < 0 {
		return OverlayDescriptor{}, false
	}
	return r.descs[i], true
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	d, ok := r.find(id)
	if !ok {
		return
	}
	if on && d.Group != "" {
		for _, other := range r.descs {
			if other.Group == d.Group {
				r.enabled[other.ID] = false
			}
		}
	}
	r.enabled[id] = on
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	on := !r.enabled[id]
	r.SetEnabled(id, on)
	return r.enabled[id]
}

func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns the overlays in category, in display order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.descs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.descs {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no overlay uses
// the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, d := range r.descs {
		if d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}
