// Package inspector shows the components of one selected body in a side panel.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/systems"
)

// Panel dimensions
const (
	PanelWidth   = 340
	PanelPadding = 10
	HeaderHeight = 30
	sectionGap   = 24
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 220, B: 80, A: 255}
)

// Inspector manages body selection and panel rendering.
type Inspector struct {
	world       *ecs.World
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32

	trMap       *ecs.Map[components.Transform]
	velMap      *ecs.Map[components.Velocity]
	forceMap    *ecs.Map[components.ExternalForce]
	rbMap       *ecs.Map[components.RigidBody]
	colMap      *ecs.Map[components.Collider]
	hoverMap    *ecs.Map[components.Hover]
	probeMap    *ecs.Map[components.GroundProbe]
	movementMap *ecs.Map[components.Movement]
	jumperMap   *ecs.Map[components.Jumper]
	routeMap    *ecs.Map[components.PatrolRoute]
	groundedMap *ecs.Map[components.Grounded]
}

// section is one component block of the panel.
type section struct {
	title  string
	fields []Field
}

// NewInspector creates an inspector over world anchored to the right screen edge.
func NewInspector(world *ecs.World, screenWidth int32) *Inspector {
	return &Inspector{
		world:       world,
		panelX:      screenWidth - PanelWidth - 10,
		panelY:      10,
		trMap:       ecs.NewMap[components.Transform](world),
		velMap:      ecs.NewMap[components.Velocity](world),
		forceMap:    ecs.NewMap[components.ExternalForce](world),
		rbMap:       ecs.NewMap[components.RigidBody](world),
		colMap:      ecs.NewMap[components.Collider](world),
		hoverMap:    ecs.NewMap[components.Hover](world),
		probeMap:    ecs.NewMap[components.GroundProbe](world),
		movementMap: ecs.NewMap[components.Movement](world),
		jumperMap:   ecs.NewMap[components.Jumper](world),
		routeMap:    ecs.NewMap[components.PatrolRoute](world),
		groundedMap: ecs.NewMap[components.Grounded](world),
	}
}

// Resize re-anchors the panel after a window resize.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Contains reports whether a screen point falls on the open panel.
func (ins *Inspector) Contains(px, py float32) bool {
	if _, ok := ins.Selected(); !ok {
		return false
	}
	h := ins.panelHeight(ins.sections())
	return int32(px) >= ins.panelX && int32(px) <= ins.panelX+PanelWidth &&
		int32(py) >= ins.panelY && int32(py) <= ins.panelY+h
}

// HandleClick selects the nearest pickable body under the mouse, or closes the
// panel when the close button is hit. Returns true if the click was consumed.
func (ins *Inspector) HandleClick(mouse rl.Vector2, cam rl.Camera3D, candidates []ecs.Entity) bool {
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		mx, my := int32(mouse.X), int32(mouse.Y)
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return true
		}
		if ins.Contains(mouse.X, mouse.Y) {
			return true
		}
	}

	ray := rl.GetScreenToWorldRay(mouse, cam)

	var closest ecs.Entity
	closestDist := float32(1e30)
	found := false
	for _, e := range candidates {
		box, ok := ins.bounds(e)
		if !ok {
			continue
		}
		hit := rl.GetRayCollisionBox(ray, box)
		if hit.Hit && hit.Distance < closestDist {
			closest = e
			closestDist = hit.Distance
			found = true
		}
	}

	if found {
		ins.Select(closest)
	}
	return found
}

// bounds returns the world AABB of a body's collider.
func (ins *Inspector) bounds(e ecs.Entity) (rl.BoundingBox, bool) {
	if !ins.world.Alive(e) || !ins.trMap.Has(e) || !ins.colMap.Has(e) {
		return rl.BoundingBox{}, false
	}
	tr := ins.trMap.Get(e)
	col := ins.colMap.Get(e)

	var half [3]float64
	switch col.Shape {
	case components.ShapeBox:
		half = [3]float64{col.HalfExtents[0], col.HalfExtents[1], col.HalfExtents[2]}
	case components.ShapeCapsule:
		half = [3]float64{col.Radius, col.HalfHeight + col.Radius, col.Radius}
	default:
		return rl.BoundingBox{}, false
	}

	p := tr.Position
	return rl.BoundingBox{
		Min: rl.Vector3{X: float32(p[0] - half[0]), Y: float32(p[1] - half[1]), Z: float32(p[2] - half[2])},
		Max: rl.Vector3{X: float32(p[0] + half[0]), Y: float32(p[1] + half[1]), Z: float32(p[2] + half[2])},
	}, true
}

// Select shows e in the panel.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// SelectNext cycles the selection through candidates.
func (ins *Inspector) SelectNext(candidates []ecs.Entity) {
	if len(candidates) == 0 {
		ins.Deselect()
		return
	}
	next := 0
	if ins.hasSelected {
		for i, e := range candidates {
			if e == ins.selected {
				next = (i + 1) % len(candidates)
				break
			}
		}
	}
	ins.Select(candidates[next])
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Forget drops the selection if it refers to e. Called before e is removed.
func (ins *Inspector) Forget(e ecs.Entity) {
	if ins.hasSelected && ins.selected == e {
		ins.Deselect()
	}
}

// Selected returns the selected body, if any.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	if ins.hasSelected && !ins.world.Alive(ins.selected) {
		ins.Deselect()
	}
	return ins.selected, ins.hasSelected
}

// sections collects the component blocks present on the selected body.
func (ins *Inspector) sections() []section {
	e := ins.selected
	var out []section
	add := func(comp interface{}) {
		out = append(out, section{title: ComponentName(comp), fields: ExtractFields(comp)})
	}
	if ins.trMap.Has(e) {
		add(ins.trMap.Get(e))
	}
	if ins.velMap.Has(e) {
		add(ins.velMap.Get(e))
	}
	if ins.forceMap.Has(e) {
		add(ins.forceMap.Get(e))
	}
	if ins.rbMap.Has(e) {
		add(ins.rbMap.Get(e))
	}
	if ins.colMap.Has(e) {
		add(ins.colMap.Get(e))
	}
	if ins.hoverMap.Has(e) {
		add(ins.hoverMap.Get(e))
	}
	if ins.probeMap.Has(e) {
		add(ins.probeMap.Get(e))
	}
	if ins.movementMap.Has(e) {
		add(ins.movementMap.Get(e))
	}
	if ins.jumperMap.Has(e) {
		add(ins.jumperMap.Get(e))
	}
	if ins.routeMap.Has(e) {
		add(ins.routeMap.Get(e))
	}
	return out
}

func (ins *Inspector) panelHeight(secs []section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	h += 22 + rowAngle + 8
	for _, s := range secs {
		h += sectionGap
		for _, f := range s.fields {
			h += FieldHeight(f)
		}
	}
	return h + PanelPadding
}

// Draw renders the inspector panel if a body is selected.
func (ins *Inspector) Draw() {
	e, ok := ins.Selected()
	if !ok {
		return
	}

	secs := ins.sections()
	panelHeight := ins.panelHeight(secs)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	kind := "Block"
	switch {
	case ins.hoverMap.Has(e):
		kind = "Character"
	case ins.routeMap.Has(e):
		kind = "Platform"
	}
	status := ""
	if ins.groundedMap.Has(e) {
		status = "  [grounded]"
	}
	rl.DrawText(fmt.Sprintf("ID: %d  %s%s", e.ID(), kind, status), x, y, 14, ColorHeaderText)
	y += 22

	var heading float64
	if ins.trMap.Has(e) {
		heading = systems.Heading(ins.trMap.Get(e).Rotation)
	}
	y += DrawAngle(x, y, "Heading", heading)

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	for _, s := range secs {
		ins.drawSectionHeader(x, y, s.title)
		y += sectionGap
		for _, f := range s.fields {
			y += DrawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight outlines the selected body in 3D. Call inside BeginMode3D.
func (ins *Inspector) DrawSelectionHighlight() {
	e, ok := ins.Selected()
	if !ok {
		return
	}
	box, ok := ins.bounds(e)
	if !ok {
		return
	}
	rl.DrawBoundingBox(box, ColorHighlight)
}
