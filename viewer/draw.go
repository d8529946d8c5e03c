package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/game"
	"github.com/pthm-cable/hoverwalk/renderer"
	"github.com/pthm-cable/hoverwalk/systems"
	"github.com/pthm-cable/hoverwalk/ui"
)

// forceScale turns newtons into debug arrow length.
const forceScale = 0.004

const controlsLegend = "WASD move | Space jump | Arrows/RMB orbit | Wheel zoom | P pause | < > speed | T tune | O overlays | Tab/Click inspect | E platform | F3 perf"

// raylibCamera converts the orbit camera for raylib.
func (v *Viewer) raylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   renderer.Vec(v.camera.Position()),
		Target:     renderer.Vec(v.camera.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       float32(v.camera.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene and the HUD.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	v.background.Draw()

	rl.BeginMode3D(v.raylibCamera())
	v.drawScene()
	v.inspector.DrawSelectionHighlight()
	rl.EndMode3D()

	v.drawUI()
	rl.EndDrawing()
}

// drawScene draws terrain, bodies and the enabled overlays.
func (v *Viewer) drawScene() {
	if v.overlays.IsEnabled(ui.OverlayTerrainFill) {
		v.terrain.Draw()
	}
	if v.overlays.IsEnabled(ui.OverlayTerrainWire) {
		v.terrain.DrawWire(rl.Fade(rl.DarkGreen, 0.6))
	}
	if v.game.Terrain() == nil {
		rl.DrawGrid(40, 2)
	}

	query := v.shapeFilter.Query()
	for query.Next() {
		tr, rb, col := query.Get()
		e := query.Entity()

		switch {
		case v.hoverMap.Has(e):
			renderer.DrawCharacter(tr.Position, tr.Rotation, col.HalfHeight, col.Radius, renderer.CharacterStyle{
				Player:   v.playerMap.Has(e),
				Grounded: v.groundedMap.Has(e),
			})

		case col.Shape == components.ShapeBox:
			color := renderer.ColorBlock
			if v.routeMap.Has(e) {
				color = renderer.ColorPlatform
				if !v.routeMap.Get(e).Enabled {
					color = renderer.ColorPaused
				}
			} else if rb.Kind == components.BodyKinematic {
				color = renderer.ColorPlatform
			}
			renderer.DrawBox(tr.Position, col.HalfExtents, color, col.Sensor)
		}

		if col.Shape != components.ShapeHeightfield && v.overlays.IsEnabled(ui.OverlayColliders) {
			renderer.DrawColliderBounds(tr.Position, colliderHalf(col))
		}
		v.drawOverlays(e, tr)
	}
}

// drawOverlays draws the per-body debug overlays.
func (v *Viewer) drawOverlays(e ecs.Entity, tr *components.Transform) {
	if v.hoverMap.Has(e) {
		if v.overlays.IsEnabled(ui.OverlayProbeRays) {
			h := v.hoverMap.Get(e)
			p := v.probeMap.Get(e)
			renderer.DrawProbe(renderer.ProbeView{
				Origin:     tr.Position,
				RayLength:  h.RayLength,
				RideHeight: h.RideHeight,
				Hit:        p.Hit,
				Distance:   p.Distance,
				Grounded:   v.groundedMap.Has(e),
			})
		}
		if v.overlays.IsEnabled(ui.OverlayFacing) {
			renderer.DrawFacing(tr.Position, tr.Rotation, 1.5)
		}
		if v.overlays.IsEnabled(ui.OverlayForces) && v.forceMap.Has(e) {
			renderer.DrawForce(tr.Position, v.forceMap.Get(e).Force, forceScale)
		}
	}

	if v.routeMap.Has(e) && v.overlays.IsEnabled(ui.OverlayWaypoints) {
		r := v.routeMap.Get(e)
		renderer.DrawRoute(r.Waypoints, r.Index)
	}
}

// drawUI draws the 2D panels on top of the scene.
func (v *Viewer) drawUI() {
	g := v.game
	cfg := g.Config()

	grounded := 0
	for _, e := range g.Characters() {
		if g.IsGrounded(e) {
			grounded++
		}
	}

	v.hud.Draw(ui.HUDData{
		Title:      "Hover Walk",
		Characters: g.CharacterCount(),
		Platforms:  g.PlatformCount(),
		Grounded:   grounded,
		Tick:       g.Tick(),
		SimTime:    float64(g.Tick()) * cfg.Physics.DT,
		Speed:      g.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Paused:     v.paused,
		Hover:      g.HoverStats(),
	})
	v.hud.DrawControls(v.screenHeight, controlsLegend)

	panelY := int32(130)
	if v.controls.IsVisible() {
		v.controls.SetPosition(10, panelY)
		panelY = v.controls.Draw(v.overlays) + 10
	}
	if v.showPerf {
		v.perfPanel.SetPosition(10, panelY)
		v.perfPanel.Draw(ui.PerfPanelData{Stats: g.PerfStats(), Registry: g.Registry()})
	}

	if view, ok := v.playerView(); ok {
		v.uiRender.DrawPanelDescriptor(v.screenWidth-v.bodyPanel.Width-10, v.screenHeight-260, v.bodyPanel, view)
	}

	if v.tuning.IsVisible() {
		v.applyTuning(v.tuning.Draw())
	}

	v.inspector.Draw()
}

// playerView collects the player readout.
func (v *Viewer) playerView() (ui.BodyView, bool) {
	player, ok := v.game.Player()
	if !ok {
		return ui.BodyView{}, false
	}
	state, err := v.game.Body(player)
	if err != nil {
		return ui.BodyView{}, false
	}
	h, err := v.game.Hover(player)
	if err != nil {
		return ui.BodyView{}, false
	}
	return bodyView(state, h), true
}

func bodyView(s game.BodyState, h components.Hover) ui.BodyView {
	return ui.BodyView{
		X:             s.Position[0],
		Y:             s.Position[1],
		Z:             s.Position[2],
		Speed:         math.Hypot(s.Velocity[0], s.Velocity[2]),
		VerticalSpeed: s.Velocity[1],
		Heading:       systems.Heading(s.Rotation),
		Grounded:      s.Grounded,
		ProbeHit:      s.Probe.Hit,
		ProbeDistance: s.Probe.Distance,
		RideHeight:    h.RideHeight,
		SpringForce:   s.Probe.Force,
	}
}

// colliderHalf returns the AABB half extents of a box or capsule.
func colliderHalf(col *components.Collider) mgl64.Vec3 {
	if col.Shape == components.ShapeCapsule {
		return mgl64.Vec3{col.Radius, col.HalfHeight + col.Radius, col.Radius}
	}
	return col.HalfExtents
}
