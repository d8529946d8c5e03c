// Package viewer is the raylib front end for a running game: a follow camera,
// keyboard control of the player, 3D scene drawing and the HUD panels.
// Create it only after the raylib window exists.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/camera"
	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/game"
	"github.com/pthm-cable/hoverwalk/inspector"
	"github.com/pthm-cable/hoverwalk/renderer"
	"github.com/pthm-cable/hoverwalk/ui"
)

// Viewer draws a game and routes input to it.
type Viewer struct {
	game  *game.Game
	world *ecs.World

	// Scene queries
	shapeFilter *ecs.Filter3[components.Transform, components.RigidBody, components.Collider]
	trMap       *ecs.Map[components.Transform]
	hoverMap    *ecs.Map[components.Hover]
	probeMap    *ecs.Map[components.GroundProbe]
	forceMap    *ecs.Map[components.ExternalForce]
	routeMap    *ecs.Map[components.PatrolRoute]
	groundedMap *ecs.Map[components.Grounded]
	playerMap   *ecs.Map[components.Player]

	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	terrain    *renderer.TerrainRenderer

	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	tuning    *ui.TuningPanel
	overlays  *ui.OverlayRegistry
	bodyPanel ui.PanelDescriptor
	uiRender  *ui.Renderer
	inspector *inspector.Inspector

	screenWidth  int32
	screenHeight int32
	paused       bool
	showPerf     bool
	tunedEntity  ecs.Entity
	tunedValid   bool
}

// New builds a viewer for g sized to the current window.
func New(g *game.Game) *Viewer {
	world := g.World()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	v := &Viewer{
		game:        g,
		world:       world,
		shapeFilter: ecs.NewFilter3[components.Transform, components.RigidBody, components.Collider](world),
		trMap:       ecs.NewMap[components.Transform](world),
		hoverMap:    ecs.NewMap[components.Hover](world),
		probeMap:    ecs.NewMap[components.GroundProbe](world),
		forceMap:    ecs.NewMap[components.ExternalForce](world),
		routeMap:    ecs.NewMap[components.PatrolRoute](world),
		groundedMap: ecs.NewMap[components.Grounded](world),
		playerMap:   ecs.NewMap[components.Player](world),

		background: renderer.NewBackgroundRenderer(w, h,
			rl.Color{R: 70, G: 110, B: 170, A: 255},
			rl.Color{R: 190, G: 210, B: 230, A: 255},
		),
		terrain: renderer.NewTerrainRenderer(g.Terrain()),

		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(10, 130),
		controls:  ui.NewControlsPanel(10, 130, 240),
		tuning:    ui.NewTuningPanel(10, h-330, 300),
		overlays:  ui.NewOverlayRegistry(),
		bodyPanel: ui.BodyPanelDescriptor(),
		uiRender:  ui.NewRenderer(),
		inspector: inspector.NewInspector(world, w),

		screenWidth:  w,
		screenHeight: h,
	}

	target := g.Config().Hover.RideHeight
	v.camera = camera.New(vecY(target))
	if p, ok := g.Player(); ok {
		v.camera.Target = v.trMap.Get(p).Position
	}

	g.OnRemove(v.inspector.Forget)
	ui.ApplyTheme()

	// Escape deselects instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	return v
}

// Update handles input, then advances the game unless paused.
func (v *Viewer) Update() {
	v.handleInput()
	v.game.RecordFrame()

	if v.paused {
		return
	}
	v.game.UpdateHeadless()
	v.followPlayer()
}

// Unload releases renderer resources.
func (v *Viewer) Unload() {
	v.terrain.Unload()
}

// Paused reports whether the simulation is halted.
func (v *Viewer) Paused() bool {
	return v.paused
}

// candidates returns the pickable bodies: characters, platforms and blocks.
func (v *Viewer) candidates() []ecs.Entity {
	var out []ecs.Entity
	query := v.shapeFilter.Query()
	for query.Next() {
		_, _, col := query.Get()
		if col.Shape == components.ShapeHeightfield {
			continue
		}
		out = append(out, query.Entity())
	}
	return out
}
