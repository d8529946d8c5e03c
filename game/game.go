// Package game wires the hover controllers and the physics world into a fixed-step
// simulation. Rendering lives in the viewer package so the simulation runs headless.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/config"
	"github.com/pthm-cable/hoverwalk/physics"
	"github.com/pthm-cable/hoverwalk/systems"
	"github.com/pthm-cable/hoverwalk/telemetry"
)

// Errors returned by the game API.
var (
	ErrNotCharacter  = errors.New("entity is not a hovering character")
	ErrUnknownSystem = errors.New("no runner for registered system")
)

// Options configures a new game.
type Options struct {
	Config          *config.Config // nil = config.Cfg()
	Seed            int64
	LogStats        bool
	StatsWindowSec  float64 // 0 = Telemetry.StatsWindow
	OutputDir       string
	StepsPerUpdate  int
	ExtraCharacters int // Randomly placed characters on top of the scene
	StatsCallback   func(telemetry.WindowStats)
}

// MaxStepsPerUpdate bounds the simulation speed multiplier.
const MaxStepsPerUpdate = 10

// stage is one entry of the tick pipeline.
type stage struct {
	id  string
	run func()
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config
	dt    float64

	physics *physics.World
	terrain *physics.Terrain

	// Systems, run in registry order
	registry *systems.SystemRegistry
	jump     *systems.JumpSystem
	hover    *systems.HoverSystem
	rotation *systems.RotationSystem
	patrol   *systems.PatrolSystem
	movement *systems.MovementSystem
	damping  *systems.DampingSystem
	pipeline []stage

	// Entity mappers
	characterMapper *ecs.Map11[
		components.Transform,
		components.Velocity,
		components.ExternalForce,
		components.ExternalImpulse,
		components.RigidBody,
		components.Collider,
		components.Hover,
		components.GroundProbe,
		components.Movement,
		components.Jumper,
		components.RotationDriver,
	]
	platformMapper *ecs.Map5[
		components.Transform,
		components.Velocity,
		components.RigidBody,
		components.Collider,
		components.PatrolRoute,
	]
	blockMapper   *ecs.Map3[components.Transform, components.RigidBody, components.Collider]
	terrainMapper *ecs.Map2[components.RigidBody, components.Collider]

	characterFilter *ecs.Filter5[
		components.Transform,
		components.Velocity,
		components.Hover,
		components.GroundProbe,
		components.Movement,
	]
	platformFilter *ecs.Filter2[components.Transform, components.PatrolRoute]
	shapeFilter    *ecs.Filter3[components.Transform, components.RigidBody, components.Collider]

	// Individual component mappers for lookups
	trMap       *ecs.Map[components.Transform]
	velMap      *ecs.Map[components.Velocity]
	rbMap       *ecs.Map[components.RigidBody]
	colMap      *ecs.Map[components.Collider]
	hoverMap    *ecs.Map[components.Hover]
	probeMap    *ecs.Map[components.GroundProbe]
	movementMap *ecs.Map[components.Movement]
	jumperMap   *ecs.Map[components.Jumper]
	routeMap    *ecs.Map[components.PatrolRoute]
	groundedMap *ecs.Map[components.Grounded]
	playerMap   *ecs.Map[components.Player]

	player    ecs.Entity
	hasPlayer bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	onRemove []func(ecs.Entity)

	// State
	tick           int32
	stepsPerUpdate int
	numCharacters  int
	numPlatforms   int
}

// NewGameWithOptions creates a game and spawns the configured scene.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	world := ecs.NewWorld()

	stepsPerUpdate := max(1, min(opts.StepsPerUpdate, MaxStepsPerUpdate))

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		cfg:            cfg,
		dt:             cfg.Physics.DT,
		physics:        physics.NewWorld(world, cfg.Physics.Gravity),
		registry:       systems.NewSystemRegistry(),
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),

		characterMapper: ecs.NewMap11[
			components.Transform,
			components.Velocity,
			components.ExternalForce,
			components.ExternalImpulse,
			components.RigidBody,
			components.Collider,
			components.Hover,
			components.GroundProbe,
			components.Movement,
			components.Jumper,
			components.RotationDriver,
		](world),
		platformMapper: ecs.NewMap5[
			components.Transform,
			components.Velocity,
			components.RigidBody,
			components.Collider,
			components.PatrolRoute,
		](world),
		blockMapper:   ecs.NewMap3[components.Transform, components.RigidBody, components.Collider](world),
		terrainMapper: ecs.NewMap2[components.RigidBody, components.Collider](world),
		characterFilter: ecs.NewFilter5[
			components.Transform,
			components.Velocity,
			components.Hover,
			components.GroundProbe,
			components.Movement,
		](world),
		platformFilter: ecs.NewFilter2[components.Transform, components.PatrolRoute](world),
		shapeFilter:    ecs.NewFilter3[components.Transform, components.RigidBody, components.Collider](world),

		trMap:       ecs.NewMap[components.Transform](world),
		velMap:      ecs.NewMap[components.Velocity](world),
		rbMap:       ecs.NewMap[components.RigidBody](world),
		colMap:      ecs.NewMap[components.Collider](world),
		hoverMap:    ecs.NewMap[components.Hover](world),
		probeMap:    ecs.NewMap[components.GroundProbe](world),
		movementMap: ecs.NewMap[components.Movement](world),
		jumperMap:   ecs.NewMap[components.Jumper](world),
		routeMap:    ecs.NewMap[components.PatrolRoute](world),
		groundedMap: ecs.NewMap[components.Grounded](world),
		playerMap:   ecs.NewMap[components.Player](world),
	}

	g.jump = systems.NewJumpSystem(world)
	g.hover = systems.NewHoverSystem(world, g.physics, cfg.Parallel.HoverThreshold, cfg.Parallel.Workers)
	g.rotation = systems.NewRotationSystem(world)
	g.patrol = systems.NewPatrolSystem(world)
	g.movement = systems.NewMovementSystem(world)
	g.damping = systems.NewDampingSystem(world)

	if err := g.buildPipeline(); err != nil {
		g.hover.Close()
		return nil, err
	}

	if err := g.spawnScene(); err != nil {
		g.hover.Close()
		return nil, err
	}
	if err := g.spawnRandomCharacters(opts.ExtraCharacters); err != nil {
		g.hover.Close()
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.hover.Close()
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("scene ready",
		"characters", g.numCharacters,
		"platforms", g.numPlatforms,
		"terrain", g.terrain != nil,
		"systems", g.registry.IDs(),
	)

	return g, nil
}

// buildPipeline binds every registered system ID to its runner in registry order.
func (g *Game) buildPipeline() error {
	runners := map[string]func(){
		systems.SystemJump:     g.jump.Update,
		systems.SystemHover:    g.hover.Update,
		systems.SystemRotation: g.rotation.Update,
		systems.SystemPatrol:   func() { g.patrol.Update(g.dt) },
		systems.SystemMovement: g.movement.Update,
		systems.SystemDamping:  g.damping.Update,
		systems.SystemPhysics:  func() { g.physics.Step(g.dt) },
	}

	g.pipeline = g.pipeline[:0]
	for _, id := range g.registry.IDs() {
		run, ok := runners[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSystem, id)
		}
		g.pipeline = append(g.pipeline, stage{id: id, run: run})
	}
	return nil
}

// Unload releases all resources.
func (g *Game) Unload() {
	g.hover.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// OnRemove registers fn to run before a body is despawned.
func (g *Game) OnRemove(fn func(ecs.Entity)) {
	g.onRemove = append(g.onRemove, fn)
}

// StepsPerUpdate returns how many ticks UpdateHeadless advances.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate clamps n to [1, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, MaxStepsPerUpdate))
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// World returns the underlying ECS world.
func (g *Game) World() *ecs.World {
	return g.world
}

// Physics returns the physics world.
func (g *Game) Physics() *physics.World {
	return g.physics
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Player returns the player character, if one was spawned.
func (g *Game) Player() (ecs.Entity, bool) {
	return g.player, g.hasPlayer
}

// CharacterCount returns the number of hovering characters.
func (g *Game) CharacterCount() int {
	return g.numCharacters
}

// PlatformCount returns the number of patrol platforms.
func (g *Game) PlatformCount() int {
	return g.numPlatforms
}

// HoverStats returns the hover counters from the last tick.
func (g *Game) HoverStats() systems.HoverStats {
	return g.hover.Stats()
}

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Registry returns the system registry that defines the tick order.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// Pipeline returns the system IDs in the order the tick runs them.
func (g *Game) Pipeline() []string {
	ids := make([]string, len(g.pipeline))
	for i, s := range g.pipeline {
		ids[i] = s.id
	}
	return ids
}

// Terrain returns the heightfield, or nil when the scene has none.
func (g *Game) Terrain() *physics.Terrain {
	return g.terrain
}
