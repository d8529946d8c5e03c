package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/config"
	"github.com/pthm-cable/hoverwalk/physics"
)

// Character capsule dimensions.
const (
	CharacterHalfHeight = 0.5
	CharacterRadius     = 0.5
)

// spawnScene creates terrain, blocks, platforms and characters from the scene config.
// The first character becomes the player.
func (g *Game) spawnScene() error {
	cfg := g.cfg

	if cfg.Terrain.Size > 0 {
		g.spawnTerrain(physics.NewTerrain(cfg.Terrain))
	}

	for i, b := range cfg.Scene.Blocks {
		g.SpawnBlock(vec3(b.Center), vec3(b.HalfExtents), b.Sensor)
		slog.Debug("block spawned", "index", i, "sensor", b.Sensor)
	}

	for i, p := range cfg.Scene.Platforms {
		if _, err := g.SpawnPlatform(p); err != nil {
			return fmt.Errorf("scene.platforms[%d]: %w", i, err)
		}
	}

	for i, c := range cfg.Scene.Characters {
		e, err := g.SpawnCharacter(vec3(c.Position))
		if err != nil {
			return fmt.Errorf("scene.characters[%d]: %w", i, err)
		}
		if i == 0 {
			g.playerMap.Add(e, &components.Player{})
			g.player = e
			g.hasPlayer = true
		}
	}

	return nil
}

// spawnTerrain attaches a heightfield owned by a fixed entity.
func (g *Game) spawnTerrain(t *physics.Terrain) {
	rb := components.RigidBody{Kind: components.BodyFixed}
	col := components.Collider{Shape: components.ShapeHeightfield}
	owner := g.terrainMapper.NewEntity(&rb, &col)
	g.physics.SetTerrain(t, owner)
	g.terrain = t
}

// SpawnCharacter creates a hovering, walking, jumping character at pos
// using the hover, movement and jump config sections.
func (g *Game) SpawnCharacter(pos mgl64.Vec3) (ecs.Entity, error) {
	cfg := g.cfg

	hover, err := components.HoverFromConfig(cfg.Hover)
	if err != nil {
		return ecs.Entity{}, err
	}
	movement, err := components.MovementFromConfig(cfg.Movement)
	if err != nil {
		return ecs.Entity{}, err
	}
	jumper, err := components.NewJumper(cfg.Jump.Impulse)
	if err != nil {
		return ecs.Entity{}, err
	}

	tr := components.NewTransform(pos)
	rb := components.RigidBody{Kind: components.BodyDynamic, Mass: cfg.Physics.CharacterMass, LockRotation: true}
	col := components.CapsuleCollider(CharacterHalfHeight, CharacterRadius)

	e := g.characterMapper.NewEntity(
		&tr,
		&components.Velocity{},
		&components.ExternalForce{},
		&components.ExternalImpulse{},
		&rb,
		&col,
		&hover,
		&components.GroundProbe{},
		&movement,
		&jumper,
		&components.RotationDriver{},
	)
	g.numCharacters++
	return e, nil
}

// SpawnPlatform creates a kinematic box that patrols the configured waypoints.
// The platform starts on its first waypoint.
func (g *Game) SpawnPlatform(p config.PlatformConfig) (ecs.Entity, error) {
	threshold := p.Threshold
	if threshold == 0 {
		threshold = g.cfg.Patrol.DistanceThreshold
	}

	waypoints := make([]mgl64.Vec3, len(p.Waypoints))
	for i, w := range p.Waypoints {
		waypoints[i] = vec3(w)
	}
	route, err := components.NewPatrolRoute(waypoints, threshold)
	if err != nil {
		return ecs.Entity{}, err
	}
	route.Enabled = !p.Disabled

	tr := components.NewTransform(waypoints[0])
	rb := components.RigidBody{Kind: components.BodyKinematic}
	col := components.BoxCollider(vec3(p.HalfExtents))

	e := g.platformMapper.NewEntity(&tr, &components.Velocity{}, &rb, &col, &route)
	g.numPlatforms++
	return e, nil
}

// SpawnBlock creates a fixed box. Sensor blocks never hold a body up.
func (g *Game) SpawnBlock(center, halfExtents mgl64.Vec3, sensor bool) ecs.Entity {
	tr := components.NewTransform(center)
	rb := components.RigidBody{Kind: components.BodyFixed}
	col := components.BoxCollider(halfExtents)
	col.Sensor = sensor
	return g.blockMapper.NewEntity(&tr, &rb, &col)
}

// spawnRandomCharacters drops n characters at random positions above the scene.
func (g *Game) spawnRandomCharacters(n int) error {
	spread := 20.0
	if g.terrain != nil {
		spread = g.terrain.Size() * 0.4
	}

	for i := 0; i < n; i++ {
		x := (g.rng.Float64()*2 - 1) * spread
		z := (g.rng.Float64()*2 - 1) * spread
		y := g.groundHeight(x, z) + g.cfg.Hover.RideHeight + g.rng.Float64()
		if _, err := g.SpawnCharacter(mgl64.Vec3{x, y, z}); err != nil {
			return err
		}
	}
	return nil
}

// groundHeight returns the terrain height at (x, z), or 0 without terrain.
func (g *Game) groundHeight(x, z float64) float64 {
	if g.terrain == nil || !g.terrain.Contains(x, z) {
		return 0
	}
	return g.terrain.Height(x, z)
}

// RemoveBody despawns a character, platform or block.
func (g *Game) RemoveBody(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	if g.hoverMap.Has(e) {
		g.numCharacters--
	}
	if g.routeMap.Has(e) {
		g.numPlatforms--
	}
	if g.hasPlayer && e == g.player {
		g.hasPlayer = false
	}
	for _, fn := range g.onRemove {
		fn(e)
	}
	g.world.RemoveEntity(e)
}

// vec3 converts a config triple.
func vec3(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
