// Package physics is a small rigid-body world used to host the controllers headless.
// It integrates dynamic bodies from their force and impulse accumulators, resolves
// penetration with static ground and answers scene raycasts.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// shape is a read-only snapshot of one collider, rebuilt by Sync.
type shape struct {
	entity ecs.Entity
	kind   components.BodyKind
	sensor bool
	min    mgl64.Vec3
	max    mgl64.Vec3
}

// World integrates bodies stored in an ark world.
type World struct {
	gravity mgl64.Vec3

	terrain       *Terrain
	terrainEntity ecs.Entity
	hasTerrain    bool

	shapes []shape

	shapeFilter *ecs.Filter3[components.Transform, components.RigidBody, components.Collider]
	bodyFilter  *ecs.Filter5[
		components.Transform,
		components.Velocity,
		components.ExternalForce,
		components.ExternalImpulse,
		components.RigidBody,
	]
	colliderMap *ecs.Map[components.Collider]
}

// NewWorld creates a physics world over the given ECS world.
// gravity is the vertical acceleration (negative = down).
func NewWorld(w *ecs.World, gravity float64) *World {
	return &World{
		gravity:     mgl64.Vec3{0, gravity, 0},
		shapes:      make([]shape, 0, 64),
		shapeFilter: ecs.NewFilter3[components.Transform, components.RigidBody, components.Collider](w),
		bodyFilter: ecs.NewFilter5[
			components.Transform,
			components.Velocity,
			components.ExternalForce,
			components.ExternalImpulse,
			components.RigidBody,
		](w),
		colliderMap: ecs.NewMap[components.Collider](w),
	}
}

// SetTerrain attaches a heightfield owned by the given fixed entity.
func (p *World) SetTerrain(t *Terrain, owner ecs.Entity) {
	p.terrain = t
	p.terrainEntity = owner
	p.hasTerrain = t != nil
}

// Terrain returns the attached heightfield, or nil.
func (p *World) Terrain() *Terrain {
	return p.terrain
}

// Gravity returns the gravity vector.
func (p *World) Gravity() mgl64.Vec3 {
	return p.gravity
}

// Sync rebuilds the collider snapshot used by raycasts.
// Call once per tick before any system queries the scene.
func (p *World) Sync() {
	p.shapes = p.shapes[:0]

	query := p.shapeFilter.Query()
	for query.Next() {
		tr, rb, col := query.Get()

		var half mgl64.Vec3
		switch col.Shape {
		case components.ShapeBox:
			half = col.HalfExtents
		case components.ShapeCapsule:
			// Capsules are probed as their bounding box
			half = mgl64.Vec3{col.Radius, col.HalfHeight + col.Radius, col.Radius}
		default:
			continue
		}

		p.shapes = append(p.shapes, shape{
			entity: query.Entity(),
			kind:   rb.Kind,
			sensor: col.Sensor,
			min:    tr.Position.Sub(half),
			max:    tr.Position.Add(half),
		})
	}
}

// Step integrates all dynamic bodies by dt seconds.
// Impulses are consumed and forces cleared; controllers rewrite forces every tick.
func (p *World) Step(dt float64) {
	p.Sync()

	groundFilter := QueryFilter{ExcludeDynamic: true, ExcludeSensors: true}
	down := mgl64.Vec3{0, -1, 0}

	query := p.bodyFilter.Query()
	for query.Next() {
		tr, vel, force, impulse, rb := query.Get()

		if rb.Kind != components.BodyDynamic {
			force.Force = mgl64.Vec3{}
			impulse.Impulse = mgl64.Vec3{}
			continue
		}

		invMass := 1.0
		if rb.Mass > 0 {
			invMass = 1.0 / rb.Mass
		}

		// Semi-implicit Euler: velocity first, then position with the new velocity
		accel := force.Force.Mul(invMass).Add(p.gravity)
		vel.Linear = vel.Linear.Add(accel.Mul(dt)).Add(impulse.Impulse.Mul(invMass))
		tr.Position = tr.Position.Add(vel.Linear.Mul(dt))

		force.Force = mgl64.Vec3{}
		impulse.Impulse = mgl64.Vec3{}

		entity := query.Entity()
		if !p.colliderMap.Has(entity) {
			continue
		}
		bottom := p.colliderMap.Get(entity).BottomOffset()
		if bottom <= 0 {
			continue
		}

		// Push the body out of static ground it sank into
		if hit, ok := p.CastRay(tr.Position, down, bottom, true, groundFilter); ok {
			tr.Position[1] += bottom - hit.Distance
			if vel.Linear.Y() < 0 {
				vel.Linear[1] = 0
			}
		}
	}
}
