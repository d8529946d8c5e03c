package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/physics"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// approxVec compares by absolute distance; mgl64's ApproxEqual is relative and
// rejects rounding noise on components that should be zero.
func approxVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

// planeScene is a RayCaster with an infinite horizontal ground plane.
type planeScene struct {
	height float64
	owner  ecs.Entity
	miss   bool
}

func (p *planeScene) CastRay(origin, direction mgl64.Vec3, maxDistance float64, solid bool, filter physics.QueryFilter) (physics.RayHit, bool) {
	if p.miss || direction.Y() >= 0 {
		return physics.RayHit{}, false
	}
	d := (origin.Y() - p.height) / -direction.Y()
	if d < 0 {
		if !solid {
			return physics.RayHit{}, false
		}
		d = 0
	}
	if d > maxDistance {
		return physics.RayHit{}, false
	}
	return physics.RayHit{
		Entity:   p.owner,
		Distance: d,
		Point:    origin.Add(direction.Mul(d)),
		Normal:   mgl64.Vec3{0, 1, 0},
	}, true
}

// testWorld bundles a world and a character mapper.
type testWorld struct {
	world      *ecs.World
	characters *ecs.Map9[
		components.Transform,
		components.Velocity,
		components.ExternalForce,
		components.ExternalImpulse,
		components.RigidBody,
		components.Collider,
		components.Hover,
		components.GroundProbe,
		components.Movement,
	]
	grounded *ecs.Map[components.Grounded]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		world: w,
		characters: ecs.NewMap9[
			components.Transform,
			components.Velocity,
			components.ExternalForce,
			components.ExternalImpulse,
			components.RigidBody,
			components.Collider,
			components.Hover,
			components.GroundProbe,
			components.Movement,
		](w),
		grounded: ecs.NewMap[components.Grounded](w),
	}
}

func (tw *testWorld) spawnCharacter(pos mgl64.Vec3) ecs.Entity {
	tr := components.NewTransform(pos)
	col := components.CapsuleCollider(0.5, 0.5)
	hover := components.DefaultHover()
	movement := components.DefaultMovement()
	return tw.characters.NewEntity(
		&tr,
		&components.Velocity{},
		&components.ExternalForce{},
		&components.ExternalImpulse{},
		&components.RigidBody{Kind: components.BodyDynamic, Mass: 1, LockRotation: true},
		&col,
		&hover,
		&components.GroundProbe{},
		&movement,
	)
}

// spawnPlatform creates a kinematic patrol platform.
func (tw *testWorld) spawnPlatform(pos mgl64.Vec3, route components.PatrolRoute) ecs.Entity {
	tr := components.NewTransform(pos)
	col := components.BoxCollider(mgl64.Vec3{3, 0.25, 3})
	m := ecs.NewMap5[
		components.Transform,
		components.Velocity,
		components.RigidBody,
		components.Collider,
		components.PatrolRoute,
	](tw.world)
	return m.NewEntity(&tr, &components.Velocity{}, &components.RigidBody{Kind: components.BodyKinematic}, &col, &route)
}

func (tw *testWorld) body(e ecs.Entity) (*components.Transform, *components.Velocity, *components.ExternalForce) {
	tr, vel, force, _, _, _, _, _, _ := tw.characters.Get(e)
	return tr, vel, force
}
