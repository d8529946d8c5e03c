package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/config"
)

type testScene struct {
	world   *ecs.World
	physics *World
	bodies  *ecs.Map6[
		components.Transform,
		components.Velocity,
		components.ExternalForce,
		components.ExternalImpulse,
		components.RigidBody,
		components.Collider,
	]
}

func approxVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func newTestScene(gravity float64) *testScene {
	w := ecs.NewWorld()
	return &testScene{
		world:   w,
		physics: NewWorld(w, gravity),
		bodies: ecs.NewMap6[
			components.Transform,
			components.Velocity,
			components.ExternalForce,
			components.ExternalImpulse,
			components.RigidBody,
			components.Collider,
		](w),
	}
}

func (s *testScene) add(pos mgl64.Vec3, kind components.BodyKind, col components.Collider) ecs.Entity {
	tr := components.NewTransform(pos)
	return s.bodies.NewEntity(
		&tr,
		&components.Velocity{},
		&components.ExternalForce{},
		&components.ExternalImpulse{},
		&components.RigidBody{Kind: kind, Mass: 1},
		&col,
	)
}

var down = mgl64.Vec3{0, -1, 0}

func TestCastRayHitsBoxTop(t *testing.T) {
	s := newTestScene(0)
	ground := s.add(mgl64.Vec3{0, -0.5, 0}, components.BodyFixed, components.BoxCollider(mgl64.Vec3{10, 0.5, 10}))
	s.physics.Sync()

	hit, ok := s.physics.CastRay(mgl64.Vec3{1, 3, 2}, down, 4, true, QueryFilter{})
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Entity != ground {
		t.Errorf("hit entity = %v, want ground %v", hit.Entity, ground)
	}
	if math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("distance = %f, want 3", hit.Distance)
	}
	if !approxVec(hit.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("normal = %v, want +Y", hit.Normal)
	}
}

func TestCastRayRespectsMaxDistance(t *testing.T) {
	s := newTestScene(0)
	s.add(mgl64.Vec3{0, -0.5, 0}, components.BodyFixed, components.BoxCollider(mgl64.Vec3{10, 0.5, 10}))
	s.physics.Sync()

	if _, ok := s.physics.CastRay(mgl64.Vec3{0, 5, 0}, down, 4, true, QueryFilter{}); ok {
		t.Error("expected miss beyond max distance")
	}
	if _, ok := s.physics.CastRay(mgl64.Vec3{0, 4, 0}, down, 4, true, QueryFilter{}); !ok {
		t.Error("expected hit at exactly max distance")
	}
}

func TestCastRayFilter(t *testing.T) {
	s := newTestScene(0)
	ground := s.add(mgl64.Vec3{0, -0.5, 0}, components.BodyFixed, components.BoxCollider(mgl64.Vec3{10, 0.5, 10}))
	s.add(mgl64.Vec3{0, 1, 0}, components.BodyDynamic, components.BoxCollider(mgl64.Vec3{0.5, 0.5, 0.5}))
	sensor := components.BoxCollider(mgl64.Vec3{0.5, 0.5, 0.5})
	sensor.Sensor = true
	s.add(mgl64.Vec3{0, 2.5, 0}, components.BodyFixed, sensor)
	s.physics.Sync()

	origin := mgl64.Vec3{0, 4, 0}

	hit, ok := s.physics.CastRay(origin, down, 10, true, QueryFilter{})
	if !ok || math.Abs(hit.Distance-1) > 1e-9 {
		t.Errorf("unfiltered: got %+v ok=%v, want sensor top at 1", hit, ok)
	}

	hit, ok = s.physics.CastRay(origin, down, 10, true, QueryFilter{ExcludeSensors: true})
	if !ok || math.Abs(hit.Distance-2.5) > 1e-9 {
		t.Errorf("no sensors: got %+v ok=%v, want dynamic top at 2.5", hit, ok)
	}

	hit, ok = s.physics.CastRay(origin, down, 10, true, QueryFilter{ExcludeSensors: true, ExcludeDynamic: true})
	if !ok || hit.Entity != ground || math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("static only: got %+v ok=%v, want ground at 4", hit, ok)
	}
}

func TestCastRaySolidInside(t *testing.T) {
	s := newTestScene(0)
	s.add(mgl64.Vec3{}, components.BodyFixed, components.BoxCollider(mgl64.Vec3{1, 1, 1}))
	s.physics.Sync()

	hit, ok := s.physics.CastRay(mgl64.Vec3{}, down, 5, true, QueryFilter{})
	if !ok || hit.Distance != 0 {
		t.Errorf("solid: got %+v ok=%v, want distance 0", hit, ok)
	}

	hit, ok = s.physics.CastRay(mgl64.Vec3{}, down, 5, false, QueryFilter{})
	if !ok || math.Abs(hit.Distance-1) > 1e-9 {
		t.Errorf("hollow: got %+v ok=%v, want exit at 1", hit, ok)
	}
}

func TestStepConsumesImpulse(t *testing.T) {
	s := newTestScene(0)
	e := s.add(mgl64.Vec3{0, 10, 0}, components.BodyDynamic, components.Collider{})

	_, vel, force, imp, _, _ := s.bodies.Get(e)
	imp.Impulse = mgl64.Vec3{0, 30, 0}
	force.Force = mgl64.Vec3{6, 0, 0}

	dt := 0.1
	s.physics.Step(dt)

	if math.Abs(vel.Linear.Y()-30) > 1e-9 {
		t.Errorf("vy = %f, want 30", vel.Linear.Y())
	}
	if math.Abs(vel.Linear.X()-0.6) > 1e-9 {
		t.Errorf("vx = %f, want 0.6", vel.Linear.X())
	}
	if imp.Impulse != (mgl64.Vec3{}) {
		t.Errorf("impulse not consumed: %v", imp.Impulse)
	}
	if force.Force != (mgl64.Vec3{}) {
		t.Errorf("force not cleared: %v", force.Force)
	}

	// Impulse applies once
	s.physics.Step(dt)
	if math.Abs(vel.Linear.Y()-30) > 1e-9 {
		t.Errorf("vy after second step = %f, want 30", vel.Linear.Y())
	}
}

func TestStepResolvesGroundPenetration(t *testing.T) {
	s := newTestScene(-9.81)
	s.add(mgl64.Vec3{0, -0.5, 0}, components.BodyFixed, components.BoxCollider(mgl64.Vec3{10, 0.5, 10}))
	body := s.add(mgl64.Vec3{0, 1.5, 0}, components.BodyDynamic, components.CapsuleCollider(0.5, 0.5))

	for i := 0; i < 300; i++ {
		s.physics.Step(1.0 / 60.0)
	}

	tr, vel, _, _, _, _ := s.bodies.Get(body)
	if math.Abs(tr.Position.Y()-1) > 0.01 {
		t.Errorf("resting height = %f, want 1 (capsule bottom on ground)", tr.Position.Y())
	}
	if vel.Linear.Y() < -1e-9 {
		t.Errorf("resting body still falling: vy = %f", vel.Linear.Y())
	}
}

func TestKinematicBodiesAreNotIntegrated(t *testing.T) {
	s := newTestScene(-9.81)
	e := s.add(mgl64.Vec3{0, 5, 0}, components.BodyKinematic, components.BoxCollider(mgl64.Vec3{1, 1, 1}))

	s.physics.Step(1.0 / 60.0)

	tr, _, _, _, _, _ := s.bodies.Get(e)
	if tr.Position != (mgl64.Vec3{0, 5, 0}) {
		t.Errorf("kinematic body moved to %v", tr.Position)
	}
}

func TestFlatTerrainRaycast(t *testing.T) {
	s := newTestScene(0)
	fixed := components.RigidBody{Kind: components.BodyFixed}
	owner := ecs.NewMap1[components.RigidBody](s.world).NewEntity(&fixed)
	s.physics.SetTerrain(NewFlatTerrain(100, 11, -1), owner)
	s.physics.Sync()

	hit, ok := s.physics.CastRay(mgl64.Vec3{3, 2, -7}, down, 4, true, QueryFilter{ExcludeDynamic: true})
	if !ok {
		t.Fatal("expected terrain hit")
	}
	if hit.Entity != owner {
		t.Errorf("hit entity = %v, want terrain owner", hit.Entity)
	}
	if math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("distance = %f, want 3", hit.Distance)
	}

	// Slanted ray marches and bisects
	dir := mgl64.Vec3{1, -1, 0}.Normalize()
	hit, ok = s.physics.CastRay(mgl64.Vec3{0, 2, 0}, dir, 10, true, QueryFilter{})
	if !ok {
		t.Fatal("expected slanted hit")
	}
	want := 3 * math.Sqrt2
	if math.Abs(hit.Distance-want) > 1e-4 {
		t.Errorf("slanted distance = %f, want %f", hit.Distance, want)
	}
}

func TestNoiseTerrainIsBounded(t *testing.T) {
	cfg := config.TerrainConfig{
		Size: 50, Resolution: 33, BaseHeight: -1, Amplitude: 0.5,
		Scale: 0.05, Octaves: 3, Lacunarity: 2, Gain: 0.5, Seed: 3,
	}
	terrain := NewTerrain(cfg)

	for iz := 0; iz < terrain.Resolution(); iz++ {
		for ix := 0; ix < terrain.Resolution(); ix++ {
			h := terrain.SampleHeight(ix, iz)
			if h < -1.5-1e-9 || h > -0.5+1e-9 {
				t.Fatalf("height %f at (%d,%d) outside base±amplitude", h, ix, iz)
			}
		}
	}

	n := terrain.Normal(0, 0)
	if math.Abs(n.Len()-1) > 1e-9 || n.Y() <= 0 {
		t.Errorf("normal %v should be unit and upward", n)
	}
}
