package components

import "github.com/go-gl/mathgl/mgl64"

// BodyKind selects how the physics engine treats a body.
type BodyKind uint8

const (
	BodyDynamic   BodyKind = iota // Integrated from forces and impulses
	BodyKinematic                 // Moved by gameplay code, never integrated
	BodyFixed                     // Never moves
)

func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	case BodyFixed:
		return "fixed"
	}
	return "unknown"
}

// Transform holds world position and orientation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat `inspect:"skip"`
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// Velocity holds the linear velocity of a body.
type Velocity struct {
	Linear mgl64.Vec3
}

// ExternalForce is the continuous force accumulator. Controllers overwrite it every tick.
type ExternalForce struct {
	Force mgl64.Vec3
}

// ExternalImpulse is the one-shot impulse accumulator. Writers append, the physics step consumes.
type ExternalImpulse struct {
	Impulse mgl64.Vec3
}

// Add appends an impulse for the next integration step.
func (i *ExternalImpulse) Add(impulse mgl64.Vec3) {
	i.Impulse = i.Impulse.Add(impulse)
}

// RigidBody holds physical properties used by the integrator.
type RigidBody struct {
	Kind         BodyKind
	Mass         float64
	LockRotation bool
}

// ColliderShape identifies the collision geometry.
type ColliderShape uint8

const (
	ShapeBox ColliderShape = iota
	ShapeCapsule
	ShapeHeightfield
)

func (s ColliderShape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	case ShapeHeightfield:
		return "heightfield"
	}
	return "unknown"
}

// Collider describes collision geometry centered on the body's Transform.
type Collider struct {
	Shape       ColliderShape
	HalfExtents mgl64.Vec3 // ShapeBox
	HalfHeight  float64    // ShapeCapsule: half length of the cylinder section
	Radius      float64    // ShapeCapsule
	Sensor      bool       // Sensors never block rays
}

// BoxCollider returns a solid box collider.
func BoxCollider(halfExtents mgl64.Vec3) Collider {
	return Collider{Shape: ShapeBox, HalfExtents: halfExtents}
}

// CapsuleCollider returns a solid Y-aligned capsule collider.
func CapsuleCollider(halfHeight, radius float64) Collider {
	return Collider{Shape: ShapeCapsule, HalfHeight: halfHeight, Radius: radius}
}

// BottomOffset returns the distance from the body center to its lowest point.
func (c *Collider) BottomOffset() float64 {
	switch c.Shape {
	case ShapeBox:
		return c.HalfExtents.Y()
	case ShapeCapsule:
		return c.HalfHeight + c.Radius
	}
	return 0
}
