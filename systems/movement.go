package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// AccelerationMultiplier picks the acceleration scale for the angle (degrees) between the
// desired direction and the current horizontal velocity. Bands are open at 90 and 145,
// so those exact angles fall through to the base band.
func AccelerationMultiplier(angleDeg float64) float64 {
	switch {
	case angleDeg > 145:
		return 4
	case angleDeg > 90 && angleDeg < 145:
		return 3
	case angleDeg > 45 && angleDeg < 90:
		return 2
	default:
		return 1
	}
}

// LocomotionForce returns the horizontal driving force for a movement state and velocity.
// The returned Y is always zero.
func LocomotionForce(m components.Movement, velocity mgl64.Vec3) mgl64.Vec3 {
	flatDir := flatten(m.Direction)
	flatVel := flatten(velocity)

	accel := m.Acceleration
	if !isZero(flatDir) && !isZero(flatVel) {
		accel *= AccelerationMultiplier(angleBetweenDeg(flatDir, flatVel))
	}

	f := normalizeOrZero(m.Direction).Mul(accel)
	return mgl64.Vec3{f.X(), 0, f.Z()}
}

// MovementSystem converts each body's desired direction into a horizontal force.
// The vertical force written by the hover phase is kept.
type MovementSystem struct {
	filter *ecs.Filter3[components.ExternalForce, components.Movement, components.Velocity]
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter3[components.ExternalForce, components.Movement, components.Velocity](w),
	}
}

// Update runs the movement system.
func (s *MovementSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		force, movement, vel := query.Get()

		f := LocomotionForce(*movement, vel.Linear)
		force.Force = mgl64.Vec3{f.X(), force.Force.Y(), f.Z()}
	}
}
