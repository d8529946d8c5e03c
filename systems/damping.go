package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// DragForce returns the horizontal drag to add for a body moving at velocity.
// Drag is applied once while moving and a second time above the soft top speed.
func DragForce(m components.Movement, velocity mgl64.Vec3) mgl64.Vec3 {
	flatVel := flatten(velocity)
	speed := flatVel.Len()
	drag := flatVel.Mul(-m.Deceleration)

	var total mgl64.Vec3
	if speed > 0 {
		total = total.Add(drag)
	}
	if speed > m.TopSpeed {
		total = total.Add(drag)
	}
	return total
}

// DampingSystem adds velocity-proportional drag on top of the force from the movement phase.
// It must run after MovementSystem in the same tick.
type DampingSystem struct {
	filter *ecs.Filter3[components.ExternalForce, components.Movement, components.Velocity]
}

// NewDampingSystem creates a new damping system.
func NewDampingSystem(w *ecs.World) *DampingSystem {
	return &DampingSystem{
		filter: ecs.NewFilter3[components.ExternalForce, components.Movement, components.Velocity](w),
	}
}

// Update runs the damping system.
func (s *DampingSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		force, movement, vel := query.Get()
		force.Force = force.Force.Add(DragForce(*movement, vel.Linear))
	}
}
