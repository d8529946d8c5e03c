package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// PatrolSystem moves kinematic platforms around their waypoint loops.
// Each tick the platform eases toward its target by a factor of dt, so speed decays
// as it approaches and rises again after every waypoint switch.
type PatrolSystem struct {
	filter *ecs.Filter3[components.Transform, components.Velocity, components.PatrolRoute]
}

// NewPatrolSystem creates a new patrol system.
func NewPatrolSystem(w *ecs.World) *PatrolSystem {
	return &PatrolSystem{
		filter: ecs.NewFilter3[components.Transform, components.Velocity, components.PatrolRoute](w),
	}
}

// Update runs the patrol system.
// The platform velocity is its displacement over dt, for bodies riding on it.
func (s *PatrolSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, vel, route := query.Get()

		if !route.Enabled {
			vel.Linear[0], vel.Linear[1], vel.Linear[2] = 0, 0, 0
			continue
		}

		prev := tr.Position
		tr.Position = lerp(prev, route.Target(), dt)
		if dt > 0 {
			vel.Linear = tr.Position.Sub(prev).Mul(1 / dt)
		}

		if route.Arrived(tr.Position) {
			route.Advance()
		}
	}
}
