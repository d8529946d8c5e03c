package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// JumpSystem turns pending jump requests into upward impulses for grounded bodies.
// Requests from airborne bodies are dropped.
type JumpSystem struct {
	filter      *ecs.Filter2[components.Jumper, components.ExternalImpulse]
	groundedMap *ecs.Map[components.Grounded]

	jumps int
}

// NewJumpSystem creates a new jump system.
func NewJumpSystem(w *ecs.World) *JumpSystem {
	return &JumpSystem{
		filter:      ecs.NewFilter2[components.Jumper, components.ExternalImpulse](w),
		groundedMap: ecs.NewMap[components.Grounded](w),
	}
}

// Jumps returns the number of impulses applied in the last update.
func (s *JumpSystem) Jumps() int {
	return s.jumps
}

// Update runs the jump system.
func (s *JumpSystem) Update() {
	s.jumps = 0
	query := s.filter.Query()
	for query.Next() {
		jumper, impulse := query.Get()
		if !jumper.Requested {
			continue
		}
		jumper.Requested = false

		if s.groundedMap.Has(query.Entity()) {
			impulse.Add(mgl64.Vec3{0, jumper.Impulse, 0})
			s.jumps++
		}
	}
}
