package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// LookRotation returns the orientation whose forward axis (-Z) points from eye to target,
// using upRef to fix roll. ok is false when the view direction is zero or parallel to upRef.
func LookRotation(eye, target, upRef mgl64.Vec3) (mgl64.Quat, bool) {
	back := eye.Sub(target)
	if back.Len() == 0 {
		return mgl64.Quat{}, false
	}
	back = back.Normalize()

	right := upRef.Cross(back)
	if right.Len() < 1e-9 {
		return mgl64.Quat{}, false
	}
	right = right.Normalize()
	newUp := back.Cross(right)

	m := mgl64.Mat3FromCols(right, newUp, back)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), true
}

// FacingRotation returns the orientation a RotationDriver body snaps to for a movement
// direction. The look target is position - direction.
func FacingRotation(position, direction mgl64.Vec3) (mgl64.Quat, bool) {
	if isZero(direction) {
		return mgl64.Quat{}, false
	}
	return LookRotation(position, position.Sub(direction), up)
}

// RotationSystem snaps bodies to face their movement direction every tick.
type RotationSystem struct {
	filter *ecs.Filter3[components.Transform, components.Movement, components.RotationDriver]
}

// NewRotationSystem creates a new rotation system.
func NewRotationSystem(w *ecs.World) *RotationSystem {
	return &RotationSystem{
		filter: ecs.NewFilter3[components.Transform, components.Movement, components.RotationDriver](w),
	}
}

// Update runs the rotation system. Zero directions leave the orientation untouched.
func (s *RotationSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		tr, movement, _ := query.Get()
		if q, ok := FacingRotation(tr.Position, movement.Direction); ok {
			tr.Rotation = q
		}
	}
}

// Heading returns the yaw in radians of a rotation's forward axis, measured from -Z toward +X.
func Heading(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{0, 0, -1})
	return math.Atan2(fwd.X(), -fwd.Z())
}
