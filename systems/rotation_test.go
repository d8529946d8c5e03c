package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

var forward = mgl64.Vec3{0, 0, -1}

func TestFacingRotation(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl64.Vec3
	}{
		{"east", mgl64.Vec3{1, 0, 0}},
		{"north", mgl64.Vec3{0, 0, -1}},
		{"diagonal", mgl64.Vec3{1, 0, 1}},
		{"tilted", mgl64.Vec3{2, 1, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mgl64.Vec3{3, 1, -2}
			q, ok := FacingRotation(pos, tc.dir)
			if !ok {
				t.Fatal("FacingRotation returned !ok")
			}

			// Forward points at position - direction
			got := q.Rotate(forward)
			want := tc.dir.Mul(-1).Normalize()
			if !approxVec(got, want, 1e-9) {
				t.Errorf("forward = %v, want %v", got, want)
			}
			if l := q.Len(); math.Abs(l-1) > 1e-9 {
				t.Errorf("quaternion length = %f, want 1", l)
			}
		})
	}
}

func TestFacingRotationDegenerate(t *testing.T) {
	if _, ok := FacingRotation(mgl64.Vec3{}, mgl64.Vec3{}); ok {
		t.Error("zero direction should not produce a rotation")
	}
	if _, ok := FacingRotation(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}); ok {
		t.Error("direction parallel to up should not produce a rotation")
	}
}

func TestHeading(t *testing.T) {
	q, _ := FacingRotation(mgl64.Vec3{}, mgl64.Vec3{-1, 0, 0})
	if h := Heading(q); math.Abs(h-math.Pi/2) > 1e-9 {
		t.Errorf("Heading = %f, want %f", h, math.Pi/2)
	}
	if h := Heading(mgl64.QuatIdent()); math.Abs(h) > 1e-9 {
		t.Errorf("Heading(identity) = %f, want 0", h)
	}
}

func TestRotationSystem(t *testing.T) {
	tw := newTestWorld()
	rotation := NewRotationSystem(tw.world)
	driverMap := ecs.NewMap[components.RotationDriver](tw.world)

	driven := tw.spawnCharacter(mgl64.Vec3{})
	free := tw.spawnCharacter(mgl64.Vec3{5, 0, 0})
	driverMap.Add(driven, &components.RotationDriver{})

	for _, e := range []ecs.Entity{driven, free} {
		_, _, _, _, _, _, _, _, m := tw.characters.Get(e)
		m.Direction = mgl64.Vec3{1, 0, 0}
	}

	rotation.Update()

	tr, _, _ := tw.body(driven)
	if got := tr.Rotation.Rotate(forward); !approxVec(got, mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Errorf("driven forward = %v, want facing -X for direction +X", got)
	}
	facing := tr.Rotation

	trFree, _, _ := tw.body(free)
	if trFree.Rotation != mgl64.QuatIdent() {
		t.Errorf("body without driver rotated to %v", trFree.Rotation)
	}

	// Zero direction leaves the orientation untouched
	_, _, _, _, _, _, _, _, m := tw.characters.Get(driven)
	m.Direction = mgl64.Vec3{}
	rotation.Update()
	if tr.Rotation != facing {
		t.Errorf("rotation changed on zero direction: %v -> %v", facing, tr.Rotation)
	}
}
