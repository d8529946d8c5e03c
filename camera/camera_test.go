package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestNew(t *testing.T) {
	cam := New(mgl64.Vec3{1, 2, 3})

	if cam.Target != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("expected target (1,2,3), got %v", cam.Target)
	}
	if cam.Distance != DefaultDistance {
		t.Errorf("expected distance %f, got %f", DefaultDistance, cam.Distance)
	}
}

func TestPositionDistance(t *testing.T) {
	cam := New(mgl64.Vec3{5, 0, -5})
	cam.Orbit(1.1, 0.3)

	d := cam.Position().Sub(cam.Target).Len()
	if math.Abs(d-cam.Distance) > 1e-9 {
		t.Errorf("eye is %f from target, want %f", d, cam.Distance)
	}
	if cam.Position().Y() <= cam.Target.Y() {
		t.Error("expected eye above target")
	}
}

func TestForwardLooksAtTarget(t *testing.T) {
	testCases := []float64{0, 0.5, math.Pi / 2, 2.5, -1}

	for _, yaw := range testCases {
		cam := New(mgl64.Vec3{})
		cam.Yaw = yaw

		// Horizontal view direction from eye to target matches Forward
		view := cam.Target.Sub(cam.Position())
		view = mgl64.Vec3{view.X(), 0, view.Z()}.Normalize()
		if !approxVec(view, cam.Forward(), 1e-9) {
			t.Errorf("yaw %f: view %v != forward %v", yaw, view, cam.Forward())
		}
		if math.Abs(cam.Forward().Dot(cam.Right())) > 1e-12 {
			t.Errorf("yaw %f: forward and right not orthogonal", yaw)
		}
	}
}

func TestMoveDirection(t *testing.T) {
	cam := New(mgl64.Vec3{})

	testCases := []struct {
		forward, right float64
		want           mgl64.Vec3
	}{
		{1, 0, mgl64.Vec3{0, 0, -1}},
		{-1, 0, mgl64.Vec3{0, 0, 1}},
		{0, 1, mgl64.Vec3{1, 0, 0}},
		{0, -1, mgl64.Vec3{-1, 0, 0}},
		{0, 0, mgl64.Vec3{}},
	}

	for _, tc := range testCases {
		got := cam.MoveDirection(tc.forward, tc.right)
		if !approxVec(got, tc.want, 1e-9) {
			t.Errorf("MoveDirection(%v, %v) = %v, want %v", tc.forward, tc.right, got, tc.want)
		}
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(mgl64.Vec3{})

	cam.Orbit(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
	cam.Orbit(0, -10)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.Pitch)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(mgl64.Vec3{})

	cam.ZoomBy(100)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}
	cam.ZoomBy(0.001)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
	cam.ZoomBy(0)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("zero factor changed distance to %f", cam.Distance)
	}
}

func TestFollow(t *testing.T) {
	cam := New(mgl64.Vec3{})

	cam.Follow(mgl64.Vec3{10, 0, 0}, 0.25)
	if !approxVec(cam.Target, mgl64.Vec3{2.5, 0, 0}, 1e-9) {
		t.Errorf("expected target (2.5,0,0), got %v", cam.Target)
	}
	cam.Follow(mgl64.Vec3{10, 0, 0}, 5)
	if cam.Target != (mgl64.Vec3{10, 0, 0}) {
		t.Errorf("expected snap to target, got %v", cam.Target)
	}
}
