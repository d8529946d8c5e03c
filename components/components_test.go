package components

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hoverwalk/config"
)

func TestNewHover(t *testing.T) {
	tests := []struct {
		name    string
		args    [4]float64
		wantErr bool
	}{
		{"defaults", [4]float64{4, 2.8, 900, 60}, false},
		{"undamped", [4]float64{4, 2.8, 900, 0}, false},
		{"zero ray", [4]float64{0, 2.8, 900, 60}, true},
		{"negative ride", [4]float64{4, -1, 900, 60}, true},
		{"negative strength", [4]float64{4, 2.8, -1, 60}, true},
		{"negative damper", [4]float64{4, 2.8, 900, -0.5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := NewHover(tc.args[0], tc.args[1], tc.args[2], tc.args[3])
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidHover) {
					t.Errorf("err = %v, want ErrInvalidHover", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.RideHeight != tc.args[1] || h.Damper != tc.args[3] {
				t.Errorf("hover = %+v", h)
			}
		})
	}
}

func TestHoverFromConfig(t *testing.T) {
	h, err := HoverFromConfig(config.HoverConfig{RayLength: 5, RideHeight: 3, Strength: 400, Damper: 20})
	if err != nil {
		t.Fatal(err)
	}
	if h != (Hover{RayLength: 5, RideHeight: 3, Strength: 400, Damper: 20}) {
		t.Errorf("HoverFromConfig = %+v", h)
	}
}

func TestNewMovement(t *testing.T) {
	m, err := NewMovement(50, 5, 20)
	if err != nil {
		t.Fatal(err)
	}
	if m.Direction != (mgl64.Vec3{}) || m.TopSpeed != 20 {
		t.Errorf("NewMovement = %+v", m)
	}

	for _, args := range [][3]float64{{-1, 5, 20}, {50, -5, 20}, {50, 5, -20}} {
		if _, err := NewMovement(args[0], args[1], args[2]); !errors.Is(err, ErrInvalidMovement) {
			t.Errorf("NewMovement%v err = %v, want ErrInvalidMovement", args, err)
		}
	}
}

func TestPatrolRoute(t *testing.T) {
	if _, err := NewPatrolRoute(nil, 0.2); !errors.Is(err, ErrEmptyRoute) {
		t.Errorf("empty route err = %v", err)
	}
	if _, err := NewPatrolRoute([]mgl64.Vec3{{}}, 0); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("zero threshold err = %v", err)
	}

	waypoints := []mgl64.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 0, 4}}
	r, err := NewPatrolRoute(waypoints, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	waypoints[0] = mgl64.Vec3{9, 9, 9}
	if r.Target() != (mgl64.Vec3{}) {
		t.Error("route shares the caller's waypoint slice")
	}
	if !r.Enabled {
		t.Error("new route is disabled")
	}

	for _, want := range []int{1, 2, 0, 1} {
		r.Advance()
		if r.Index != want {
			t.Fatalf("Index = %d, want %d", r.Index, want)
		}
	}

	if !r.Arrived(mgl64.Vec3{4, 0, 0.19}) {
		t.Error("not arrived inside threshold")
	}
	if r.Arrived(mgl64.Vec3{4, 0, 0.2}) {
		t.Error("arrived at exactly the threshold")
	}
}

func TestColliderBottomOffset(t *testing.T) {
	box := BoxCollider(mgl64.Vec3{3, 0.25, 3})
	capsule := CapsuleCollider(0.5, 0.5)
	field := Collider{Shape: ShapeHeightfield}

	if got := box.BottomOffset(); got != 0.25 {
		t.Errorf("box BottomOffset = %f", got)
	}
	if got := capsule.BottomOffset(); got != 1 {
		t.Errorf("capsule BottomOffset = %f", got)
	}
	if got := field.BottomOffset(); got != 0 {
		t.Errorf("heightfield BottomOffset = %f", got)
	}
}

func TestExternalImpulseAccumulates(t *testing.T) {
	var imp ExternalImpulse
	imp.Add(mgl64.Vec3{0, 30, 0})
	imp.Add(mgl64.Vec3{1, 0, 0})
	if imp.Impulse != (mgl64.Vec3{1, 30, 0}) {
		t.Errorf("Impulse = %v", imp.Impulse)
	}
}
