package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

func TestJumpRequiresGround(t *testing.T) {
	tests := []struct {
		name      string
		grounded  bool
		requested bool
		want      float64
	}{
		{"grounded request", true, true, components.DefaultJumpImpulse},
		{"airborne request", false, true, 0},
		{"grounded idle", true, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tw := newTestWorld()
			jump := NewJumpSystem(tw.world)
			jumperMap := ecs.NewMap[components.Jumper](tw.world)
			impulseMap := ecs.NewMap[components.ExternalImpulse](tw.world)

			e := tw.spawnCharacter(mgl64.Vec3{0, 2.8, 0})
			jumper, err := components.NewJumper(components.DefaultJumpImpulse)
			if err != nil {
				t.Fatal(err)
			}
			jumper.Requested = tc.requested
			jumperMap.Add(e, &jumper)
			if tc.grounded {
				tw.grounded.Add(e, &components.Grounded{})
			}

			jump.Update()

			if got := impulseMap.Get(e).Impulse.Y(); got != tc.want {
				t.Errorf("impulse.Y = %f, want %f", got, tc.want)
			}
			if jumperMap.Get(e).Requested {
				t.Error("request not consumed")
			}
			wantJumps := 0
			if tc.want > 0 {
				wantJumps = 1
			}
			if jump.Jumps() != wantJumps {
				t.Errorf("Jumps() = %d, want %d", jump.Jumps(), wantJumps)
			}
		})
	}
}
