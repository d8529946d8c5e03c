package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/config"
	"github.com/pthm-cable/hoverwalk/systems"
	"github.com/pthm-cable/hoverwalk/telemetry"
)

// flatConfig returns defaults with terrain disabled and one character over a slab
// whose top is y=0.
func flatConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Terrain.Size = 0
	cfg.Scene = config.SceneConfig{
		Characters: []config.CharacterConfig{{Position: [3]float64{0, 3, 0}}},
		Blocks: []config.BlockConfig{
			{Center: [3]float64{0, -0.5, 0}, HalfExtents: [3]float64{50, 0.5, 50}},
		},
	}
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Config = cfg
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func run(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step()
	}
}

func TestCharacterSettlesAtRideHeight(t *testing.T) {
	cfg := flatConfig()
	g := newTestGame(t, cfg, Options{})

	player, ok := g.Player()
	if !ok {
		t.Fatal("no player")
	}

	run(g, 300)

	body, err := g.Body(player)
	if err != nil {
		t.Fatal(err)
	}

	// The spring sags by m*g/k under gravity
	want := cfg.Hover.RideHeight + cfg.Physics.Gravity*cfg.Physics.CharacterMass/cfg.Hover.Strength
	if !body.Probe.Hit {
		t.Fatal("probe missed the ground")
	}
	if math.Abs(body.Probe.Distance-want) > 0.01 {
		t.Errorf("probe distance = %f, want ~%f", body.Probe.Distance, want)
	}
	if math.Abs(body.Position.Y()-want) > 0.01 {
		t.Errorf("height = %f, want ~%f", body.Position.Y(), want)
	}
	if !body.Grounded || !g.IsGrounded(player) {
		t.Error("settled character should be grounded")
	}
	if g.Tick() != 300 {
		t.Errorf("tick = %d, want 300", g.Tick())
	}
}

func TestCharacterDroppedAtRayLengthSettles(t *testing.T) {
	cfg := flatConfig()
	start := cfg.Hover.RayLength
	cfg.Scene.Characters[0].Position = [3]float64{0, start, 0}
	g := newTestGame(t, cfg, Options{})

	player, ok := g.Player()
	if !ok {
		t.Fatal("no player")
	}

	// A hit exactly at the ray length still counts
	run(g, 1)
	body, err := g.Body(player)
	if err != nil {
		t.Fatal(err)
	}
	if !body.Probe.Hit {
		t.Fatalf("probe missed at distance %v = ray length", start)
	}
	if math.Abs(body.Probe.Distance-start) > 1e-9 {
		t.Errorf("first distance = %f, want %f", body.Probe.Distance, start)
	}
	wantForce := -(start - cfg.Hover.RideHeight) * cfg.Hover.Strength
	if math.Abs(body.Probe.Force-wantForce) > 1e-6 {
		t.Errorf("first spring force = %f, want %f", body.Probe.Force, wantForce)
	}
	if body.Grounded {
		t.Error("grounded on a hit beyond ride height")
	}

	run(g, 600)
	body, err = g.Body(player)
	if err != nil {
		t.Fatal(err)
	}
	sag := cfg.Hover.RideHeight + cfg.Physics.Gravity*cfg.Physics.CharacterMass/cfg.Hover.Strength
	if !body.Probe.Hit || math.Abs(body.Probe.Distance-sag) > 0.01 {
		t.Errorf("settled probe = %+v, want hit at ~%f", body.Probe, sag)
	}
	// At rest the spring carries the weight
	weight := -cfg.Physics.Gravity * cfg.Physics.CharacterMass
	if math.Abs(body.Probe.Force-weight) > 0.01 {
		t.Errorf("settled spring force = %f, want %f", body.Probe.Force, weight)
	}
	if !body.Grounded {
		t.Error("settled character should be grounded")
	}
}

func TestPipelineFollowsRegistry(t *testing.T) {
	g := newTestGame(t, flatConfig(), Options{})

	got := g.Pipeline()
	want := g.Registry().IDs()
	if !slices.Equal(got, want) {
		t.Errorf("pipeline = %v, want %v", got, want)
	}
	if len(got) == 0 || got[len(got)-1] != systems.SystemPhysics {
		t.Errorf("physics should run last, got %v", got)
	}
}

func TestControlRejectsNonCharacters(t *testing.T) {
	cfg := flatConfig()
	cfg.Scene.Platforms = []config.PlatformConfig{{
		HalfExtents: [3]float64{2, 0.25, 2},
		Waypoints:   [][3]float64{{10, 0.5, 0}, {10, 0.5, 10}},
	}}
	g := newTestGame(t, cfg, Options{})

	platforms := g.Platforms()
	if len(platforms) != 1 {
		t.Fatalf("platforms = %d, want 1", len(platforms))
	}
	p := platforms[0]

	if err := g.SetDirection(p, mgl64.Vec3{1, 0, 0}); !errors.Is(err, ErrNotCharacter) {
		t.Errorf("SetDirection(platform) = %v, want ErrNotCharacter", err)
	}
	if err := g.RequestJump(p); !errors.Is(err, ErrNotCharacter) {
		t.Errorf("RequestJump(platform) = %v, want ErrNotCharacter", err)
	}
	if _, err := g.Body(p); !errors.Is(err, ErrNotCharacter) {
		t.Errorf("Body(platform) = %v, want ErrNotCharacter", err)
	}
	if _, err := g.Hover(p); !errors.Is(err, ErrNotCharacter) {
		t.Errorf("Hover(platform) = %v, want ErrNotCharacter", err)
	}
}

func TestWalkFacesDirection(t *testing.T) {
	g := newTestGame(t, flatConfig(), Options{})
	player, _ := g.Player()

	run(g, 120)
	if err := g.SetDirection(player, mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	run(g, 30)

	body, err := g.Body(player)
	if err != nil {
		t.Fatal(err)
	}
	if body.Velocity.X() <= 1 {
		t.Errorf("velocity x = %f, want > 1", body.Velocity.X())
	}
	if math.Abs(body.Velocity.Z()) > 1e-9 {
		t.Errorf("velocity z = %f, want 0", body.Velocity.Z())
	}

	// Facing target is position - direction, so forward points along -X
	if h := systems.Heading(body.Rotation); math.Abs(h+math.Pi/2) > 1e-6 {
		t.Errorf("heading = %f, want %f", h, -math.Pi/2)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	t.Run("grounded", func(t *testing.T) {
		g := newTestGame(t, flatConfig(), Options{})
		player, _ := g.Player()
		run(g, 300)

		if err := g.RequestJump(player); err != nil {
			t.Fatal(err)
		}
		g.Step()

		body, _ := g.Body(player)
		if body.Velocity.Y() < 20 {
			t.Errorf("velocity y after jump = %f, want > 20", body.Velocity.Y())
		}
	})

	t.Run("airborne", func(t *testing.T) {
		cfg := flatConfig()
		cfg.Scene.Characters[0].Position = [3]float64{0, 3.9, 0}
		g := newTestGame(t, cfg, Options{})
		player, _ := g.Player()

		if err := g.RequestJump(player); err != nil {
			t.Fatal(err)
		}
		g.Step()

		body, _ := g.Body(player)
		if body.Velocity.Y() >= 0 {
			t.Errorf("airborne jump applied: velocity y = %f", body.Velocity.Y())
		}

		// The request is consumed, not deferred until landing
		run(g, 120)
		body, _ = g.Body(player)
		if body.Velocity.Y() > 5 {
			t.Errorf("dropped request fired later: velocity y = %f", body.Velocity.Y())
		}
	})
}

func TestRemoveBody(t *testing.T) {
	cfg := flatConfig()
	cfg.Scene.Characters = append(cfg.Scene.Characters, config.CharacterConfig{Position: [3]float64{5, 3, 0}})
	g := newTestGame(t, cfg, Options{})

	var removed int
	g.OnRemove(func(ecs.Entity) { removed++ })

	player, _ := g.Player()
	if g.CharacterCount() != 2 {
		t.Fatalf("characters = %d, want 2", g.CharacterCount())
	}

	g.RemoveBody(player)
	if g.CharacterCount() != 1 {
		t.Errorf("characters = %d, want 1", g.CharacterCount())
	}
	if _, ok := g.Player(); ok {
		t.Error("player still reported after removal")
	}
	if removed != 1 {
		t.Errorf("remove hooks = %d, want 1", removed)
	}

	// Second removal is a no-op
	g.RemoveBody(player)
	if removed != 1 || g.CharacterCount() != 1 {
		t.Errorf("double removal changed state: hooks=%d characters=%d", removed, g.CharacterCount())
	}

	// Remaining bodies keep simulating
	run(g, 10)
	if len(g.Characters()) != 1 {
		t.Errorf("characters listed = %d, want 1", len(g.Characters()))
	}
}

func TestStatsCallback(t *testing.T) {
	cfg := flatConfig()
	var windows []telemetry.WindowStats
	g := newTestGame(t, cfg, Options{
		StatsWindowSec: 0.5,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	run(g, 29)
	if len(windows) != 0 {
		t.Fatalf("flushed after 29 ticks: %d windows", len(windows))
	}
	run(g, 1)
	if len(windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(windows))
	}
	run(g, 30)
	if len(windows) != 2 {
		t.Errorf("windows = %d, want 2", len(windows))
	}
}

func TestTuning(t *testing.T) {
	cfg := flatConfig()
	g := newTestGame(t, cfg, Options{})
	player, _ := g.Player()

	t.Run("invalid hover rejected", func(t *testing.T) {
		h, _ := g.Hover(player)
		h.Strength = -1
		err := g.SetHover(player, h)
		if !errors.Is(err, components.ErrInvalidHover) {
			t.Errorf("SetHover(strength -1) = %v, want ErrInvalidHover", err)
		}
		got, _ := g.Hover(player)
		if got.Strength != cfg.Hover.Strength {
			t.Errorf("strength changed to %f after rejected update", got.Strength)
		}
	})

	t.Run("valid hover replaces", func(t *testing.T) {
		h, _ := g.Hover(player)
		h.RideHeight = 2.0
		h.Strength = 1500
		if err := g.SetHover(player, h); err != nil {
			t.Fatal(err)
		}
		got, _ := g.Hover(player)
		if got.RideHeight != 2.0 || got.Strength != 1500 {
			t.Errorf("hover = %+v", got)
		}
	})

	t.Run("movement params keep direction", func(t *testing.T) {
		dir := mgl64.Vec3{0, 0, 1}
		if err := g.SetDirection(player, dir); err != nil {
			t.Fatal(err)
		}
		if err := g.SetMovementParams(player, 50, 5, 20); err != nil {
			t.Fatal(err)
		}
		m, _ := g.Movement(player)
		if m.Acceleration != 50 || m.Deceleration != 5 || m.TopSpeed != 20 {
			t.Errorf("movement = %+v", m)
		}
		if m.Direction != dir {
			t.Errorf("direction = %v, want %v", m.Direction, dir)
		}
	})

	t.Run("reset restores config", func(t *testing.T) {
		if err := g.ResetTuning(); err != nil {
			t.Fatal(err)
		}
		h, _ := g.Hover(player)
		if h.RideHeight != cfg.Hover.RideHeight || h.Strength != cfg.Hover.Strength {
			t.Errorf("hover after reset = %+v", h)
		}
		m, _ := g.Movement(player)
		if m.TopSpeed != cfg.Movement.TopSpeed {
			t.Errorf("top speed after reset = %f, want %f", m.TopSpeed, cfg.Movement.TopSpeed)
		}
	})
}

func TestStepsPerUpdate(t *testing.T) {
	g := newTestGame(t, flatConfig(), Options{StepsPerUpdate: 3})

	g.UpdateHeadless()
	if g.Tick() != 3 {
		t.Errorf("tick = %d, want 3", g.Tick())
	}

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{4, 4},
		{MaxStepsPerUpdate + 5, MaxStepsPerUpdate},
	}
	for _, tc := range tests {
		g.SetStepsPerUpdate(tc.in)
		if got := g.StepsPerUpdate(); got != tc.want {
			t.Errorf("SetStepsPerUpdate(%d) -> %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := flatConfig()
	cfg.Physics.DT = 0
	if _, err := NewGameWithOptions(Options{Config: cfg}); err == nil {
		t.Error("expected error for dt = 0")
	}
}

func TestSetPlatformEnabled(t *testing.T) {
	cfg := flatConfig()
	cfg.Scene.Platforms = []config.PlatformConfig{{
		HalfExtents: [3]float64{2, 0.25, 2},
		Waypoints:   [][3]float64{{10, 0.5, 0}, {10, 0.5, 10}},
		Disabled:    true,
	}}
	g := newTestGame(t, cfg, Options{})
	p := g.Platforms()[0]
	trMap := ecs.NewMap[components.Transform](g.World())

	run(g, 30)
	if pos := trMap.Get(p).Position; pos != (mgl64.Vec3{10, 0.5, 0}) {
		t.Errorf("disabled platform moved to %v", pos)
	}

	if !g.SetPlatformEnabled(p, true) {
		t.Fatal("SetPlatformEnabled rejected a platform")
	}
	run(g, 30)
	if z := trMap.Get(p).Position.Z(); z <= 0 {
		t.Errorf("enabled platform z = %f, want > 0", z)
	}

	player, _ := g.Player()
	if g.SetPlatformEnabled(player, false) {
		t.Error("SetPlatformEnabled accepted a character")
	}
}

func TestOutputDirReceivesLogs(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, flatConfig(), Options{StatsWindowSec: 0.5, OutputDir: dir})

	run(g, 60)

	for _, name := range []string{"telemetry.csv", "perf.csv", "bodies.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
