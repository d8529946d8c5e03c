package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// BodyState is a read-only view of a character.
type BodyState struct {
	Position  mgl64.Vec3
	Rotation  mgl64.Quat
	Velocity  mgl64.Vec3
	Direction mgl64.Vec3
	Grounded  bool
	Probe     components.GroundProbe
}

func (g *Game) checkCharacter(e ecs.Entity) error {
	if !g.world.Alive(e) || !g.hoverMap.Has(e) {
		return ErrNotCharacter
	}
	return nil
}

// SetDirection sets the desired movement direction of a character.
// Any length is accepted; the vertical component only affects normalization.
func (g *Game) SetDirection(e ecs.Entity, dir mgl64.Vec3) error {
	if err := g.checkCharacter(e); err != nil {
		return err
	}
	g.movementMap.Get(e).Direction = dir
	return nil
}

// RequestJump queues a jump for the next tick. Airborne requests are dropped.
func (g *Game) RequestJump(e ecs.Entity) error {
	if err := g.checkCharacter(e); err != nil {
		return err
	}
	if !g.jumperMap.Has(e) {
		return ErrNotCharacter
	}
	g.jumperMap.Get(e).Requested = true
	return nil
}

// IsGrounded reports whether a body currently has ground contact.
func (g *Game) IsGrounded(e ecs.Entity) bool {
	return g.world.Alive(e) && g.groundedMap.Has(e)
}

// Body returns the current state of a character.
func (g *Game) Body(e ecs.Entity) (BodyState, error) {
	if err := g.checkCharacter(e); err != nil {
		return BodyState{}, err
	}
	tr := g.trMap.Get(e)
	return BodyState{
		Position:  tr.Position,
		Rotation:  tr.Rotation,
		Velocity:  g.velMap.Get(e).Linear,
		Direction: g.movementMap.Get(e).Direction,
		Grounded:  g.groundedMap.Has(e),
		Probe:     *g.probeMap.Get(e),
	}, nil
}

// SetPlatformEnabled pauses or resumes a patrol platform.
func (g *Game) SetPlatformEnabled(e ecs.Entity, enabled bool) bool {
	if !g.world.Alive(e) || !g.routeMap.Has(e) {
		return false
	}
	g.routeMap.Get(e).Enabled = enabled
	return true
}

// Platforms returns all patrol platforms.
func (g *Game) Platforms() []ecs.Entity {
	var out []ecs.Entity
	query := g.platformFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// Characters returns all hovering characters.
func (g *Game) Characters() []ecs.Entity {
	out := make([]ecs.Entity, 0, g.numCharacters)
	query := g.characterFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}
