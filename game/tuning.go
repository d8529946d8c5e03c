package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// Hover returns the suspension parameters of a character.
func (g *Game) Hover(e ecs.Entity) (components.Hover, error) {
	if err := g.checkCharacter(e); err != nil {
		return components.Hover{}, err
	}
	return *g.hoverMap.Get(e), nil
}

// SetHover replaces the suspension of a character. The new parameters are validated
// as a fresh hover config; the old component is never edited in place.
func (g *Game) SetHover(e ecs.Entity, h components.Hover) error {
	if err := g.checkCharacter(e); err != nil {
		return err
	}
	next, err := components.NewHover(h.RayLength, h.RideHeight, h.Strength, h.Damper)
	if err != nil {
		return err
	}
	*g.hoverMap.Get(e) = next
	return nil
}

// Movement returns the locomotion parameters of a character.
func (g *Game) Movement(e ecs.Entity) (components.Movement, error) {
	if err := g.checkCharacter(e); err != nil {
		return components.Movement{}, err
	}
	return *g.movementMap.Get(e), nil
}

// SetMovementParams updates acceleration, deceleration and top speed of a character,
// keeping its current direction and goal velocity.
func (g *Game) SetMovementParams(e ecs.Entity, acceleration, deceleration, topSpeed float64) error {
	if err := g.checkCharacter(e); err != nil {
		return err
	}
	next, err := components.NewMovement(acceleration, deceleration, topSpeed)
	if err != nil {
		return err
	}
	m := g.movementMap.Get(e)
	m.Acceleration = next.Acceleration
	m.Deceleration = next.Deceleration
	m.TopSpeed = next.TopSpeed
	return nil
}

// ResetTuning restores the configured hover and movement parameters on every character.
func (g *Game) ResetTuning() error {
	hover, err := components.HoverFromConfig(g.cfg.Hover)
	if err != nil {
		return err
	}
	mv, err := components.MovementFromConfig(g.cfg.Movement)
	if err != nil {
		return err
	}

	query := g.characterFilter.Query()
	for query.Next() {
		_, _, h, _, m := query.Get()
		*h = hover
		m.Acceleration = mv.Acceleration
		m.Deceleration = mv.Deceleration
		m.TopSpeed = mv.TopSpeed
	}
	return nil
}
