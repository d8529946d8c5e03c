package components

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hoverwalk/config"
)

// ErrInvalidMovement is returned when locomotion parameters are negative.
var ErrInvalidMovement = errors.New("invalid movement config")

// Movement is the locomotion state of a body. Direction is written by the input or AI layer
// once per tick; the vertical component is ignored when comparing against velocity.
type Movement struct {
	Direction    mgl64.Vec3
	GoalVelocity mgl64.Vec3 // Not read by the controller; available to gameplay layers
	Acceleration float64
	Deceleration float64
	TopSpeed     float64 // Soft limit: above it drag is applied twice
}

// Movement defaults for a character.
const (
	DefaultAcceleration = 125.0
	DefaultDeceleration = 10.0
	DefaultTopSpeed     = 125.0
)

// DefaultMovement returns the standard character locomotion parameters.
func DefaultMovement() Movement {
	return Movement{
		Acceleration: DefaultAcceleration,
		Deceleration: DefaultDeceleration,
		TopSpeed:     DefaultTopSpeed,
	}
}

// NewMovement validates and returns locomotion parameters with a zero direction.
func NewMovement(acceleration, deceleration, topSpeed float64) (Movement, error) {
	if acceleration < 0 || deceleration < 0 || topSpeed < 0 {
		return Movement{}, fmt.Errorf("%w: acceleration=%v deceleration=%v top_speed=%v",
			ErrInvalidMovement, acceleration, deceleration, topSpeed)
	}
	return Movement{
		Acceleration: acceleration,
		Deceleration: deceleration,
		TopSpeed:     topSpeed,
	}, nil
}

// MovementFromConfig builds a movement component from the movement config section.
func MovementFromConfig(c config.MovementConfig) (Movement, error) {
	return NewMovement(c.Acceleration, c.Deceleration, c.TopSpeed)
}
