package components

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hoverwalk/config"
)

// ErrInvalidHover is returned when a hover configuration is out of range.
var ErrInvalidHover = errors.New("invalid hover config")

// Hover keeps a body floating at RideHeight above whatever the downward probe hits.
// Immutable after creation.
type Hover struct {
	RayLength  float64 `inspect:"label,fmt:%.1f"`
	RideHeight float64 `inspect:"label,fmt:%.2f"`
	Strength   float64 `inspect:"label,fmt:%.0f"`
	Damper     float64 `inspect:"label,fmt:%.0f"`
}

// Hover defaults for a capsule character.
const (
	DefaultRayLength  = 4.0
	DefaultRideHeight = 2.8
	DefaultStrength   = 900.0
	DefaultDamper     = 60.0
)

// DefaultHover returns the standard character suspension.
func DefaultHover() Hover {
	return Hover{
		RayLength:  DefaultRayLength,
		RideHeight: DefaultRideHeight,
		Strength:   DefaultStrength,
		Damper:     DefaultDamper,
	}
}

// NewHover validates and returns a hover config.
// Ray length and ride height must be positive; strength and damper must not be negative.
func NewHover(rayLength, rideHeight, strength, damper float64) (Hover, error) {
	switch {
	case rayLength <= 0:
		return Hover{}, fmt.Errorf("%w: ray_length %v must be > 0", ErrInvalidHover, rayLength)
	case rideHeight <= 0:
		return Hover{}, fmt.Errorf("%w: ride_height %v must be > 0", ErrInvalidHover, rideHeight)
	case strength < 0:
		return Hover{}, fmt.Errorf("%w: strength %v must be >= 0", ErrInvalidHover, strength)
	case damper < 0:
		return Hover{}, fmt.Errorf("%w: damper %v must be >= 0", ErrInvalidHover, damper)
	}
	return Hover{
		RayLength:  rayLength,
		RideHeight: rideHeight,
		Strength:   strength,
		Damper:     damper,
	}, nil
}

// HoverFromConfig builds a hover component from the hover config section.
func HoverFromConfig(c config.HoverConfig) (Hover, error) {
	return NewHover(c.RayLength, c.RideHeight, c.Strength, c.Damper)
}

// GroundProbe records the result of the last downward probe.
// Written by the hover system each tick; read by telemetry and the HUD.
type GroundProbe struct {
	Hit      bool
	Distance float64    `inspect:"label,fmt:%.3f"`
	Normal   mgl64.Vec3 `inspect:"vec3,fmt:%.2f"`
	Force    float64    `inspect:"label,fmt:%.1f"` // Vertical spring force applied this tick
}
