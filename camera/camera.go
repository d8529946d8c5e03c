// Package camera provides a 3D orbit camera that follows a target.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target point at a fixed distance.
// Yaw 0 looks down -Z; pitch is the elevation above the horizon in radians.
type Camera struct {
	// Target is the orbit center in world coordinates
	Target mgl64.Vec3

	Yaw, Pitch float64
	Distance   float64

	// Vertical field of view in degrees
	FovY float64

	// Orbit constraints
	MinDistance, MaxDistance float64
	MinPitch, MaxPitch       float64
}

// Default orbit parameters.
const (
	DefaultDistance = 14.0
	DefaultPitch    = 0.45
	DefaultFovY     = 60.0
)

// New creates a camera behind and above target.
func New(target mgl64.Vec3) *Camera {
	return &Camera{
		Target:      target,
		Pitch:       DefaultPitch,
		Distance:    DefaultDistance,
		FovY:        DefaultFovY,
		MinDistance: 3,
		MaxDistance: 60,
		MinPitch:    0.05,
		MaxPitch:    1.45,
	}
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		-math.Sin(c.Yaw) * cp,
		math.Sin(c.Pitch),
		math.Cos(c.Yaw) * cp,
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Forward returns the horizontal unit vector the camera faces.
func (c *Camera) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(c.Yaw), 0, -math.Cos(c.Yaw)}
}

// Right returns the horizontal unit vector to the camera's right.
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), 0, math.Sin(c.Yaw)}
}

// MoveDirection maps screen-relative input axes onto a world direction.
// forward and right are usually -1, 0 or 1. The result is not normalized.
func (c *Camera) MoveDirection(forward, right float64) mgl64.Vec3 {
	return c.Forward().Mul(forward).Add(c.Right().Mul(right))
}

// Orbit rotates the camera around its target, clamping pitch.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the orbit distance by factor, so factors above 1 move closer.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Follow eases the orbit center toward target. t is clamped to [0, 1].
func (c *Camera) Follow(target mgl64.Vec3, t float64) {
	t = clamp(t, 0, 1)
	c.Target = c.Target.Add(target.Sub(c.Target).Mul(t))
}

// Reset returns to the default orbit around the current target.
func (c *Camera) Reset() {
	c.Yaw = 0
	c.Pitch = DefaultPitch
	c.Distance = DefaultDistance
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
