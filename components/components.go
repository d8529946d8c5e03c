// Package components defines ECS components for hovering characters and patrol platforms.
package components

// Grounded marks a hovering body whose probe found ground within its ride height.
// It is added by the hover system and removed only when the probe misses entirely.
type Grounded struct{}

// RotationDriver marks a body that turns to face its Movement direction.
type RotationDriver struct{}

// Player tag component for the body driven by keyboard input.
type Player struct{}
