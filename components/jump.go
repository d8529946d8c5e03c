package components

import "fmt"

// DefaultJumpImpulse is the upward impulse applied by a grounded jump.
const DefaultJumpImpulse = 30.0

// Jumper holds a pending jump request for a hovering body.
type Jumper struct {
	Impulse   float64
	Requested bool
}

// NewJumper returns a jumper with the given upward impulse.
func NewJumper(impulse float64) (Jumper, error) {
	if impulse < 0 {
		return Jumper{}, fmt.Errorf("jump impulse %v must be >= 0", impulse)
	}
	return Jumper{Impulse: impulse}, nil
}
