package game

import "math"

// flatSpeed returns the length of a horizontal velocity.
func flatSpeed(x, z float64) float64 {
	return math.Hypot(x, z)
}
