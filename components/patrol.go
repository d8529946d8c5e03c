package components

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Patrol construction errors.
var (
	ErrEmptyRoute       = errors.New("patrol route has no waypoints")
	ErrInvalidThreshold = errors.New("patrol distance threshold must be > 0")
)

// DefaultPatrolThreshold is the arrival distance used by platforms.
const DefaultPatrolThreshold = 0.2

// PatrolRoute drives a kinematic platform around a closed loop of waypoints.
// Index is always a valid position in Waypoints.
type PatrolRoute struct {
	Waypoints []mgl64.Vec3 `inspect:"skip"`
	Index     int
	Threshold float64
	Enabled   bool
}

// NewPatrolRoute copies waypoints into a new enabled route targeting the first waypoint.
func NewPatrolRoute(waypoints []mgl64.Vec3, threshold float64) (PatrolRoute, error) {
	if len(waypoints) == 0 {
		return PatrolRoute{}, ErrEmptyRoute
	}
	if threshold <= 0 {
		return PatrolRoute{}, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	wp := make([]mgl64.Vec3, len(waypoints))
	copy(wp, waypoints)
	return PatrolRoute{
		Waypoints: wp,
		Threshold: threshold,
		Enabled:   true,
	}, nil
}

// Target returns the waypoint currently being approached.
func (r *PatrolRoute) Target() mgl64.Vec3 {
	return r.Waypoints[r.Index]
}

// Advance moves to the next waypoint, wrapping to the first after the last.
func (r *PatrolRoute) Advance() {
	r.Index = (r.Index + 1) % len(r.Waypoints)
}

// Arrived reports whether pos is strictly closer than Threshold to the current target.
func (r *PatrolRoute) Arrived(pos mgl64.Vec3) bool {
	return r.Target().Sub(pos).Len() < r.Threshold
}
