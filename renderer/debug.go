package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Overlay colors
var (
	ColorProbeGrounded = rl.Color{R: 90, G: 220, B: 90, A: 255}
	ColorProbeHit      = rl.Color{R: 230, G: 200, B: 70, A: 255}
	ColorProbeMiss     = rl.Color{R: 220, G: 80, B: 80, A: 255}
	ColorFacing        = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorForce         = rl.Color{R: 240, G: 120, B: 240, A: 255}
	ColorRoute         = rl.Color{R: 120, G: 200, B: 255, A: 255}
	ColorCollider      = rl.Color{R: 255, G: 255, B: 0, A: 255}
)

// ProbeView is what the probe overlay needs from one hovering body.
type ProbeView struct {
	Origin     mgl64.Vec3
	RayLength  float64
	RideHeight float64
	Hit        bool
	Distance   float64
	Grounded   bool
}

// DrawProbe draws the downward probe: solid to the hit point, then a tick at ride height.
func DrawProbe(p ProbeView) {
	down := mgl64.Vec3{0, -1, 0}
	origin := Vec(p.Origin)

	if !p.Hit {
		rl.DrawLine3D(origin, Vec(p.Origin.Add(down.Mul(p.RayLength))), ColorProbeMiss)
		return
	}

	color := ColorProbeHit
	if p.Grounded {
		color = ColorProbeGrounded
	}
	hit := p.Origin.Add(down.Mul(p.Distance))
	rl.DrawLine3D(origin, Vec(hit), color)
	rl.DrawSphere(Vec(hit), 0.08, color)

	ride := Vec(p.Origin.Add(down.Mul(p.RideHeight)))
	rl.DrawLine3D(rl.Vector3{X: ride.X - 0.25, Y: ride.Y, Z: ride.Z}, rl.Vector3{X: ride.X + 0.25, Y: ride.Y, Z: ride.Z}, color)
}

// DrawFacing draws the forward axis of a rotation.
func DrawFacing(pos mgl64.Vec3, rot mgl64.Quat, length float64) {
	fwd := rot.Rotate(mgl64.Vec3{0, 0, -1})
	rl.DrawLine3D(Vec(pos), Vec(pos.Add(fwd.Mul(length))), ColorFacing)
}

// DrawForce draws force scaled by scale from pos.
func DrawForce(pos, force mgl64.Vec3, scale float64) {
	if force.Len() == 0 {
		return
	}
	end := pos.Add(force.Mul(scale))
	rl.DrawLine3D(Vec(pos), Vec(end), ColorForce)
	rl.DrawSphere(Vec(end), 0.06, ColorForce)
}

// DrawRoute draws a closed waypoint loop and highlights the current target.
func DrawRoute(waypoints []mgl64.Vec3, target int) {
	n := len(waypoints)
	for i, w := range waypoints {
		next := waypoints[(i+1)%n]
		rl.DrawLine3D(Vec(w), Vec(next), ColorRoute)
		radius := float32(0.12)
		if i == target {
			radius = 0.25
		}
		rl.DrawSphereWires(Vec(w), radius, 6, 6, ColorRoute)
	}
}

// DrawColliderBounds draws the AABB the raycaster uses for a collider.
func DrawColliderBounds(center, halfExtents mgl64.Vec3) {
	rl.DrawCubeWiresV(Vec(center), Vec(halfExtents.Mul(2)), ColorCollider)
}
