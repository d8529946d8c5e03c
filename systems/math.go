package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Zero-safe vector helpers. A stationary body or an idle input produces zero vectors
// every tick, so none of these may divide by zero or return NaN.

// up is the world up axis.
var up = mgl64.Vec3{0, 1, 0}

// down is the hover probe direction.
var down = mgl64.Vec3{0, -1, 0}

// flatten drops the vertical component.
func flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// isZero reports whether every component is exactly zero.
func isZero(v mgl64.Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// normalizeOrZero returns the unit vector along v, or zero when v has no usable length.
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// angleBetweenDeg returns the unsigned angle between a and b in degrees.
// Returns 0 if either vector is zero.
func angleBetweenDeg(a, b mgl64.Vec3) float64 {
	denom := math.Sqrt(a.LenSqr() * b.LenSqr())
	if denom == 0 {
		return 0
	}
	cos := a.Dot(b) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return mgl64.RadToDeg(math.Acos(cos))
}

// lerp interpolates from a toward b by t without clamping t.
func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
