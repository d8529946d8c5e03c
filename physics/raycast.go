package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
)

// QueryFilter restricts which colliders a ray may hit.
type QueryFilter struct {
	ExcludeDynamic bool // Skip dynamic bodies
	ExcludeSensors bool // Skip sensor colliders
}

// RayHit describes the closest intersection along a ray.
type RayHit struct {
	Entity   ecs.Entity
	Distance float64 // Time of impact along the normalized direction
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// CastRay returns the closest hit within maxDistance.
// With solid set, a ray starting inside a shape hits it at distance 0.
// Safe for concurrent use between Sync calls.
func (p *World) CastRay(origin, direction mgl64.Vec3, maxDistance float64, solid bool, filter QueryFilter) (RayHit, bool) {
	l := direction.Len()
	if l == 0 || maxDistance < 0 {
		return RayHit{}, false
	}
	direction = direction.Mul(1 / l)

	var closest RayHit
	closest.Distance = math.Inf(1)
	hit := false

	for i := range p.shapes {
		s := &p.shapes[i]
		if filter.ExcludeDynamic && s.kind == components.BodyDynamic {
			continue
		}
		if filter.ExcludeSensors && s.sensor {
			continue
		}
		t, normal, ok := raycastAABB(origin, direction, s.min, s.max, solid)
		if !ok || t > maxDistance || t >= closest.Distance {
			continue
		}
		closest = RayHit{Entity: s.entity, Distance: t, Normal: normal}
		hit = true
	}

	if p.hasTerrain {
		if t, ok := p.terrain.Raycast(origin, direction, maxDistance, solid); ok && t < closest.Distance {
			pt := origin.Add(direction.Mul(t))
			closest = RayHit{Entity: p.terrainEntity, Distance: t, Normal: p.terrain.Normal(pt.X(), pt.Z())}
			hit = true
		}
	}

	if hit {
		closest.Point = origin.Add(direction.Mul(closest.Distance))
	}
	return closest, hit
}

// raycastAABB intersects a normalized ray with an axis-aligned box using the slab method.
func raycastAABB(origin, direction, min, max mgl64.Vec3, solid bool) (float64, mgl64.Vec3, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	var enterAxis, exitAxis int

	for axis := 0; axis < 3; axis++ {
		if direction[axis] == 0 {
			if origin[axis] < min[axis] || origin[axis] > max[axis] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (min[axis] - origin[axis]) / direction[axis]
		t2 := (max[axis] - origin[axis]) / direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = axis
		}
		if t2 < tmax {
			tmax = t2
			exitAxis = axis
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}

	if tmin < 0 {
		// Origin is inside the box
		if solid {
			return 0, mgl64.Vec3{}, true
		}
		var n mgl64.Vec3
		n[exitAxis] = math.Copysign(1, direction[exitAxis])
		return tmax, n, true
	}

	var n mgl64.Vec3
	n[enterAxis] = -math.Copysign(1, direction[enterAxis])
	return tmin, n, true
}
