// Package systems contains the per-tick force controllers for hovering characters
// and patrol platforms.
package systems

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hoverwalk/components"
	"github.com/pthm-cable/hoverwalk/physics"
)

// RayCaster answers scene raycasts. Implementations must be safe for concurrent reads
// while the hover phase runs.
type RayCaster interface {
	CastRay(origin, direction mgl64.Vec3, maxDistance float64, solid bool, filter physics.QueryFilter) (physics.RayHit, bool)
}

// groundFilter keeps only static and kinematic solids: other characters and sensor volumes
// never hold a body up.
var groundFilter = physics.QueryFilter{ExcludeDynamic: true, ExcludeSensors: true}

// SpringForce returns the vertical suspension force for a probe hit at distance.
// Positive pushes the body up.
func SpringForce(h components.Hover, distance float64, linearVelocity mgl64.Vec3) float64 {
	rayDirVelocity := down.Dot(linearVelocity)
	upForce := (distance - h.RideHeight) * h.Strength
	dampingForce := rayDirVelocity * h.Damper
	return -(upForce - dampingForce)
}

// HoverStats counts what the hover phase did in its last update.
type HoverStats struct {
	Probes int // Hovering bodies probed
	Hits   int // Probes that found ground
	Landed int // Bodies that gained ground contact
	Lifted int // Bodies that lost ground contact
	Nudges int // Bodies carried by a moving platform
}

// hoverJob is the read-only input for one probe.
type hoverJob struct {
	entity ecs.Entity
	origin mgl64.Vec3
	vel    mgl64.Vec3
	hover  components.Hover
}

// hoverResult is the computed output of one probe, applied after all probes finish.
type hoverResult struct {
	hit      bool
	distance float64
	normal   mgl64.Vec3
	force    float64
	platform ecs.Entity
}

// HoverSystem floats bodies above the ground with a spring-damper and tracks ground contact.
type HoverSystem struct {
	filter *ecs.Filter4[
		components.Transform,
		components.Velocity,
		components.ExternalForce,
		components.Hover,
	]
	platformFilter *ecs.Filter2[components.PatrolRoute, components.Velocity]

	velMap      *ecs.Map[components.Velocity]
	forceMap    *ecs.Map[components.ExternalForce]
	probeMap    *ecs.Map[components.GroundProbe]
	groundedMap *ecs.Map[components.Grounded]

	scene RayCaster

	// Platform velocities captured before any body is probed
	platformVel map[ecs.Entity]mgl64.Vec3

	jobs    []hoverJob
	results []hoverResult

	landed []ecs.Entity
	lifted []ecs.Entity

	pool              *workerPool
	parallelThreshold int

	stats HoverStats
}

// NewHoverSystem creates a hover system. Probes run on a worker pool once at least
// parallelThreshold bodies hover; a threshold <= 0 keeps everything on the caller's goroutine.
func NewHoverSystem(w *ecs.World, scene RayCaster, parallelThreshold, workers int) *HoverSystem {
	s := &HoverSystem{
		filter: ecs.NewFilter4[
			components.Transform,
			components.Velocity,
			components.ExternalForce,
			components.Hover,
		](w),
		platformFilter:    ecs.NewFilter2[components.PatrolRoute, components.Velocity](w),
		velMap:            ecs.NewMap[components.Velocity](w),
		forceMap:          ecs.NewMap[components.ExternalForce](w),
		probeMap:          ecs.NewMap[components.GroundProbe](w),
		groundedMap:       ecs.NewMap[components.Grounded](w),
		scene:             scene,
		platformVel:       make(map[ecs.Entity]mgl64.Vec3),
		jobs:              make([]hoverJob, 0, 64),
		results:           make([]hoverResult, 0, 64),
		parallelThreshold: parallelThreshold,
	}
	if parallelThreshold > 0 {
		s.pool = newWorkerPool(workers)
	}
	return s
}

// Close stops the worker pool.
func (s *HoverSystem) Close() {
	if s.pool != nil {
		s.pool.stop()
	}
}

// Stats returns counters from the last update.
func (s *HoverSystem) Stats() HoverStats {
	return s.stats
}

// Update probes every hovering body and rewrites its vertical force.
func (s *HoverSystem) Update() {
	s.stats = HoverStats{}
	s.collectPlatforms()

	// Phase A: snapshot
	s.jobs = s.jobs[:0]
	query := s.filter.Query()
	for query.Next() {
		tr, vel, _, hover := query.Get()
		s.jobs = append(s.jobs, hoverJob{
			entity: query.Entity(),
			origin: tr.Position,
			vel:    vel.Linear,
			hover:  *hover,
		})
	}

	n := len(s.jobs)
	s.stats.Probes = n
	if n == 0 {
		return
	}
	if cap(s.results) < n {
		s.results = make([]hoverResult, n)
	}
	s.results = s.results[:n]

	// Phase B: probe
	if s.pool != nil && n >= s.parallelThreshold {
		s.pool.run(n, s.probeRange)
	} else {
		s.probeRange(0, n)
	}

	// Phase C: apply
	s.apply()
}

// collectPlatforms snapshots the velocity of every active patrol platform.
func (s *HoverSystem) collectPlatforms() {
	clear(s.platformVel)
	query := s.platformFilter.Query()
	for query.Next() {
		route, vel := query.Get()
		if route.Enabled {
			s.platformVel[query.Entity()] = vel.Linear
		}
	}
}

func (s *HoverSystem) probeRange(start, end int) {
	for i := start; i < end; i++ {
		job := &s.jobs[i]
		res := &s.results[i]

		hit, ok := s.scene.CastRay(job.origin, down, job.hover.RayLength, true, groundFilter)
		if !ok {
			*res = hoverResult{}
			continue
		}
		*res = hoverResult{
			hit:      true,
			distance: hit.Distance,
			normal:   hit.Normal,
			force:    SpringForce(job.hover, hit.Distance, job.vel),
			platform: hit.Entity,
		}
	}
}

func (s *HoverSystem) apply() {
	s.landed = s.landed[:0]
	s.lifted = s.lifted[:0]

	for i := range s.jobs {
		job := &s.jobs[i]
		res := &s.results[i]
		e := job.entity

		force := s.forceMap.Get(e)
		grounded := s.groundedMap.Has(e)

		if res.hit {
			s.stats.Hits++
			force.Force[1] = res.force

			// Contact is gained inside ride height but only lost on a full miss
			if res.distance <= job.hover.RideHeight && !grounded {
				s.landed = append(s.landed, e)
			}

			if pv, ok := s.platformVel[res.platform]; ok {
				vel := s.velMap.Get(e)
				nudge := flatten(pv).Mul(0.5)
				vel.Linear = vel.Linear.Add(nudge)
				s.stats.Nudges++
			}
		} else {
			force.Force[1] = 0
			if grounded {
				s.lifted = append(s.lifted, e)
			}
		}

		if s.probeMap.Has(e) {
			probe := s.probeMap.Get(e)
			probe.Hit = res.hit
			probe.Distance = res.distance
			probe.Normal = res.normal
			probe.Force = force.Force[1]
		}
	}

	// Structural changes wait until the query above has finished
	for _, e := range s.landed {
		s.groundedMap.Add(e, &components.Grounded{})
		slog.Debug("ground contact gained", "entity", e.ID())
	}
	for _, e := range s.lifted {
		s.groundedMap.Remove(e)
		slog.Debug("ground contact lost", "entity", e.ID())
	}
	s.stats.Landed = len(s.landed)
	s.stats.Lifted = len(s.lifted)
}
