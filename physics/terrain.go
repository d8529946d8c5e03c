package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/hoverwalk/config"
)

// bisectIterations refines a ray-march bracket down to sub-millimetre error.
const bisectIterations = 24

// Terrain is a square heightfield centered on the origin.
type Terrain struct {
	size       float64
	resolution int
	cell       float64
	heights    []float64 // row-major, resolution x resolution, Z rows
}

// NewTerrain generates a heightfield from fractal simplex noise.
func NewTerrain(cfg config.TerrainConfig) *Terrain {
	noise := opensimplex.NewNormalized(cfg.Seed)
	res := cfg.Resolution
	t := newTerrain(cfg.Size, res)

	octaves := cfg.Octaves
	if octaves < 1 {
		octaves = 1
	}

	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			x, z := t.SampleCoord(ix, iz)

			// FBM in [-1, 1]
			var sum, norm float64
			amp, freq := 1.0, cfg.Scale
			for o := 0; o < octaves; o++ {
				sum += amp * (noise.Eval2(x*freq, z*freq)*2 - 1)
				norm += amp
				amp *= cfg.Gain
				freq *= cfg.Lacunarity
			}
			if norm > 0 {
				sum /= norm
			}

			t.heights[iz*res+ix] = cfg.BaseHeight + cfg.Amplitude*sum
		}
	}
	return t
}

// NewFlatTerrain returns a level heightfield at the given height.
func NewFlatTerrain(size float64, resolution int, height float64) *Terrain {
	t := newTerrain(size, resolution)
	for i := range t.heights {
		t.heights[i] = height
	}
	return t
}

func newTerrain(size float64, resolution int) *Terrain {
	if resolution < 2 {
		resolution = 2
	}
	return &Terrain{
		size:       size,
		resolution: resolution,
		cell:       size / float64(resolution-1),
		heights:    make([]float64, resolution*resolution),
	}
}

// SampleCoord returns the world X/Z of grid indices.
func (t *Terrain) SampleCoord(ix, iz int) (float64, float64) {
	half := t.size / 2
	return -half + float64(ix)*t.cell, -half + float64(iz)*t.cell
}

// Size returns the edge length.
func (t *Terrain) Size() float64 {
	return t.size
}

// Resolution returns the number of samples per edge.
func (t *Terrain) Resolution() int {
	return t.resolution
}

// SampleHeight returns the stored height at grid indices.
func (t *Terrain) SampleHeight(ix, iz int) float64 {
	return t.heights[iz*t.resolution+ix]
}

// Contains reports whether (x, z) lies over the heightfield.
func (t *Terrain) Contains(x, z float64) bool {
	half := t.size / 2
	return x >= -half && x <= half && z >= -half && z <= half
}

// Height returns the bilinearly interpolated surface height at (x, z).
// Points outside the heightfield are clamped to its edge.
func (t *Terrain) Height(x, z float64) float64 {
	half := t.size / 2
	fx := (clamp(x, -half, half) + half) / t.cell
	fz := (clamp(z, -half, half) + half) / t.cell

	maxIdx := t.resolution - 1
	ix := int(math.Floor(fx))
	iz := int(math.Floor(fz))
	if ix >= maxIdx {
		ix = maxIdx - 1
	}
	if iz >= maxIdx {
		iz = maxIdx - 1
	}
	tx := fx - float64(ix)
	tz := fz - float64(iz)

	h00 := t.SampleHeight(ix, iz)
	h10 := t.SampleHeight(ix+1, iz)
	h01 := t.SampleHeight(ix, iz+1)
	h11 := t.SampleHeight(ix+1, iz+1)

	h0 := h00 + (h10-h00)*tx
	h1 := h01 + (h11-h01)*tx
	return h0 + (h1-h0)*tz
}

// Normal returns the surface normal at (x, z) from central differences.
func (t *Terrain) Normal(x, z float64) mgl64.Vec3 {
	e := t.cell * 0.5
	dx := (t.Height(x+e, z) - t.Height(x-e, z)) / (2 * e)
	dz := (t.Height(x, z+e) - t.Height(x, z-e)) / (2 * e)
	return mgl64.Vec3{-dx, 1, -dz}.Normalize()
}

// Raycast intersects a normalized ray with the surface.
func (t *Terrain) Raycast(origin, dir mgl64.Vec3, maxDistance float64, solid bool) (float64, bool) {
	above := func(p mgl64.Vec3) float64 {
		return p.Y() - t.Height(p.X(), p.Z())
	}

	if t.Contains(origin.X(), origin.Z()) && above(origin) <= 0 {
		if solid {
			return 0, true
		}
		return 0, false
	}

	// Vertical rays have a closed form
	if dir.X() == 0 && dir.Z() == 0 {
		if dir.Y() >= 0 || !t.Contains(origin.X(), origin.Z()) {
			return 0, false
		}
		d := (origin.Y() - t.Height(origin.X(), origin.Z())) / -dir.Y()
		if d > maxDistance {
			return 0, false
		}
		return d, true
	}

	step := t.cell * 0.5
	prev := 0.0
	for s := step; ; s += step {
		if s > maxDistance {
			s = maxDistance
		}
		p := origin.Add(dir.Mul(s))
		if t.Contains(p.X(), p.Z()) && above(p) <= 0 {
			// Bisect between the last point above and this one
			lo, hi := prev, s
			for i := 0; i < bisectIterations; i++ {
				mid := (lo + hi) / 2
				if above(origin.Add(dir.Mul(mid))) > 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			return hi, true
		}
		if s >= maxDistance {
			return 0, false
		}
		prev = s
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
