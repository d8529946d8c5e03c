package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hoverwalk/physics"
)

// maxTerrainCells bounds the drawn grid per edge; finer heightfields are strided.
const maxTerrainCells = 96

// terrainQuad is one cached grid cell: four corners and a shaded color.
type terrainQuad struct {
	c00, c10, c01, c11 rl.Vector3
	color              rl.Color
}

// TerrainRenderer draws a heightfield as shaded triangles or a line grid.
// Geometry is built once; the heightfield never changes after spawn.
type TerrainRenderer struct {
	quads []terrainQuad
}

// NewTerrainRenderer caches the drawable grid of t.
func NewTerrainRenderer(t *physics.Terrain) *TerrainRenderer {
	r := &TerrainRenderer{}
	if t == nil {
		return r
	}

	res := t.Resolution()
	stride := (res-1+maxTerrainCells-1)/maxTerrainCells
	if stride < 1 {
		stride = 1
	}

	minH, maxH := math.Inf(1), math.Inf(-1)
	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			h := t.SampleHeight(ix, iz)
			minH = math.Min(minH, h)
			maxH = math.Max(maxH, h)
		}
	}
	span := maxH - minH
	if span <= 0 {
		span = 1
	}

	corner := func(ix, iz int) rl.Vector3 {
		ix = min(ix, res-1)
		iz = min(iz, res-1)
		x, z := t.SampleCoord(ix, iz)
		return rl.Vector3{X: float32(x), Y: float32(t.SampleHeight(ix, iz)), Z: float32(z)}
	}

	for iz := 0; iz < res-1; iz += stride {
		for ix := 0; ix < res-1; ix += stride {
			q := terrainQuad{
				c00: corner(ix, iz),
				c10: corner(ix+stride, iz),
				c01: corner(ix, iz+stride),
				c11: corner(ix+stride, iz+stride),
			}
			cx := float64(q.c00.X+q.c11.X) / 2
			cz := float64(q.c00.Z+q.c11.Z) / 2
			height := (t.Height(cx, cz) - minH) / span
			q.color = shadeTerrain(height, t.Normal(cx, cz).Y())
			r.quads = append(r.quads, q)
		}
	}
	return r
}

// shadeTerrain blends low green to high rock and darkens steep slopes.
func shadeTerrain(height, up float64) rl.Color {
	low := [3]float64{70, 120, 60}
	high := [3]float64{150, 140, 120}
	light := 0.55 + 0.45*up

	var c [3]uint8
	for i := range c {
		v := (low[i] + (high[i]-low[i])*height) * light
		c[i] = uint8(math.Min(v, 255))
	}
	return rl.Color{R: c[0], G: c[1], B: c[2], A: 255}
}

// Draw renders the filled surface. Call inside BeginMode3D.
func (r *TerrainRenderer) Draw() {
	for _, q := range r.quads {
		// Counter-clockwise seen from above
		rl.DrawTriangle3D(q.c00, q.c01, q.c10, q.color)
		rl.DrawTriangle3D(q.c10, q.c01, q.c11, q.color)
	}
}

// DrawWire renders the grid lines. Call inside BeginMode3D.
func (r *TerrainRenderer) DrawWire(color rl.Color) {
	for _, q := range r.quads {
		rl.DrawLine3D(q.c00, q.c10, color)
		rl.DrawLine3D(q.c00, q.c01, color)
	}
}

// Unload frees resources.
func (r *TerrainRenderer) Unload() {
	r.quads = nil
}
