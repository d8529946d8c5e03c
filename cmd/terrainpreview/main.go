// Terrain preview tool - interactive heightfield tuning with sliders.
//
// Usage: go run ./cmd/terrainpreview -config my.yaml -out terrain.yaml
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/hoverwalk/config"
	"github.com/pthm-cable/hoverwalk/physics"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// slider binds one terrain parameter to a raygui slider.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.TerrainConfig) float32
	set      func(*config.TerrainConfig, float32)
}

var sliders = []slider{
	{"Scale (base noise frequency)", 0.002, 0.1, "%.3f",
		func(c *config.TerrainConfig) float32 { return float32(c.Scale) },
		func(c *config.TerrainConfig, v float32) { c.Scale = float64(v) }},
	{"Octaves (FBM detail level)", 1, 8, "%.0f",
		func(c *config.TerrainConfig) float32 { return float32(c.Octaves) },
		func(c *config.TerrainConfig, v float32) { c.Octaves = int(v) }},
	{"Lacunarity (frequency multiplier)", 1.5, 4.0, "%.2f",
		func(c *config.TerrainConfig) float32 { return float32(c.Lacunarity) },
		func(c *config.TerrainConfig, v float32) { c.Lacunarity = float64(v) }},
	{"Gain (amplitude multiplier)", 0.2, 0.9, "%.2f",
		func(c *config.TerrainConfig) float32 { return float32(c.Gain) },
		func(c *config.TerrainConfig, v float32) { c.Gain = float64(v) }},
	{"Amplitude (peak deviation)", 0, 6, "%.2f",
		func(c *config.TerrainConfig) float32 { return float32(c.Amplitude) },
		func(c *config.TerrainConfig, v float32) { c.Amplitude = float64(v) }},
	{"Base height", -4, 4, "%.2f",
		func(c *config.TerrainConfig) float32 { return float32(c.BaseHeight) },
		func(c *config.TerrainConfig, v float32) { c.BaseHeight = float64(v) }},
	{"Seed", 0, 99999, "%.0f",
		func(c *config.TerrainConfig) float32 { return float32(c.Seed) },
		func(c *config.TerrainConfig, v float32) { c.Seed = int64(v) }},
}

// terrainStats summarizes a generated heightfield.
type terrainStats struct {
	Min, Max, Mean, StdDev float64
	SteepestDeg            float64
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outPath := flag.String("out", "terrain_config.yaml", "Where Save writes the full config")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if base.Terrain.Size <= 0 {
		log.Fatal("terrain.size must be > 0 to preview")
	}
	defaults := base.Terrain
	params := base.Terrain

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	gridSize := int32(params.Resolution)
	img := rl.GenImageColor(int(gridSize), int(gridSize), rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var terrain *physics.Terrain
	var stats terrainStats
	status := ""
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			terrain = physics.NewTerrain(params)
			stats = summarize(terrain)
			updateTexture(texture, terrain, params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.2f  Max: %.2f  Mean: %.2f  StdDev: %.2f",
			stats.Min, stats.Max, stats.Mean, stats.StdDev), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Steepest slope: %.1f deg", stats.SteepestDeg), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Size: %.0f  Resolution: %d", params.Size, params.Resolution), 15, statsY+40, 16, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, 15, statsY+65, 14, rl.Gray)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get(&params)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&params, next)
				needsRegen = true
			}
			panelY += 35
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save") {
			cfg := *base
			cfg.Terrain = params
			if err := cfg.WriteYAML(*outPath); err != nil {
				status = fmt.Sprintf("save failed: %v", err)
			} else {
				status = "saved " + *outPath
			}
		}
		panelY += 45

		rl.DrawText("Press C to copy the terrain section to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			data, err := yaml.Marshal(map[string]config.TerrainConfig{"terrain": params})
			if err != nil {
				status = fmt.Sprintf("copy failed: %v", err)
			} else {
				rl.SetClipboardText(string(data))
				status = "terrain YAML copied"
			}
		}

		rl.EndDrawing()
	}
}

// summarize computes height statistics and the steepest surface slope.
func summarize(t *physics.Terrain) terrainStats {
	res := t.Resolution()
	heights := make([]float64, 0, res*res)
	steepest := 0.0

	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			heights = append(heights, t.SampleHeight(ix, iz))
			x, z := t.SampleCoord(ix, iz)
			n := t.Normal(x, z)
			steepest = max(steepest, math.Acos(min(1, n.Y())))
		}
	}

	lo, hi := heights[0], heights[0]
	for _, h := range heights {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	mean, std := stat.MeanStdDev(heights, nil)

	return terrainStats{
		Min:         lo,
		Max:         hi,
		Mean:        mean,
		StdDev:      std,
		SteepestDeg: steepest * 180 / math.Pi,
	}
}

// updateTexture paints heights relative to BaseHeight ± Amplitude.
func updateTexture(texture rl.Texture2D, t *physics.Terrain, cfg config.TerrainConfig) {
	res := t.Resolution()
	span := cfg.Amplitude
	if span <= 0 {
		span = 1
	}

	pixels := make([]color.RGBA, res*res)
	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			v := (t.SampleHeight(ix, iz) - cfg.BaseHeight + span) / (2 * span)
			pixels[iz*res+ix] = heightColor(float32(min(max(v, 0), 1)))
		}
	}
	rl.UpdateTexture(texture, pixels)
}

// heightColor maps [0,1] through low green, high tan, peak white.
func heightColor(v float32) color.RGBA {
	var r, g, b uint8
	if v < 0.5 {
		t := v / 0.5
		r = uint8(40 + t*60)
		g = uint8(80 + t*70)
		b = uint8(40 + t*20)
	} else if v < 0.8 {
		t := (v - 0.5) / 0.3
		r = uint8(100 + t*80)
		g = uint8(150 - t*10)
		b = uint8(60 + t*40)
	} else {
		t := (v - 0.8) / 0.2
		r = uint8(180 + t*75)
		g = uint8(140 + t*115)
		b = uint8(100 + t*155)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
