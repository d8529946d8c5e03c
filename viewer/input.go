package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hoverwalk/ui"
)

// Camera control rates
const (
	orbitKeySpeed   = 1.8   // rad/s
	orbitMouseSpeed = 0.005 // rad per pixel
	zoomStep        = 0.1
	followRate      = 0.15
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		v.paused = !v.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.game.SetStepsPerUpdate(v.game.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.game.SetStepsPerUpdate(v.game.StepsPerUpdate() + 1)
	}

	// Panels
	if rl.IsKeyPressed(rl.KeyT) {
		if v.tuning.Toggle() {
			v.loadTuning()
		}
	}
	if rl.IsKeyPressed(rl.KeyO) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		v.showPerf = !v.showPerf
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := v.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	v.handlePlayerInput()
	v.handleCameraInput()
	v.handleSelection()
}

// handleResize propagates new window dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	v.background.Resize(w, h)
	v.inspector.Resize(w)
	v.tuning.SetPosition(10, h-v.tuning.Height()-40)
}

// handlePlayerInput maps WASD onto the camera's flattened axes and Space onto a jump.
func (v *Viewer) handlePlayerInput() {
	player, ok := v.game.Player()
	if !ok {
		return
	}

	var forward, right float64
	if rl.IsKeyDown(rl.KeyW) {
		forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		right--
	}

	if err := v.game.SetDirection(player, v.camera.MoveDirection(forward, right)); err != nil {
		slog.Warn("player input rejected", "error", err)
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		if err := v.game.RequestJump(player); err != nil {
			slog.Warn("jump rejected", "error", err)
		}
	}
}

// handleCameraInput processes orbit and zoom controls.
func (v *Viewer) handleCameraInput() {
	dt := float64(rl.GetFrameTime())

	var dYaw, dPitch float64
	if rl.IsKeyDown(rl.KeyRight) {
		dYaw += orbitKeySpeed * dt
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		dYaw -= orbitKeySpeed * dt
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dPitch += orbitKeySpeed * dt
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dPitch -= orbitKeySpeed * dt
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		dYaw += float64(delta.X) * orbitMouseSpeed
		dPitch += float64(delta.Y) * orbitMouseSpeed
	}
	if dYaw != 0 || dPitch != 0 {
		v.camera.Orbit(dYaw, dPitch)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !v.mouseOverPanel() {
		v.camera.ZoomBy(1 + float64(wheel)*zoomStep)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

// handleSelection drives the inspector: click to pick, Tab to cycle,
// Escape to close, Delete to despawn the selected body, E to pause or resume
// a selected platform.
func (v *Viewer) handleSelection() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.inspector.Deselect()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.inspector.SelectNext(v.candidates())
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		if e, ok := v.inspector.Selected(); ok {
			v.game.RemoveBody(e)
			slog.Info("body removed", "entity", e.ID())
		}
	}
	if rl.IsKeyPressed(rl.KeyE) {
		if e, ok := v.inspector.Selected(); ok && v.routeMap.Has(e) {
			v.game.SetPlatformEnabled(e, !v.routeMap.Get(e).Enabled)
		}
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if v.tuning.Contains(mouse.X, mouse.Y) || v.controls.Contains(mouse.X, mouse.Y, v.overlays) {
		return
	}
	v.inspector.HandleClick(mouse, v.raylibCamera(), v.candidates())
}

// mouseOverPanel reports whether the cursor is over a UI panel.
func (v *Viewer) mouseOverPanel() bool {
	m := rl.GetMousePosition()
	return v.tuning.Contains(m.X, m.Y) ||
		v.controls.Contains(m.X, m.Y, v.overlays) ||
		v.inspector.Contains(m.X, m.Y)
}

// followPlayer eases the camera toward the player.
func (v *Viewer) followPlayer() {
	player, ok := v.game.Player()
	if !ok {
		return
	}
	v.camera.Follow(v.trMap.Get(player).Position, followRate)
}

// loadTuning copies the player's parameters into the tuning sliders.
func (v *Viewer) loadTuning() {
	player, ok := v.game.Player()
	v.tunedValid = false
	if !ok {
		return
	}
	h, err := v.game.Hover(player)
	if err != nil {
		return
	}
	m, err := v.game.Movement(player)
	if err != nil {
		return
	}
	v.tuning.SetValues(ui.TuningValues{
		RideHeight:   float32(h.RideHeight),
		Strength:     float32(h.Strength),
		Damper:       float32(h.Damper),
		Acceleration: float32(m.Acceleration),
		Deceleration: float32(m.Deceleration),
		TopSpeed:     float32(m.TopSpeed),
	})
	v.tunedEntity = player
	v.tunedValid = true
}

// applyTuning writes slider changes back to the player.
func (v *Viewer) applyTuning(action ui.TuningAction) {
	switch action {
	case ui.TuningChanged:
		if !v.tunedValid {
			return
		}
		vals := v.tuning.Values()
		h, err := v.game.Hover(v.tunedEntity)
		if err != nil {
			v.tunedValid = false
			return
		}
		h.RideHeight = float64(vals.RideHeight)
		h.Strength = float64(vals.Strength)
		h.Damper = float64(vals.Damper)
		if err := v.game.SetHover(v.tunedEntity, h); err != nil {
			slog.Warn("hover tuning rejected", "error", err)
		}
		if err := v.game.SetMovementParams(v.tunedEntity,
			float64(vals.Acceleration), float64(vals.Deceleration), float64(vals.TopSpeed)); err != nil {
			slog.Warn("movement tuning rejected", "error", err)
		}

	case ui.TuningReset:
		if err := v.game.ResetTuning(); err != nil {
			slog.Error("tuning reset failed", "error", err)
		}
		v.loadTuning()
	}
}

func vecY(y float64) mgl64.Vec3 {
	return mgl64.Vec3{0, y, 0}
}
