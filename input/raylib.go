package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// RaylibProvider reads the first gamepad, the keyboard arrows, and the mouse.
// Keyboard arrows and WASD act as a d-pad.
type RaylibProvider struct {
	gamepad int32
	toWorld func(screen r2.Vec) r2.Vec
}

// NewRaylibProvider creates a provider. toWorld maps a screen position to
// world coordinates (see camera.Camera.ScreenToWorld).
func NewRaylibProvider(toWorld func(screen r2.Vec) r2.Vec) *RaylibProvider {
	return &RaylibProvider{toWorld: toWorld}
}

// Poll implements Provider. Must be called on the window thread.
func (p *RaylibProvider) Poll() Raw {
	var raw Raw

	if rl.IsGamepadAvailable(p.gamepad) {
		// raylib reports stick up as -1
		raw.Stick = r2.Vec{
			X: float64(rl.GetGamepadAxisMovement(p.gamepad, rl.GamepadAxisLeftX)),
			Y: -float64(rl.GetGamepadAxisMovement(p.gamepad, rl.GamepadAxisLeftY)),
		}
		raw.DPad = DPad{
			Up:    rl.IsGamepadButtonDown(p.gamepad, rl.GamepadButtonLeftFaceUp),
			Down:  rl.IsGamepadButtonDown(p.gamepad, rl.GamepadButtonLeftFaceDown),
			Left:  rl.IsGamepadButtonDown(p.gamepad, rl.GamepadButtonLeftFaceLeft),
			Right: rl.IsGamepadButtonDown(p.gamepad, rl.GamepadButtonLeftFaceRight),
		}
	}

	raw.DPad.Up = raw.DPad.Up || rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW)
	raw.DPad.Down = raw.DPad.Down || rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS)
	raw.DPad.Left = raw.DPad.Left || rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA)
	raw.DPad.Right = raw.DPad.Right || rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD)

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		screen := r2.Vec{X: float64(m.X), Y: float64(m.Y)}
		raw.Pointer = screen
		if p.toWorld != nil {
			raw.Pointer = p.toWorld(screen)
		}
		raw.PointerDown = true
	}

	return raw
}
