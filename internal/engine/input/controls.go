package input

import "github.com/Faultbox/terraview/internal/engine/camera"

// Control is a one-shot viewer action bound to a key press.
type Control int

const (
	ControlNone Control = iota
	EnableLighting
	DisableLighting
	EnableFog
	DisableFog
	Screenshot
	Exit
)

// Bindings maps keys to camera movements and controls.
type Bindings struct {
	Movements map[Key]camera.Movement
	Controls  map[Key]Control
}

// DefaultBindings returns WASD movement, Space/LeftShift for up/down,
// L/K for lighting, F/G for fog, F12 for screenshots and Escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		Movements: map[Key]camera.Movement{
			KeyW:         camera.Forward,
			KeyS:         camera.Back,
			KeyA:         camera.Left,
			KeyD:         camera.Right,
			KeySpace:     camera.Up,
			KeyLeftShift: camera.Down,
		},
		Controls: map[Key]Control{
			KeyL:      EnableLighting,
			KeyK:      DisableLighting,
			KeyF:      EnableFog,
			KeyG:      DisableFog,
			KeyF12:    Screenshot,
			KeyEscape: Exit,
		},
	}
}

// Movement returns the camera movement bound to k.
func (b Bindings) Movement(k Key) (camera.Movement, bool) {
	m, ok := b.Movements[k]
	return m, ok
}

// Control returns the control bound to k.
func (b Bindings) Control(k Key) (Control, bool) {
	c, ok := b.Controls[k]
	return c, ok
}
