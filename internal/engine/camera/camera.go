// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is one direction the fly camera can be asked to move in.
type Movement int

const (
	Forward Movement = iota
	Back
	Left
	Right
	Up
	Down
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Pitch limit in degrees, short of straight up or down so the view basis stays defined.
const MaxPitch = 89.0

// FlyCamera moves freely along its look direction.
type FlyCamera struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Orientation in degrees. Yaw -90 looks down negative Z.
	Yaw   float32
	Pitch float32

	// Speed in world units per second.
	Speed float32
	// Sensitivity in degrees per mouse unit.
	Sensitivity float32

	held [6]bool
}

// NewFlyCamera creates a camera at pos looking down negative Z.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:    pos,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Speed:       6.0,
		Sensitivity: 0.1,
	}
}

// WantMove marks a movement as held.
func (c *FlyCamera) WantMove(m Movement) { c.held[m] = true }

// StopMove releases a movement.
func (c *FlyCamera) StopMove(m Movement) { c.held[m] = false }

// Moves reports whether the held movements produce any motion.
// Opposing pairs cancel.
func (c *FlyCamera) Moves() bool {
	return c.held[Forward] != c.held[Back] ||
		c.held[Left] != c.held[Right] ||
		c.held[Up] != c.held[Down]
}

// Front returns the unit look direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// Direction returns the unit vector of the held movements, or zero when
// nothing moves.
func (c *FlyCamera) Direction() mgl32.Vec3 {
	if !c.Moves() {
		return mgl32.Vec3{}
	}
	front := c.Front()
	right := front.Cross(c.WorldUp).Normalize()

	var d mgl32.Vec3
	if c.held[Forward] {
		d = d.Add(front)
	}
	if c.held[Back] {
		d = d.Sub(front)
	}
	if c.held[Right] {
		d = d.Add(right)
	}
	if c.held[Left] {
		d = d.Sub(right)
	}
	if c.held[Up] {
		d = d.Add(c.WorldUp)
	}
	if c.held[Down] {
		d = d.Sub(c.WorldUp)
	}
	if d.Len() == 0 {
		return d
	}
	return d.Normalize()
}

// MouseMoved turns the camera. Positive dy looks up.
func (c *FlyCamera) MouseMoved(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.Yaw = math32.Mod(c.Yaw, 360)
}

// Update integrates the position over dt.
func (c *FlyCamera) Update(dt time.Duration) {
	if !c.Moves() {
		return
	}
	step := c.Speed * float32(dt.Seconds())
	c.Position = c.Position.Add(c.Direction().Mul(step))
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), c.WorldUp)
}
