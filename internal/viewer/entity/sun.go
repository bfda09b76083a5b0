package entity

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
)

// Orbit is a uniform circular motion in the XZ plane.
type Orbit struct {
	Radius float32
	Period time.Duration
}

// Offset returns the displacement from the orbit center after elapsed time.
// The angle is -2π·frac(elapsed/Period), so the motion starts at +X and
// runs clockwise seen from above.
func (o Orbit) Offset(elapsed time.Duration) mgl32.Vec3 {
	if o.Period <= 0 {
		return mgl32.Vec3{o.Radius, 0, 0}
	}
	frac := float32(elapsed%o.Period) / float32(o.Period)
	angle := -2 * math32.Pi * frac
	return mgl32.Vec3{math32.Cos(angle) * o.Radius, 0, math32.Sin(angle) * o.Radius}
}

// Sun is a horizontal textured billboard that orbits a fixed point and acts
// as the scene light.
type Sun struct {
	*TexSquares

	orbit  Orbit
	origin mgl32.Vec3
	pos    mgl32.Vec3
	model  mgl32.Mat4
	start  time.Time
}

// NewSun places a square of half side size centered on origin.
func NewSun(origin mgl32.Vec3, size float32, orbit Orbit, texturePath string) (*Sun, error) {
	square := Square{
		BottomLeft: mgl32.Vec3{origin[0] - size, origin[1], origin[2] - size},
		TopRight:   mgl32.Vec3{origin[0] + size, origin[1], origin[2] + size},
	}
	ts, err := NewTexSquares("sun", []Square{square}, texturePath)
	if err != nil {
		return nil, err
	}
	return &Sun{
		TexSquares: ts,
		orbit:      orbit,
		origin:     origin,
		pos:        origin,
		model:      mgl32.Ident4(),
	}, nil
}

// Advance moves the sun along its orbit. The first call fixes the start of
// the orbit.
func (s *Sun) Advance(now time.Time) {
	if s.start.IsZero() {
		s.start = now
	}
	off := s.orbit.Offset(now.Sub(s.start))
	s.pos = s.origin.Add(off)
	s.model = mgl32.Translate3D(off[0], off[1], off[2])
}

// Position returns the current world position of the sun center.
func (s *Sun) Position() mgl32.Vec3 { return s.pos }

// Update uploads the orbit model instead of any model in t.
func (s *Sun) Update(t renderer.Transforms, uniforms []shader.Uniform) {
	t.Model = renderer.Mat(s.model)
	s.TexSquares.Update(t, uniforms)
}
