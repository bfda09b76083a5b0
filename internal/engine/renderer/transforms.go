package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/shader"
)

// Transform uniform names.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// Default projection parameters.
const (
	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Transforms carries the matrices that changed this frame.
// A nil field means "unchanged": its uniform is not touched.
type Transforms struct {
	Model      *mgl32.Mat4
	View       *mgl32.Mat4
	Projection *mgl32.Mat4
}

// Mat returns a pointer to a copy of m, for filling Transforms fields.
func Mat(m mgl32.Mat4) *mgl32.Mat4 { return &m }

// AsInit resolves every unset field to identity. Set fields pass through.
func (t Transforms) AsInit() Transforms {
	if t.Model == nil {
		t.Model = Mat(mgl32.Ident4())
	}
	if t.View == nil {
		t.View = Mat(mgl32.Ident4())
	}
	if t.Projection == nil {
		t.Projection = Mat(mgl32.Ident4())
	}
	return t
}

// Upload writes the set fields into the active program.
func (t Transforms) Upload(gl gpu.Functions, program uint32) {
	if t.Model != nil {
		shader.SetMat4(gl, program, UniformModel, *t.Model)
	}
	if t.View != nil {
		shader.SetMat4(gl, program, UniformView, *t.View)
	}
	if t.Projection != nil {
		shader.SetMat4(gl, program, UniformProjection, *t.Projection)
	}
}

// DefaultView looks at the origin from three units down the positive Z axis.
func DefaultView() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Perspective builds a projection for a viewport of the given size.
func Perspective(fovDeg float32, width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, DefaultNear, DefaultFar)
}

// DefaultTransforms returns identity model, the default view and a perspective
// projection for the given window size.
func DefaultTransforms(width, height int) Transforms {
	return Transforms{
		Model:      Mat(mgl32.Ident4()),
		View:       Mat(DefaultView()),
		Projection: Mat(Perspective(DefaultFOV, width, height)),
	}
}
