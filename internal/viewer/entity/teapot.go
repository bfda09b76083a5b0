package entity

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/model"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/logger"
)

// UniformColor is the flat teapot color.
const UniformColor = "uColor"

// TeapotScale is the uniform scale applied to the mesh.
const TeapotScale = 0.5

var teapotAttribs = []renderer.Attrib{
	{Index: 0, Size: 3}, // position
	{Index: 1, Size: 3}, // normal
}

// Color sets the flat color of a mesh.
type Color struct{ Value mgl32.Vec3 }

func (c Color) Set(gl gpu.Functions, program uint32) {
	shader.SetVec3(gl, program, UniformColor, c.Value)
}

// Teapot draws a lit, single-colored mesh with one indexed drawable per
// mesh group.
type Teapot struct {
	renderer.Handle

	mesh     *model.Mesh
	position mgl32.Vec3
	color    mgl32.Vec3
}

// NewTeapot places mesh at position. The mesh is shared, not copied.
func NewTeapot(mesh *model.Mesh, position, color mgl32.Vec3) *Teapot {
	return &Teapot{
		Handle:   renderer.Handle{Name: "teapot"},
		mesh:     mesh,
		position: position,
		color:    color,
	}
}

// Model returns translate(position) * scale(TeapotScale).
func (tp *Teapot) Model() mgl32.Mat4 {
	return mgl32.Translate3D(tp.position[0], tp.position[1], tp.position[2]).
		Mul4(mgl32.Scale3D(TeapotScale, TeapotScale, TeapotScale))
}

// Position returns the world placement.
func (tp *Teapot) Position() mgl32.Vec3 { return tp.position }

// Init uploads the mesh. The teapot model replaces the model in t and the
// color is applied after the given uniforms.
func (tp *Teapot) Init(gl gpu.Functions, t renderer.Transforms, uniforms []shader.Uniform) error {
	t.Model = renderer.Mat(tp.Model())
	uniforms = append(slices.Clip(uniforms), Color{tp.color})

	return tp.Handle.Init(gl, t, uniforms, func(gl gpu.Functions) (renderer.Resources, error) {
		if tp.mesh == nil || len(tp.mesh.Groups) == 0 {
			return renderer.Resources{}, errors.New("teapot mesh has no groups")
		}
		program, err := shader.CompileProgram(gl, teapotVertexShader, teapotFragmentShader)
		if err != nil {
			return renderer.Resources{}, err
		}

		drawables := make([]renderer.Drawable, 0, len(tp.mesh.Groups))
		for _, g := range tp.mesh.Groups {
			drawables = append(drawables, renderer.NewElements(gl, tp.mesh.Vertices, g.Indices, teapotAttribs))
			logger.Debug("teapot group uploaded",
				zap.String("group", g.Name),
				zap.Int("indices", len(g.Indices)),
			)
		}
		return renderer.Resources{Program: program, Drawables: drawables}, nil
	})
}
