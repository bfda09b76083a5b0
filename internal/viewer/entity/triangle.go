package entity

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
)

// SpinPeriod is the time the triangle takes for one turn around its vertical
// axis when the frame does not set a model.
const SpinPeriod = 1500 * time.Millisecond

var triangleAttribs = []renderer.Attrib{
	{Index: 0, Size: 3}, // position
	{Index: 1, Size: 3}, // color
}

// TriangleInstance places one triangle.
type TriangleInstance struct {
	Center       mgl32.Vec3
	Circumradius float32
}

// Triangle draws colored triangles whose corner colors rotate once per
// elapsed second.
type Triangle struct {
	renderer.Handle

	positions [][3]mgl32.Vec3
	colors    [][3]mgl32.Vec3
	arrays    *renderer.Arrays

	now        func() time.Time
	start      time.Time
	lastSecond int64
}

// NewTriangle builds one triangle per instance. Corners start red, green
// and blue.
func NewTriangle(instances ...TriangleInstance) *Triangle {
	tr := &Triangle{
		Handle: renderer.Handle{Name: "triangle"},
		now:    time.Now,
	}
	corners := [3]mgl32.Vec3{
		mgl32.Vec3{-1, -1, 0}.Normalize(),
		{0, 1, 0},
		mgl32.Vec3{1, -1, 0}.Normalize(),
	}
	for _, in := range instances {
		var pos [3]mgl32.Vec3
		for i, c := range corners {
			pos[i] = c.Mul(in.Circumradius).Add(in.Center)
		}
		tr.positions = append(tr.positions, pos)
		tr.colors = append(tr.colors, [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	}
	return tr
}

// Colors returns the current corner colors of instance i.
func (tr *Triangle) Colors(i int) [3]mgl32.Vec3 { return tr.colors[i] }

func (tr *Triangle) Init(gl gpu.Functions, t renderer.Transforms, uniforms []shader.Uniform) error {
	err := tr.Handle.Init(gl, t, uniforms, func(gl gpu.Functions) (renderer.Resources, error) {
		program, err := shader.CompileProgram(gl, colorVertexShader, colorFragmentShader)
		if err != nil {
			return renderer.Resources{}, err
		}
		tr.arrays = renderer.NewArrays(gl, tr.vertexData(), triangleAttribs, gpu.DynamicDraw, gpu.Triangles, 3)
		return renderer.Resources{Program: program, Drawables: []renderer.Drawable{tr.arrays}}, nil
	})
	if err == nil {
		tr.start = tr.now()
		tr.lastSecond = 0
	}
	return err
}

// Update rotates the corner colors when a new whole second has elapsed and
// spins the triangle unless t carries a model.
func (tr *Triangle) Update(t renderer.Transforms, uniforms []shader.Uniform) {
	if !tr.Ready("update") {
		return
	}

	elapsed := tr.now().Sub(tr.start)
	if s := int64(elapsed / time.Second); s > tr.lastSecond {
		tr.lastSecond = s
		tr.rotateColors()
		gl := tr.GL()
		gl.BindBuffer(gpu.ArrayBuffer, tr.arrays.VBO)
		gl.BufferSubDataFloat32(gpu.ArrayBuffer, 0, tr.vertexData())
	}

	if t.Model == nil {
		t.Model = renderer.Mat(Spin(elapsed))
	}
	tr.Upload(t, uniforms)
}

// Spin returns the rotation around +Y after elapsed time. A full turn takes
// SpinPeriod and runs clockwise seen from above.
func Spin(elapsed time.Duration) mgl32.Mat4 {
	s := float32(elapsed.Seconds())
	p := float32(SpinPeriod.Seconds())
	remaining := (math32.Ceil(s/p)*p - s) / p
	return mgl32.HomogRotate3DY(2 * math32.Pi * remaining)
}

func (tr *Triangle) rotateColors() {
	for i, c := range tr.colors {
		tr.colors[i] = [3]mgl32.Vec3{c[1], c[2], c[0]}
	}
}

func (tr *Triangle) vertexData() []float32 {
	data := make([]float32, 0, len(tr.positions)*3*6)
	for i, pos := range tr.positions {
		for j, p := range pos {
			c := tr.colors[i][j]
			data = append(data, p[0], p[1], p[2], c[0], c[1], c[2])
		}
	}
	return data
}
