package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/gpu/gputest"
	"github.com/Faultbox/terraview/internal/engine/shader"
)

// quadPass is a minimal textured pass: two strips of four vertices.
type quadPass struct {
	Handle
	textured bool
	fail     error
}

func newQuadPass(name string) *quadPass {
	return &quadPass{Handle: Handle{Name: name}, textured: true}
}

func (q *quadPass) Init(gl gpu.Functions, t Transforms, uniforms []shader.Uniform) error {
	return q.Handle.Init(gl, t, uniforms, q.build)
}

func (q *quadPass) build(gl gpu.Functions) (Resources, error) {
	if q.fail != nil {
		return Resources{}, q.fail
	}
	program, err := shader.CompileProgram(gl, "vs", "fs")
	if err != nil {
		return Resources{}, err
	}
	vertices := make([]float32, 2*4*3)
	res := Resources{
		Program:   program,
		Drawables: []Drawable{NewArrays(gl, vertices, []Attrib{{Index: 0, Size: 3}}, gpu.StaticDraw, gpu.TriangleStrip, 4)},
	}
	if q.textured {
		res.Texture = gl.GenTexture()
	}
	return res, nil
}

func newRecorder() *gputest.Recorder {
	return gputest.New(UniformModel, UniformView, UniformProjection, shader.UniformLightPos)
}

func TestTransformsAsInit(t *testing.T) {
	view := mgl32.Translate3D(1, 2, 3)

	tests := []struct {
		name string
		in   Transforms
		want [3]mgl32.Mat4
	}{
		{"empty", Transforms{}, [3]mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4()}},
		{"view only", Transforms{View: &view}, [3]mgl32.Mat4{mgl32.Ident4(), view, mgl32.Ident4()}},
		{"all set", Transforms{Model: &view, View: &view, Projection: &view}, [3]mgl32.Mat4{view, view, view}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.AsInit()
			require.NotNil(t, got.Model)
			require.NotNil(t, got.View)
			require.NotNil(t, got.Projection)
			assert.Equal(t, tt.want[0], *got.Model)
			assert.Equal(t, tt.want[1], *got.View)
			assert.Equal(t, tt.want[2], *got.Projection)
		})
	}
}

func TestTransformsUploadOnlySet(t *testing.T) {
	gl := newRecorder()
	program := gl.CreateProgram()
	gl.UseProgram(program)

	view := mgl32.Translate3D(0, 0, -5)
	Transforms{View: &view}.Upload(gl, program)

	assert.Equal(t, 1, gl.Count("UniformMatrix4fv"))
	got, ok := gl.Uniform(program, UniformView)
	require.True(t, ok)
	assert.Equal(t, [16]float32(view), got)
	_, ok = gl.Uniform(program, UniformModel)
	assert.False(t, ok, "unset model must not be uploaded")
}

func TestDefaultTransforms(t *testing.T) {
	tr := DefaultTransforms(800, 600)
	require.NotNil(t, tr.Model)
	assert.Equal(t, mgl32.Ident4(), *tr.Model)
	assert.Equal(t, DefaultView(), *tr.View)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(DefaultFOV), 800.0/600.0, DefaultNear, DefaultFar), *tr.Projection)
}

func TestPassBeforeInitIsNoop(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")

	UpdateDraw(p, Transforms{}, []shader.Uniform{shader.LightPos{}})
	p.Use()
	p.Update(Transforms{}, nil)
	p.Draw()

	assert.Empty(t, gl.Calls)
	assert.Equal(t, Uninitialized, p.State())
}

func TestPassInitUploadsIdentityAndUniforms(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")

	light := mgl32.Vec3{1, 2, 3}
	require.NoError(t, p.Init(gl, Transforms{}, []shader.Uniform{shader.LightPos{Pos: light}}))
	assert.Equal(t, Ready, p.State())

	program := p.Resources().Program
	for _, name := range []string{UniformModel, UniformView, UniformProjection} {
		got, ok := gl.Uniform(program, name)
		require.True(t, ok, name)
		assert.Equal(t, [16]float32(mgl32.Ident4()), got, name)
	}
	got, _ := gl.Uniform(program, shader.UniformLightPos)
	assert.Equal(t, [3]float32(light), got)
}

func TestPassDoubleInit(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")
	require.NoError(t, p.Init(gl, Transforms{}, nil))
	live := gl.Live()

	err := p.Init(gl, Transforms{}, nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, live, gl.Live(), "second init must not allocate")
}

func TestPassInitFailure(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")
	p.fail = errors.New("no texture")

	err := p.Init(gl, Transforms{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init quad")
	assert.Equal(t, Uninitialized, p.State())
}

func TestPassDestroy(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")
	require.NoError(t, p.Init(gl, Transforms{}, nil))
	require.NotEmpty(t, gl.Live())

	p.Destroy()
	p.Destroy()

	assert.Empty(t, gl.Live(), "every object released")
	assert.Zero(t, gl.DoubleFrees(), "released exactly once")
	assert.Equal(t, Destroyed, p.State())

	gl.Reset()
	p.Draw()
	assert.Empty(t, gl.Calls, "no GPU calls after destroy")
	assert.ErrorIs(t, p.Init(gl, Transforms{}, nil), ErrDestroyed)
}

func TestDestroyUninitialized(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")
	p.Destroy()
	assert.Empty(t, gl.Calls)
	assert.Equal(t, Destroyed, p.State())
}

func TestUpdateDrawOrder(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("quad")
	require.NoError(t, p.Init(gl, Transforms{}, nil))
	gl.Reset()

	view := DefaultView()
	UpdateDraw(p, Transforms{View: &view}, []shader.Uniform{shader.LightPos{Pos: mgl32.Vec3{0, 1, 0}}})

	want := []string{
		"UseProgram",
		"GetUniformLocation", "UniformMatrix4fv",
		"GetUniformLocation", "Uniform3f",
		"BindTexture",
		"BindVertexArray", "BindBuffer", "DrawArrays", "DrawArrays",
	}
	assert.Equal(t, want, gl.Names())

	require.Len(t, gl.Draws, 2)
	assert.Equal(t, gputest.Draw{Mode: gpu.TriangleStrip, First: 0, Count: 4,
		Program: p.Resources().Program, VAO: gl.Draws[0].VAO, Texture: p.Resources().Texture}, gl.Draws[0])
	assert.Equal(t, int32(4), gl.Draws[1].First)
}

func TestUntexturedPassSkipsBind(t *testing.T) {
	gl := newRecorder()
	p := newQuadPass("plain")
	p.textured = false
	require.NoError(t, p.Init(gl, Transforms{}, nil))
	gl.Reset()

	UpdateDraw(p, Transforms{}, nil)
	assert.Zero(t, gl.Count("BindTexture"))
}

func TestElementsDraw(t *testing.T) {
	gl := newRecorder()
	e := NewElements(gl, make([]float32, 4*6), []uint32{0, 1, 2, 2, 3, 0},
		[]Attrib{{Index: 0, Size: 3}, {Index: 1, Size: 3}})
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, gl.Indices(e.EBO))
	assert.Equal(t, []any{uint32(1), int32(3), int32(24), 12}, gl.Calls[len(gl.Calls)-6].Args,
		"normal attribute follows position")
	gl.Reset()

	e.draw(gl)
	require.Len(t, gl.Draws, 1)
	assert.True(t, gl.Draws[0].Indexed)
	assert.Equal(t, int32(6), gl.Draws[0].Count)
	assert.Equal(t, gpu.Triangles, gl.Draws[0].Mode)
}

func TestNewArraysRunCount(t *testing.T) {
	gl := newRecorder()
	attribs := []Attrib{{Index: 0, Size: 3}, {Index: 1, Size: 2}, {Index: 2, Size: 3}}
	a := NewArrays(gl, make([]float32, 3*4*8), attribs, gpu.StaticDraw, gpu.TriangleStrip, 4)
	assert.Equal(t, 3, a.Len)
	assert.Equal(t, int32(4), a.Offset)
	assert.Equal(t, int32(4), a.Count)
}

func TestRendererNew(t *testing.T) {
	gl := newRecorder()
	r, err := New(gl, Config{Width: 800, Height: 600, ClearColor: mgl32.Vec3{0.1, 0.1, 0.1}})
	require.NoError(t, err)
	assert.True(t, gl.Enabled(gpu.DepthTest))
	assert.Equal(t, 4, gl.Count("GetString"))
	w, h := r.WindowDimensions()
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})

	_, err = New(gl, Config{Width: 0, Height: 600})
	assert.Error(t, err)
}

func TestRendererResize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          bool
	}{
		{"grow", 1024, 768, true},
		{"zero width", 0, 768, false},
		{"zero height", 1024, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := newRecorder()
			r, err := New(gl, Config{Width: 800, Height: 600})
			require.NoError(t, err)
			gl.Reset()

			assert.Equal(t, tt.want, r.Resize(tt.width, tt.height))
			w, h := r.WindowDimensions()
			if tt.want {
				assert.Equal(t, 1, gl.Count("Viewport"))
				assert.Equal(t, [2]int{tt.width, tt.height}, [2]int{w, h})
			} else {
				assert.Empty(t, gl.Calls)
				assert.Equal(t, [2]int{800, 600}, [2]int{w, h})
			}
		})
	}
}

func TestRendererClearAndDrawOrder(t *testing.T) {
	gl := newRecorder()
	r, err := New(gl, Config{Width: 800, Height: 600, ClearColor: mgl32.Vec3{0.1, 0.2, 0.3}})
	require.NoError(t, err)

	first, second := newQuadPass("first"), newQuadPass("second")
	require.NoError(t, first.Init(gl, Transforms{}, nil))
	require.NoError(t, second.Init(gl, Transforms{}, nil))
	gl.Reset()

	r.Clear()
	r.Draw([]Pass{second, first}, Transforms{}, nil)

	assert.Equal(t, []string{"ClearColor", "Clear"}, gl.Names()[:2])
	assert.Equal(t, []any{gpu.ColorBufferBit | gpu.DepthBufferBit}, gl.Calls[1].Args)
	require.Len(t, gl.Draws, 4)
	assert.Equal(t, second.Resources().Program, gl.Draws[0].Program)
	assert.Equal(t, first.Resources().Program, gl.Draws[2].Program)
}

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	start := time.Unix(100, 0)

	for i := 0; i < 59; i++ {
		_, ok := c.Tick(start.Add(time.Duration(i) * 16 * time.Millisecond))
		assert.False(t, ok)
	}
	fps, ok := c.Tick(start.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, 60, fps)

	_, ok = c.Tick(start.Add(time.Second + time.Millisecond))
	assert.False(t, ok, "new window started")
}
