package viewer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/terraview/internal/config"
	"github.com/Faultbox/terraview/internal/engine/gpu/gputest"
	"github.com/Faultbox/terraview/internal/engine/input"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/logger"
	"github.com/Faultbox/terraview/internal/viewer/entity"
)

const teapotOBJ = `o body
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vn 0 1 0
f 1//1 3//1 2//1
f 1//1 4//1 3//1
`

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeWindow struct {
	polls  [][]input.Event
	swaps  int
	title  string
	width  int
	height int
}

func (f *fakeWindow) PollEvents() []input.Event {
	if len(f.polls) == 0 {
		return nil
	}
	events := f.polls[0]
	f.polls = f.polls[1:]
	return events
}

func (f *fakeWindow) SwapBuffers()             { f.swaps++ }
func (f *fakeWindow) DrawableSize() (int, int) { return f.width, f.height }
func (f *fakeWindow) SetTitle(title string)    { f.title = title }
func (f *fakeWindow) Close()                   {}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Scene.FloorSide = 4
	cfg.Scene.Height = 2
	cfg.Scene.Teapots = [][2]float32{{0, 0}, {1, -1}}
	cfg.Assets.DirtTexture = writePNG(t, dir, "dirt.png")
	cfg.Assets.SunTexture = writePNG(t, dir, "sun.png")
	cfg.Assets.TeapotMesh = filepath.Join(dir, "teapot.obj")
	require.NoError(t, os.WriteFile(cfg.Assets.TeapotMesh, []byte(teapotOBJ), 0644))
	cfg.Debug.ScreenshotDir = filepath.Join(dir, "shots")
	return cfg
}

func newRecorder() *gputest.Recorder {
	return gputest.New(
		renderer.UniformModel, renderer.UniformView, renderer.UniformProjection,
		shader.UniformLightPos, shader.UniformEyePos,
		shader.UniformLightingEnabled, shader.UniformFogEnabled,
		shader.UniformAmbient, entity.UniformColor,
	)
}

func newViewer(t *testing.T, cfg *config.Config) (*Viewer, *gputest.Recorder, *fakeWindow) {
	t.Helper()
	gl := newRecorder()
	win := &fakeWindow{width: 800, height: 600}
	v, err := New(cfg, win, gl)
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v, gl, win
}

func TestBuildScene(t *testing.T) {
	cfg := testConfig(t)
	s, err := BuildScene(cfg)
	require.NoError(t, err)

	assert.Equal(t, float32(2), s.Middle)
	assert.Len(t, s.Passes(), 4, "triangle, cubes and two teapots")
	require.Len(t, s.Teapots, 2)

	want := 0
	for x := range 4 {
		for z := range 4 {
			want += s.Heightmap.HeightAt(x, z) + 1
		}
	}
	assert.Equal(t, want*6, s.Cubes.Len())

	tp := s.Teapots[1].Position()
	assert.Equal(t, float32(3), tp.X())
	assert.Equal(t, float32(1), tp.Z())
	assert.Equal(t, s.Heightmap.SurfaceY(3, 1), tp.Y())

	assert.Equal(t, mgl32.Vec3{2, 12, 2}, s.Sun.Position())
}

func TestBuildSceneMissingAssets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"dirt texture", func(c *config.Config) { c.Assets.DirtTexture += ".missing" }},
		{"sun texture", func(c *config.Config) { c.Assets.SunTexture += ".missing" }},
		{"teapot mesh", func(c *config.Config) { c.Assets.TeapotMesh += ".missing" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			_, err := BuildScene(cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuildSceneWithoutTeapots(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Teapots = nil
	cfg.Assets.TeapotMesh = "does-not-exist.obj"

	s, err := BuildScene(cfg)
	require.NoError(t, err)
	assert.Len(t, s.Passes(), 2)
}

func TestSceneInitUniforms(t *testing.T) {
	cfg := testConfig(t)
	cfg.Fog.Enabled = false
	v, gl, _ := newViewer(t, cfg)
	s := v.Scene()

	cubes := s.Cubes.Resources().Program
	on, ok := gl.Uniform(cubes, shader.UniformLightingEnabled)
	require.True(t, ok)
	assert.Equal(t, int32(1), on)
	fog, ok := gl.Uniform(cubes, shader.UniformFogEnabled)
	require.True(t, ok)
	assert.Equal(t, int32(0), fog)
	amb, _ := gl.Uniform(cubes, shader.UniformAmbient)
	assert.Equal(t, float32(0.1), amb)

	_, ok = gl.Uniform(s.Sun.Resources().Program, shader.UniformLightingEnabled)
	assert.False(t, ok, "the sun starts without lighting uniforms")

	for _, p := range append(s.Passes(), s.Sun) {
		assert.Equal(t, renderer.Ready, p.State())
	}
}

func TestSceneInitFailureReleasesEverything(t *testing.T) {
	cfg := testConfig(t)
	s, err := BuildScene(cfg)
	require.NoError(t, err)

	gl := newRecorder()
	gl.FailCompile = entity.UniformColor // only the teapot shader declares it
	err = s.Init(gl, renderer.Transforms{}, InitialUniforms(cfg))
	require.Error(t, err)

	for kind, n := range gl.Live() {
		assert.Zero(t, n, "leaked %s", kind)
	}
	assert.Zero(t, gl.DoubleFrees())
	assert.Equal(t, renderer.Destroyed, s.Triangle.State())
}

func TestSceneDestroyIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	s, err := BuildScene(cfg)
	require.NoError(t, err)
	gl := newRecorder()
	require.NoError(t, s.Init(gl, renderer.Transforms{}, nil))

	s.Destroy()
	s.Destroy()
	assert.Empty(t, gl.Live())
	assert.Zero(t, gl.DoubleFrees())
}

func TestFrameDrawsSunFirst(t *testing.T) {
	v, gl, _ := newViewer(t, testConfig(t))
	s := v.Scene()
	gl.Reset()

	v.Frame(t0)

	names := gl.Names()
	clearAt := slices.Index(names, "Clear")
	useAt := slices.Index(names, "UseProgram")
	require.GreaterOrEqual(t, clearAt, 0)
	assert.Less(t, clearAt, useAt, "clear before any pass")

	require.NotEmpty(t, gl.Draws)
	assert.Equal(t, s.Sun.Resources().Program, gl.Draws[0].Program)

	// sun square, triangle, every cube face, every teapot group
	want := 1 + 1 + s.Cubes.Len()
	for _, tp := range s.Teapots {
		want += len(tp.Resources().Drawables)
	}
	assert.Len(t, gl.Draws, want)
}

func TestFrameUniformsFollowSun(t *testing.T) {
	v, gl, _ := newViewer(t, testConfig(t))
	s := v.Scene()

	v.Frame(t0)
	sunPos := s.Sun.Position()
	assert.Equal(t, mgl32.Vec3{12, 12, 2}, sunPos, "orbit starts at +X")

	for _, p := range []uint32{s.Sun.Resources().Program, s.Cubes.Resources().Program, s.Teapots[0].Resources().Program} {
		lp, ok := gl.Uniform(p, shader.UniformLightPos)
		require.True(t, ok)
		assert.Equal(t, [3]float32(sunPos), lp)

		eye, ok := gl.Uniform(p, shader.UniformEyePos)
		require.True(t, ok)
		assert.Equal(t, [3]float32(v.Camera().Position), eye)
	}
}

func TestPendingTogglesApplyForOneFrame(t *testing.T) {
	v, gl, _ := newViewer(t, testConfig(t))
	s := v.Scene()

	v.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyK})
	v.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyG})
	gl.Reset()
	v.Frame(t0)

	cubes := s.Cubes.Resources().Program
	on, _ := gl.Uniform(cubes, shader.UniformLightingEnabled)
	assert.Equal(t, int32(0), on)
	fog, _ := gl.Uniform(cubes, shader.UniformFogEnabled)
	assert.Equal(t, int32(0), fog)
	// 4 passes, two toggles each
	assert.Equal(t, 8, gl.Count("Uniform1i"))

	_, ok := gl.Uniform(s.Sun.Resources().Program, shader.UniformLightingEnabled)
	assert.False(t, ok, "queued uniforms skip the sun")

	gl.Reset()
	v.Frame(t0.Add(16 * time.Millisecond))
	assert.Zero(t, gl.Count("Uniform1i"), "queue is drained after one frame")

	v.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyL})
	v.Frame(t0.Add(32 * time.Millisecond))
	on, _ = gl.Uniform(cubes, shader.UniformLightingEnabled)
	assert.Equal(t, int32(1), on)
}

func TestResize(t *testing.T) {
	v, gl, _ := newViewer(t, testConfig(t))
	cubes := v.Scene().Cubes.Resources().Program
	before, _ := gl.Uniform(cubes, renderer.UniformProjection)

	gl.Reset()
	v.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 0, Height: 600})
	assert.Zero(t, gl.Count("Viewport"), "zero dimension is skipped")
	v.Frame(t0)
	after, _ := gl.Uniform(cubes, renderer.UniformProjection)
	assert.Equal(t, before, after)

	v.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 1200, Height: 600})
	assert.Equal(t, [4]int32{0, 0, 1200, 600}, gl.ViewportRect())

	v.Frame(t0.Add(time.Millisecond))
	got, _ := gl.Uniform(cubes, renderer.UniformProjection)
	assert.Equal(t, [16]float32(renderer.Perspective(45, 1200, 600)), got)

	gl.Reset()
	v.Frame(t0.Add(2 * time.Millisecond))
	for _, c := range gl.Calls {
		if c.Name == "GetUniformLocation" {
			assert.NotEqual(t, renderer.UniformProjection, c.Args[1], "projection uploaded once per resize")
		}
	}
}

func TestMovementKeys(t *testing.T) {
	v, _, _ := newViewer(t, testConfig(t))
	cam := v.Camera()
	start := cam.Position

	v.Frame(t0)
	v.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyW})
	v.Frame(t0.Add(500 * time.Millisecond))

	// speed 6 for half a second toward -Z
	assert.InDelta(t, start.Z()-3, cam.Position.Z(), 1e-4)
	assert.InDelta(t, start.X(), cam.Position.X(), 1e-4)

	v.HandleEvent(input.Event{Type: input.EventKeyUp, Key: input.KeyW})
	moved := cam.Position
	v.Frame(t0.Add(time.Second))
	assert.Equal(t, moved, cam.Position)
}

func TestMouseLook(t *testing.T) {
	v, _, _ := newViewer(t, testConfig(t))
	v.HandleEvent(input.Event{Type: input.EventMouseMove, DX: 10, DY: -20})

	cam := v.Camera()
	assert.InDelta(t, -89, cam.Yaw, 1e-4)
	assert.InDelta(t, 2, cam.Pitch, 1e-4, "moving the mouse up looks up")
}

func TestExitEvents(t *testing.T) {
	tests := []struct {
		name  string
		event input.Event
	}{
		{"quit", input.Event{Type: input.EventQuit}},
		{"escape", input.Event{Type: input.EventKeyDown, Key: input.KeyEscape}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, _ := newViewer(t, testConfig(t))
			require.True(t, v.Running())
			v.HandleEvent(tt.event)
			assert.False(t, v.Running())
		})
	}
}

func TestScreenshot(t *testing.T) {
	cfg := testConfig(t)
	v, gl, _ := newViewer(t, cfg)

	v.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyF12})
	v.Frame(t0)
	assert.Equal(t, 1, gl.Count("ReadPixels"))

	entries, err := os.ReadDir(cfg.Debug.ScreenshotDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	v.Frame(t0.Add(time.Millisecond))
	assert.Equal(t, 1, gl.Count("ReadPixels"), "one capture per key press")
}

func TestFPSTitle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Debug.ShowFPS = true
	v, _, win := newViewer(t, cfg)

	for i := range 5 {
		v.Frame(t0.Add(time.Duration(i) * 250 * time.Millisecond))
	}
	assert.Equal(t, cfg.Window.Title+" - 5 FPS", win.title)
}

func TestFrameRateLoggedOncePerSecond(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	v, _, _ := newViewer(t, testConfig(t))
	for i := range 9 {
		v.Frame(t0.Add(time.Duration(i) * 250 * time.Millisecond))
	}

	// two whole seconds elapsed, one report each
	var reports int
	for _, e := range logs.All() {
		if _, ok := e.ContextMap()["fps"]; ok {
			reports++
		}
	}
	assert.Equal(t, 2, reports)
}

func TestRun(t *testing.T) {
	v, gl, win := newViewer(t, testConfig(t))
	win.polls = [][]input.Event{
		nil,
		{{Type: input.EventKeyDown, Key: input.KeyW}},
		{{Type: input.EventQuit}},
	}
	gl.Reset()

	require.NoError(t, v.Run())
	assert.Equal(t, 2, win.swaps)
	assert.Equal(t, 2, gl.Count("Clear"))
	assert.False(t, v.Running())
}

func TestCloseReleasesScene(t *testing.T) {
	gl := newRecorder()
	v, err := New(testConfig(t), &fakeWindow{width: 640, height: 480}, gl)
	require.NoError(t, err)

	v.Close()
	assert.Empty(t, gl.Live())
	v.Close()
	assert.Zero(t, gl.DoubleFrees())
}
