// Package viewer ties the window, renderer, camera and scene together and
// runs the frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/config"
	"github.com/Faultbox/terraview/internal/engine/camera"
	"github.com/Faultbox/terraview/internal/engine/debug"
	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/input"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/engine/window"
	"github.com/Faultbox/terraview/internal/logger"
)

// Viewer is the interactive scene viewer.
type Viewer struct {
	config   *config.Config
	window   window.Window
	renderer *renderer.Renderer
	camera   *camera.FlyCamera
	scene    *Scene
	bindings input.Bindings
	shots    *debug.ScreenshotCapture

	running   bool
	lastFrame time.Time

	// pending holds uniforms queued by input for the next frame.
	pending []shader.Uniform
	// projection is set after a resize and uploaded with the next frame.
	projection *mgl32.Mat4
	screenshot bool
}

// New builds the renderer, camera and scene on the current GL context.
func New(cfg *config.Config, win window.Window, gl gpu.Functions) (*Viewer, error) {
	width, height := win.DrawableSize()
	if width <= 0 || height <= 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}

	r, err := renderer.New(gl, renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: mgl32.Vec3(cfg.Scene.ClearColor),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	scene, err := BuildScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	cam := camera.NewFlyCamera(mgl32.Vec3{scene.Middle, float32(cfg.Scene.Height) + 1, scene.Middle})
	cam.Speed = cfg.Camera.Speed
	cam.Sensitivity = cfg.Camera.Sensitivity

	t := renderer.Transforms{
		Model:      renderer.Mat(mgl32.Ident4()),
		View:       renderer.Mat(cam.ViewMatrix()),
		Projection: renderer.Mat(renderer.Perspective(cfg.Camera.FOV, width, height)),
	}
	if err := scene.Init(gl, t, InitialUniforms(cfg)); err != nil {
		return nil, fmt.Errorf("failed to init scene: %w", err)
	}

	v := &Viewer{
		config:   cfg,
		window:   win,
		renderer: r,
		camera:   cam,
		scene:    scene,
		bindings: input.DefaultBindings(),
		shots:    debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "terraview"),
		running:  true,
	}

	logger.Info("viewer initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("passes", len(scene.Passes())+1),
	)
	return v, nil
}

// Running reports whether the loop should continue.
func (v *Viewer) Running() bool { return v.running }

// Scene returns the scene being viewed.
func (v *Viewer) Scene() *Scene { return v.scene }

// Camera returns the fly camera.
func (v *Viewer) Camera() *camera.FlyCamera { return v.camera }

// Run polls events, renders and swaps until an exit is requested.
func (v *Viewer) Run() error {
	logger.Info("starting frame loop")
	for v.running {
		for _, e := range v.window.PollEvents() {
			v.HandleEvent(e)
		}
		if !v.running {
			break
		}
		v.Frame(time.Now())
		v.window.SwapBuffers()
	}
	logger.Info("frame loop stopped")
	return nil
}

// HandleEvent applies one input event.
func (v *Viewer) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		v.running = false

	case input.EventWindowResize:
		if v.renderer.Resize(e.Width, e.Height) {
			v.projection = renderer.Mat(renderer.Perspective(v.config.Camera.FOV, e.Width, e.Height))
		}

	case input.EventKeyDown:
		if m, ok := v.bindings.Movement(e.Key); ok {
			v.camera.WantMove(m)
		}
		if c, ok := v.bindings.Control(e.Key); ok {
			v.applyControl(c)
		}

	case input.EventKeyUp:
		if m, ok := v.bindings.Movement(e.Key); ok {
			v.camera.StopMove(m)
		}

	case input.EventMouseMove:
		// screen Y grows downward, pitch grows upward
		v.camera.MouseMoved(e.DX, -e.DY)
	}
}

func (v *Viewer) applyControl(c input.Control) {
	switch c {
	case input.EnableLighting:
		v.pending = append(v.pending, shader.LightingToggle{Enabled: true})
	case input.DisableLighting:
		v.pending = append(v.pending, shader.LightingToggle{Enabled: false})
	case input.EnableFog:
		v.pending = append(v.pending, shader.FogToggle{Enabled: true})
	case input.DisableFog:
		v.pending = append(v.pending, shader.FogToggle{Enabled: false})
	case input.Screenshot:
		v.screenshot = true
	case input.Exit:
		v.running = false
	}
}

// Close destroys the scene. It must run before the window closes.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	v.scene.Destroy()
}
