// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec3
}

// Renderer clears the frame and drives passes through update and draw.
type Renderer struct {
	gl     gpu.Functions
	config Config
	fps    FPSCounter
	log    *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(gl gpu.Functions, cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid renderer size %dx%d", cfg.Width, cfg.Height)
	}
	r := &Renderer{gl: gl, config: cfg, log: logger.Named("renderer")}

	r.log.Info("OpenGL initialized",
		zap.String("vendor", gl.GetString(gpu.Vendor)),
		zap.String("renderer", gl.GetString(gpu.Renderer)),
		zap.String("version", gl.GetString(gpu.Version)),
		zap.String("glsl", gl.GetString(gpu.ShadingLanguageVersion)),
	)

	gl.Enable(gpu.DepthTest)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// GL returns the function table the renderer draws with.
func (r *Renderer) GL() gpu.Functions { return r.gl }

// Resize handles window resize. A zero dimension is ignored and reported as false.
func (r *Renderer) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		r.log.Debug("ignoring degenerate resize", zap.Int("width", width), zap.Int("height", height))
		return false
	}
	r.config.Width = width
	r.config.Height = height
	r.gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return true
}

// WindowDimensions returns the current viewport size.
func (r *Renderer) WindowDimensions() (int, int) {
	return r.config.Width, r.config.Height
}

// Clear starts a new frame.
func (r *Renderer) Clear() {
	c := r.config.ClearColor
	r.gl.ClearColor(c.X(), c.Y(), c.Z(), 1.0)
	r.gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
}

// Draw runs every pass in order through UpdateDraw.
func (r *Renderer) Draw(passes []Pass, t Transforms, uniforms []shader.Uniform) {
	for _, p := range passes {
		UpdateDraw(p, t, uniforms)
	}
}

// EndFrame counts the frame and returns the frame rate once per elapsed second.
// Reporting is left to the caller.
func (r *Renderer) EndFrame(now time.Time) (int, bool) {
	return r.fps.Tick(now)
}
