package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/logger"
)

var (
	// ErrAlreadyInitialized is returned by Init on a pass that is already ready.
	ErrAlreadyInitialized = errors.New("render pass already initialized")
	// ErrDestroyed is returned by Init on a pass that was destroyed.
	ErrDestroyed = errors.New("render pass destroyed")
)

// State is the lifecycle state of a pass.
type State int

const (
	Uninitialized State = iota
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Pass is a drawable entity driven by the renderer every frame.
type Pass interface {
	// Init allocates GPU resources, uploads the transforms with identity for
	// unset fields and applies the uniforms once.
	Init(gl gpu.Functions, t Transforms, uniforms []shader.Uniform) error
	// Use activates the pass program.
	Use()
	// Update uploads the set transforms and applies uniforms. The program
	// must be active.
	Update(t Transforms, uniforms []shader.Uniform)
	// Draw issues the draw calls. The program must be active.
	Draw()
	Destroy()
	State() State
}

// UpdateDraw activates the program, updates and draws, in that order.
// It is the per-frame entry point for a pass.
func UpdateDraw(p Pass, t Transforms, uniforms []shader.Uniform) {
	if s := p.State(); s != Ready {
		logger.Warn("skipping pass that is not ready", zap.Stringer("state", s))
		return
	}
	p.Use()
	p.Update(t, uniforms)
	p.Draw()
}

// Resources is the GPU object bundle a pass owns once initialized.
type Resources struct {
	Program   uint32
	Texture   uint32 // 0 when untextured
	Drawables []Drawable
}

// Handle implements the Pass lifecycle. Entities embed it and provide the
// resources through Init's build function.
type Handle struct {
	Name string

	gl    gpu.Functions
	state State
	res   Resources
}

// Init runs build and takes ownership of what it returns. build is never
// called when the pass is not Uninitialized, so nothing leaks.
func (h *Handle) Init(gl gpu.Functions, t Transforms, uniforms []shader.Uniform, build func(gpu.Functions) (Resources, error)) error {
	switch h.state {
	case Ready:
		return fmt.Errorf("%s: %w", h.Name, ErrAlreadyInitialized)
	case Destroyed:
		return fmt.Errorf("%s: %w", h.Name, ErrDestroyed)
	}

	res, err := build(gl)
	if err != nil {
		return fmt.Errorf("init %s: %w", h.Name, err)
	}

	h.gl = gl
	h.res = res
	h.state = Ready

	gl.UseProgram(res.Program)
	h.Upload(t.AsInit(), uniforms)

	logger.Debug("render pass ready",
		zap.String("pass", h.Name),
		zap.Uint32("program", res.Program),
		zap.Int("drawables", len(res.Drawables)),
	)
	return nil
}

// Ready reports whether the pass can issue GPU calls and warns when it cannot.
func (h *Handle) Ready(op string) bool {
	if h.state == Ready {
		return true
	}
	logger.Warn("render pass not ready",
		zap.String("pass", h.Name),
		zap.String("op", op),
		zap.Stringer("state", h.state),
	)
	return false
}

// State returns the lifecycle state.
func (h *Handle) State() State { return h.state }

// GL returns the function table given to Init, nil before.
func (h *Handle) GL() gpu.Functions { return h.gl }

// Resources returns the owned GPU objects.
func (h *Handle) Resources() Resources { return h.res }

func (h *Handle) Use() {
	if h.Ready("use") {
		h.gl.UseProgram(h.res.Program)
	}
}

func (h *Handle) Update(t Transforms, uniforms []shader.Uniform) {
	if h.Ready("update") {
		h.Upload(t, uniforms)
	}
}

// Upload writes transforms and uniforms without a state check.
func (h *Handle) Upload(t Transforms, uniforms []shader.Uniform) {
	t.Upload(h.gl, h.res.Program)
	shader.Apply(h.gl, h.res.Program, uniforms)
}

func (h *Handle) Draw() {
	if !h.Ready("draw") {
		return
	}
	if h.res.Texture != 0 {
		h.gl.BindTexture(gpu.Texture2D, h.res.Texture)
	}
	for _, d := range h.res.Drawables {
		d.draw(h.gl)
	}
}

// Destroy releases every owned GPU object exactly once. Later calls are no-ops.
func (h *Handle) Destroy() {
	if h.state == Ready {
		for _, d := range h.res.Drawables {
			d.release(h.gl)
		}
		if h.res.Texture != 0 {
			h.gl.DeleteTexture(h.res.Texture)
		}
		h.gl.DeleteProgram(h.res.Program)
		h.res = Resources{}
		logger.Debug("render pass destroyed", zap.String("pass", h.Name))
	}
	h.state = Destroyed
}
