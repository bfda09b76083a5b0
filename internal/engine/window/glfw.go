package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/input"
	"github.com/Faultbox/terraview/internal/logger"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyW:         input.KeyW,
	glfw.KeyA:         input.KeyA,
	glfw.KeyS:         input.KeyS,
	glfw.KeyD:         input.KeyD,
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyLeftShift: input.KeyLeftShift,
	glfw.KeyL:         input.KeyL,
	glfw.KeyK:         input.KeyK,
	glfw.KeyF:         input.KeyF,
	glfw.KeyG:         input.KeyG,
	glfw.KeyF12:       input.KeyF12,
	glfw.KeyEscape:    input.KeyEscape,
}

// glfwWindow wraps a GLFW window. GLFW reports input through callbacks,
// which append to the queue during glfw.PollEvents.
type glfwWindow struct {
	window *glfw.Window
	events *input.Queue

	cursor      cursorTracker
	closeQueued bool
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{window: win, events: input.NewQueue()}

	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			w.events.Push(input.Event{Type: input.EventKeyDown, Key: glfwKeys[key]})
		case glfw.Release:
			w.events.Push(input.Event{Type: input.EventKeyUp, Key: glfwKeys[key]})
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if dx, dy, ok := w.cursor.Move(x, y); ok {
			w.events.Push(input.Event{Type: input.EventMouseMove, DX: dx, DY: dy})
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *glfwWindow) PollEvents() []input.Event {
	w.events.Reset()
	glfw.PollEvents()
	if w.window.ShouldClose() && !w.closeQueued {
		w.closeQueued = true
		w.events.Push(input.Event{Type: input.EventQuit})
	}
	return w.events.Events()
}

func (w *glfwWindow) SwapBuffers() { w.window.SwapBuffers() }

func (w *glfwWindow) DrawableSize() (int, int) { return w.window.GetFramebufferSize() }

func (w *glfwWindow) SetTitle(title string) { w.window.SetTitle(title) }

func (w *glfwWindow) Close() {
	logger.Info("closing window", zap.String("backend", BackendGLFW))
	w.window.Destroy()
	glfw.Terminate()
}

// cursorTracker turns absolute cursor positions into deltas.
// The first position only primes the tracker.
type cursorTracker struct {
	x, y   float64
	primed bool
}

func (c *cursorTracker) Move(x, y float64) (dx, dy float32, ok bool) {
	if !c.primed {
		c.x, c.y, c.primed = x, y, true
		return 0, 0, false
	}
	dx, dy = float32(x-c.x), float32(y-c.y)
	c.x, c.y = x, y
	return dx, dy, true
}
