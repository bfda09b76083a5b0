// Package window handles window and OpenGL context creation.
//
// Two backends exist: SDL2 (default) and GLFW. Both request an OpenGL 4.1
// core context, the highest supported on macOS.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/terraview/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Backend    string
}

// Window is an open window with a current OpenGL context.
type Window interface {
	// PollEvents drains pending events. Key repeats are not reported.
	PollEvents() []input.Event
	SwapBuffers()
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (int, int)
	SetTitle(title string)
	Close()
}

// Open creates a window with the configured backend and makes its context current.
func Open(cfg Config) (Window, error) {
	switch cfg.Backend {
	case BackendSDL, "":
		w, err := newSDL(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case BackendGLFW:
		w, err := newGLFW(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
