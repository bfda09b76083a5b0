// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Lighting LightingConfig `yaml:"lighting" toml:"lighting"`
	Fog      FogConfig      `yaml:"fog" toml:"fog"`
	Sun      SunConfig      `yaml:"sun" toml:"sun"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Backend    string `yaml:"backend" toml:"backend"` // "sdl" or "glfw"
}

// SceneConfig describes the generated world.
type SceneConfig struct {
	Seed         uint32       `yaml:"seed" toml:"seed"`
	FloorSide    int          `yaml:"floor_side" toml:"floor_side"`
	Height       int          `yaml:"height" toml:"height"` // approximate terrain height
	CubeSize     float32      `yaml:"cube_size" toml:"cube_size"`
	ClearColor   [3]float32   `yaml:"clear_color" toml:"clear_color"`
	NoiseScale   float64      `yaml:"noise_scale" toml:"noise_scale"`
	NoiseOctaves int          `yaml:"noise_octaves" toml:"noise_octaves"`
	Teapots      [][2]float32 `yaml:"teapots" toml:"teapots"` // XZ offsets from the floor middle
}

// AssetsConfig holds asset file paths.
type AssetsConfig struct {
	DirtTexture string `yaml:"dirt_texture" toml:"dirt_texture"`
	SunTexture  string `yaml:"sun_texture" toml:"sun_texture"`
	TeapotMesh  string `yaml:"teapot_mesh" toml:"teapot_mesh"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	Speed       float32 `yaml:"speed" toml:"speed"`             // world units per second
	Sensitivity float32 `yaml:"sensitivity" toml:"sensitivity"` // degrees per mouse unit
	FOV         float32 `yaml:"fov" toml:"fov"`                 // vertical, degrees
}

// LightingConfig holds Phong coefficients.
type LightingConfig struct {
	Ambient  float32 `yaml:"ambient" toml:"ambient"`
	Specular float32 `yaml:"specular" toml:"specular"`
	Enabled  bool    `yaml:"enabled" toml:"enabled"`
}

// FogConfig holds linear fog distances.
type FogConfig struct {
	Near    float32 `yaml:"near" toml:"near"`
	Far     float32 `yaml:"far" toml:"far"`
	Enabled bool    `yaml:"enabled" toml:"enabled"`
}

// SunConfig holds the orbiting light settings.
type SunConfig struct {
	HeightOffset float32  `yaml:"height_offset" toml:"height_offset"`
	OrbitRadius  float32  `yaml:"orbit_radius" toml:"orbit_radius"`
	OrbitPeriod  Duration `yaml:"orbit_period" toml:"orbit_period"`
	Size         float32  `yaml:"size" toml:"size"` // half side of the billboard
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps" toml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "terraview (press Escape to exit)",
			Width:   800,
			Height:  600,
			VSync:   true,
			Backend: BackendSDL,
		},
		Scene: SceneConfig{
			Seed:         123,
			FloorSide:    50,
			Height:       4,
			CubeSize:     1.0,
			ClearColor:   [3]float32{0.1, 0.1, 0.1},
			NoiseScale:   0.01,
			NoiseOctaves: 1,
			Teapots: [][2]float32{
				{3, 5},
				{-5, 2},
				{0, 0},
			},
		},
		Assets: AssetsConfig{
			DirtTexture: "./assets/dirt.webp",
			SunTexture:  "./assets/sun.png",
			TeapotMesh:  "./assets/teapot.obj",
		},
		Camera: CameraConfig{
			Speed:       6.0,
			Sensitivity: 0.1,
			FOV:         45.0,
		},
		Lighting: LightingConfig{
			Ambient:  0.1,
			Specular: 0.5,
			Enabled:  true,
		},
		Fog: FogConfig{
			Near:    1.0,
			Far:     50.0,
			Enabled: true,
		},
		Sun: SunConfig{
			HeightOffset: 10.0,
			OrbitRadius:  10.0,
			OrbitPeriod:  Duration{10 * time.Second},
			Size:         3.0,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		errs = append(errs, fmt.Errorf("unknown window backend %q", c.Window.Backend))
	}
	if c.Scene.FloorSide <= 0 {
		errs = append(errs, fmt.Errorf("scene floor_side %d must be positive", c.Scene.FloorSide))
	}
	if c.Scene.Height < 0 {
		errs = append(errs, fmt.Errorf("scene height %d must not be negative", c.Scene.Height))
	}
	if c.Fog.Far <= c.Fog.Near {
		errs = append(errs, fmt.Errorf("fog far %.2f must exceed near %.2f", c.Fog.Far, c.Fog.Near))
	}
	if c.Sun.OrbitPeriod.Duration <= 0 {
		errs = append(errs, fmt.Errorf("sun orbit_period %s must be positive", c.Sun.OrbitPeriod))
	}
	return errors.Join(errs...)
}
