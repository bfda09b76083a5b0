package config

import (
	"flag"
	"fmt"
	"math"
	"strconv"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config as YAML to this path and exit")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and FPS output")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagBackend    = flag.String("backend", "", "Window backend: sdl or glfw")
	flagSeed       = &seedFlag{}
)

func init() {
	flag.Var(flagSeed, "seed", "Terrain noise seed (0-4294967295)")
}

// seedFlag is an optional uint32 flag. Out-of-range values fail at parse time.
type seedFlag struct {
	value uint32
	set   bool
}

func (f *seedFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatUint(uint64(f.value), 10)
}

func (f *seedFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("seed must be an integer in [0, %d]", uint32(math.MaxUint32))
	}
	f.value, f.set = uint32(v), true
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the --save-config destination, empty when not requested.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if flagSeed.set {
		cfg.Scene.Seed = flagSeed.value
	}
}
