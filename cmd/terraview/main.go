// Package main is the entry point for the terraview scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/config"
	"github.com/Faultbox/terraview/internal/engine/gpu/opengl"
	"github.com/Faultbox/terraview/internal/engine/window"
	"github.com/Faultbox/terraview/internal/logger"
	"github.com/Faultbox/terraview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== terraview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
	logger.Sync()
}

// run owns the window and the scene. Deferred calls run in reverse, so the
// scene is destroyed while its GL context is still alive.
func run(cfg *config.Config) error {
	win, err := window.Open(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Backend:    cfg.Window.Backend,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	gl, err := opengl.New()
	if err != nil {
		return fmt.Errorf("failed to load OpenGL: %w", err)
	}

	v, err := viewer.New(cfg, win, gl)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
