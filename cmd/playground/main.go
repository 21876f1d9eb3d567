// Command playground opens the cube scene: a player cube driven with WASD,
// the arrow keys and the mouse, watched by a fixed camera.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cube-playground/app"
	"cube-playground/config"
	"cube-playground/core"
	"cube-playground/diagnostics"
	"cube-playground/internal/opengl"
	"cube-playground/platform"
	"cube-playground/playground"
	"cube-playground/renderer"
)

func main() {
	configPath := flag.String("config", "playground.yaml", "path to the YAML config (missing file uses defaults)")
	watch := flag.Bool("watch", false, "reload tunables when the config file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	missing := errors.Is(err, fs.ErrNotExist)
	if missing {
		cfg = config.Default()
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "playground: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "playground: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	setLoggers(logger)

	if missing {
		logger.Info("config file not found, using defaults", zap.String("path", *configPath))
	}

	if err := run(cfg, *configPath, *watch, logger); err != nil {
		logger.Error("playground stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, path string, watch bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New().AddPlugins(platform.DefaultPlugins(windowConfig(cfg.Window))...)
	app.InsertResource(a, app.ClearColor{Color: core.ColorNone})
	app.InsertResource(a, app.Msaa{Samples: cfg.Window.Samples})

	a.AddPlugins(
		diagnostics.Plugin{},
		app.InfiniteGridPlugin{},
		playground.Plugin{Settings: playground.SettingsFromConfig(cfg)},
	)

	if watch {
		w, err := config.NewWatcher(path)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		go func() {
			for err := range w.Errors {
				logger.Warn("config reload failed, keeping previous", zap.Error(err))
			}
		}()
		a.AddPlugins(playground.ReloadPlugin{Configs: w.Configs})
		logger.Info("watching config", zap.String("path", path))
	}

	return a.Run(ctx)
}

// windowConfig is the fixed-size, centred window the scene is laid out for.
// Only close is offered; GLFW drops maximize with resizing and cannot hide
// minimize on its own.
func windowConfig(spec config.WindowSpec) core.WindowConfig {
	return core.WindowConfig{
		Width:     spec.Width,
		Height:    spec.Height,
		Title:     spec.Title,
		Resizable: spec.Resizable,
		VSync:     spec.VSync,
		Centered:  true,
		Visible:   false,
		Samples:   spec.Samples,
		Buttons:   core.EnabledButtons{Close: true},
	}
}

func newLogger(spec config.LogSpec) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(spec.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	if spec.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func setLoggers(l *zap.Logger) {
	app.SetLogger(l.Named("app"))
	config.SetLogger(l.Named("config"))
	renderer.SetLogger(l.Named("renderer"))
	opengl.SetLogger(l.Named("opengl"))
	platform.SetLogger(l.Named("platform"))
}
