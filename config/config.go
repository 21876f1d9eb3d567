// Package config loads the playground settings from an optional YAML file.
// Fields the file leaves out keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window WindowSpec `yaml:"window"`
	Player PlayerSpec `yaml:"player"`
	Camera CameraSpec `yaml:"camera"`
	Gizmos GizmoSpec  `yaml:"gizmos"`
	Log    LogSpec    `yaml:"log"`
}

type WindowSpec struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	Samples   int    `yaml:"samples"`
	Resizable bool   `yaml:"resizable"`
}

type PlayerSpec struct {
	Speed            float32 `yaml:"speed"`             // units per second
	TurnRate         float32 `yaml:"turn_rate"`         // radians per second
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // scales raw pointer deltas
}

type CameraSpec struct {
	Position   [3]float32 `yaml:"position"`
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Fog        FogSpec    `yaml:"fog"`
}

type FogSpec struct {
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
}

type GizmoSpec struct {
	DepthBias float32 `yaml:"depth_bias"`
	LineWidth float32 `yaml:"line_width"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

func Default() Config {
	return Config{
		Window: WindowSpec{
			Title:  "Playground",
			Width:  1280,
			Height: 720,
		},
		Player: PlayerSpec{
			Speed:            12,
			TurnRate:         2,
			MouseSensitivity: 1,
		},
		Camera: CameraSpec{
			Position:   [3]float32{4, 4, 4},
			FOVDegrees: 70.53,
			Near:       0.1,
			Far:        1000,
			Fog:        FogSpec{Start: 20, End: 48},
		},
		Gizmos: GizmoSpec{
			DepthBias: -1,
			LineWidth: 2,
		},
		Log: LogSpec{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. A missing file yields an error wrapping
// fs.ErrNotExist so callers can fall back to Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("window samples %d must not be negative", c.Window.Samples))
	}
	if c.Player.Speed < 0 || c.Player.TurnRate < 0 {
		errs = append(errs, errors.New("player speed and turn rate must not be negative"))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %.2f must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%g far=%g are invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Fog.Start >= c.Camera.Fog.End {
		errs = append(errs, fmt.Errorf("fog start %g must be before end %g", c.Camera.Fog.Start, c.Camera.Fog.End))
	}
	if c.Gizmos.DepthBias < -1 || c.Gizmos.DepthBias > 1 {
		errs = append(errs, fmt.Errorf("gizmo depth bias %g must be in [-1, 1]", c.Gizmos.DepthBias))
	}
	if c.Gizmos.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("gizmo line width %g must be positive", c.Gizmos.LineWidth))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log format %q must be console or json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
