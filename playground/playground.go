// Package playground is the scene demo: a player cube driven by keyboard and
// mouse, a fixed camera watching it, a ground grid and a sun, with the cube's
// orientation drawn as gizmos.
package playground

import (
	"golang.org/x/image/colornames"

	"cube-playground/app"
	"cube-playground/config"
	"cube-playground/core"
	"cube-playground/gizmo"
	"cube-playground/math"
	"cube-playground/scene"
	"cube-playground/world"
)

var (
	// Player tags the entity moved by the keyboard and mouse.
	Player = world.NewMarker("Player")
	// DebugObject tags entities whose orientation is drawn as gizmos.
	DebugObject = world.NewMarker("DebugObject")
)

// RoundGizmos is the gizmo group the orientation arrows are drawn in.
const RoundGizmos = "round"

var (
	playerColor = core.ColorRGB8(124, 144, 255)
	arrowColor  = core.ColorFrom(colornames.Yellow)
	xAxisColor  = core.ColorFrom(colornames.Red)
	yAxisColor  = core.ColorFrom(colornames.Lime)
	zAxisColor  = core.ColorFrom(colornames.Blue)
)

// Settings holds the tunables of the demo.
type Settings struct {
	Speed            float32 // units per second
	TurnRate         float32 // radians per second
	MouseSensitivity float32
	DepthBias        float32 // forced on every gizmo group each frame
	LineWidth        float32

	CameraPosition math.Vec3
	FOV            float32 // vertical, radians
	Near, Far      float32
	Fog            scene.Fog
	Listener       scene.SpatialListener
}

func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

func SettingsFromConfig(cfg config.Config) Settings {
	p := cfg.Camera.Position
	return Settings{
		Speed:            cfg.Player.Speed,
		TurnRate:         cfg.Player.TurnRate,
		MouseSensitivity: cfg.Player.MouseSensitivity,
		DepthBias:        cfg.Gizmos.DepthBias,
		LineWidth:        cfg.Gizmos.LineWidth,
		CameraPosition:   math.NewVec3(p[0], p[1], p[2]),
		FOV:              math.Radians(cfg.Camera.FOVDegrees),
		Near:             cfg.Camera.Near,
		Far:              cfg.Camera.Far,
		Fog: scene.Fog{
			Color: core.ColorBlack,
			Start: cfg.Camera.Fog.Start,
			End:   cfg.Camera.Fog.End,
		},
		Listener: scene.SpatialListener{
			LeftEarOffset:  math.NewVec3(0.1, 0, 0),
			RightEarOffset: math.NewVec3(-0.1, 0, 0),
		},
	}
}

// Plugin wires the demo into an app. The input, gizmo and grid plugins are
// expected to be present.
type Plugin struct {
	Settings Settings
}

func (p Plugin) Build(a *app.App) {
	settings := p.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}
	app.InsertResource(a, settings)

	gizmo.InitGroup(a, RoundGizmos)
	world.MustResource[gizmo.Store](a.World).Config(RoundGizmos).LineWidth = settings.LineWidth

	a.AddSystems(app.Startup, Summon, SetWorld)
	a.AddSystems(app.Update, MovePlayer, MoveCamera, MouseLook, RenderGizmos, UpdateGizmos)
}
