package playground

import (
	"go.uber.org/zap"

	"cube-playground/app"
	"cube-playground/config"
	"cube-playground/gizmo"
	"cube-playground/world"
)

// ConfigReloads carries configs reloaded from disk.
type ConfigReloads struct {
	C <-chan config.Config
}

// ReloadPlugin applies configs reloaded from disk, one per frame. Only the
// tunables take effect: player speeds, fog and gizmo drawing. Window and
// camera placement stay as they were at startup.
type ReloadPlugin struct {
	Configs <-chan config.Config
}

func (p ReloadPlugin) Build(a *app.App) {
	app.InsertResource(a, ConfigReloads{C: p.Configs})
	a.AddSystems(app.Update, ApplyConfig)
}

// ApplyConfig takes at most one pending config per frame.
func ApplyConfig(w *world.World) {
	reloads := world.MustResource[ConfigReloads](w)
	var cfg config.Config
	select {
	case c, ok := <-reloads.C:
		if !ok {
			reloads.C = nil
			return
		}
		cfg = c
	default:
		return
	}

	s := world.MustResource[Settings](w)
	next := SettingsFromConfig(cfg)
	s.Speed = next.Speed
	s.TurnRate = next.TurnRate
	s.MouseSensitivity = next.MouseSensitivity
	s.DepthBias = next.DepthBias
	s.LineWidth = next.LineWidth
	s.Fog = next.Fog

	if cam := w.Scene.Camera; cam != nil && cam.Fog != nil {
		*cam.Fog = s.Fog
	}
	world.MustResource[gizmo.Store](w).EachConfig(func(_ string, c *gizmo.Config) {
		c.LineWidth = s.LineWidth
	})

	app.Logger().Info("applied reloaded config",
		zap.Float32("speed", s.Speed),
		zap.Float32("turn_rate", s.TurnRate),
		zap.Float32("fog_end", s.Fog.End))
}
