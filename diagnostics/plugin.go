package diagnostics

import (
	"cube-playground/app"
	"cube-playground/core"
	"cube-playground/world"
)

const overlayBlock = "diagnostics"

// Plugin measures every frame and keeps the bottom right corner of the screen
// showing the smoothed frame rate and frame time.
type Plugin struct {
	History int
	// Refresh is the overlay update interval in seconds.
	Refresh float32
}

func (p Plugin) Build(a *app.App) {
	history := p.History
	if history == 0 {
		history = DefaultHistory
	}
	refresh := p.Refresh
	if refresh == 0 {
		refresh = 1
	}

	world.Insert(a.World, *NewFrameTime(history))
	world.Insert(a.World, *NewOverlay(refresh))
	if _, ok := world.Resource[app.ScreenText](a.World); !ok {
		world.Insert(a.World, app.ScreenText{})
	}

	a.AddSystems(app.Update, MeasureFrame)
	a.AddSystems(app.Overlay, ShowOverlay)
}

// MeasureFrame feeds the frame clock into FrameTime.
func MeasureFrame(w *world.World) {
	world.MustResource[FrameTime](w).Update(w.Time.Delta)
}

// ShowOverlay publishes the overlay lines as screen text.
func ShowOverlay(w *world.World) {
	overlay := world.MustResource[Overlay](w)
	if !overlay.Refresh(world.MustResource[FrameTime](w), w.Time.Delta) {
		return
	}
	world.MustResource[app.ScreenText](w).Set(overlayBlock, app.TextBlock{
		Lines:  append([]string(nil), overlay.Lines()...),
		Anchor: app.BottomRight,
		Color:  core.ColorWhite,
	})
}
