// Package platform opens the window and runs the frame loop: input from GLFW
// feeds the world, the app's stages run, and the scene, gizmos and screen
// text are drawn through the renderer.
package platform

import (
	"context"

	"cube-playground/app"
	"cube-playground/core"
	"cube-playground/gizmo"
	"cube-playground/input"
	"cube-playground/world"
)

// DefaultPlugins is the window, input and gizmo setup every program needs.
func DefaultPlugins(window core.WindowConfig) []app.Plugin {
	return []app.Plugin{
		input.Plugin{},
		gizmo.Plugin{},
		WindowPlugin{Window: window},
	}
}

// WindowPlugin installs the windowed runner and the resources it reads.
type WindowPlugin struct {
	Window core.WindowConfig
	// KeepOpenOnEscape leaves Escape to the program instead of closing.
	KeepOpenOnEscape bool
}

func (p WindowPlugin) Build(a *app.App) {
	if _, ok := world.Resource[app.ClearColor](a.World); !ok {
		app.InsertResource(a, app.ClearColor{Color: core.Color{R: 0.17, G: 0.17, B: 0.17, A: 1}})
	}
	if _, ok := world.Resource[app.Msaa](a.World); !ok {
		app.InsertResource(a, app.Msaa{Samples: p.Window.Samples})
	}
	app.InsertResource(a, app.WindowResolution{Width: p.Window.Width, Height: p.Window.Height})
	if _, ok := world.Resource[app.ScreenText](a.World); !ok {
		app.InsertResource(a, app.ScreenText{})
	}

	if !p.KeepOpenOnEscape {
		a.AddSystems(app.Update, CloseOnEscape)
	}

	cfg := p.Window
	a.SetRunner(func(ctx context.Context, a *app.App) error {
		return run(ctx, a, cfg)
	})
}

// CloseOnEscape stops the app when Escape is pressed.
func CloseOnEscape(w *world.World) {
	if world.MustResource[input.ButtonInput[input.KeyCode]](w).JustPressed(input.Escape) {
		world.MustResource[app.AppExit](w).Requested = true
	}
}
