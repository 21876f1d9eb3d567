package input

import (
	"cube-playground/app"
	"cube-playground/world"
)

// Plugin inserts the keyboard and mouse motion resources. The window runner
// fills them between frames; systems read them.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	world.Insert(a.World, *NewButtonInput[KeyCode]())
	world.Insert(a.World, Events[MouseMotion]{})
}

// EndFrame forgets this frame's key edges and any motion nobody read.
func EndFrame(w *world.World) {
	world.MustResource[ButtonInput[KeyCode]](w).Clear()
	world.MustResource[Events[MouseMotion]](w).Clear()
}
