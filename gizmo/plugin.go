package gizmo

import (
	"cube-playground/app"
	"cube-playground/world"
)

// Plugin inserts the gizmo Store holding the default group.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	if _, ok := world.Resource[Store](a.World); !ok {
		world.Insert(a.World, *NewStore())
	}
}

// InitGroup registers a named group with the app's Store.
func InitGroup(a *app.App, name string) {
	store, ok := world.Resource[Store](a.World)
	if !ok {
		store = world.Insert(a.World, *NewStore())
	}
	store.Register(name)
}
