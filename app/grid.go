package app

import (
	"cube-playground/scene"
	"cube-playground/world"
)

// Grids lists the infinite grids that follow the camera.
type Grids struct {
	All []*scene.InfiniteGrid
}

// InfiniteGridPlugin keeps every spawned infinite grid centred under the
// active camera.
type InfiniteGridPlugin struct{}

func (InfiniteGridPlugin) Build(a *App) {
	if _, ok := world.Resource[Grids](a.World); !ok {
		world.Insert(a.World, Grids{})
	}
	a.AddSystems(Update, FollowCamera)
}

// SpawnInfiniteGrid adds a grid to the scene.
func SpawnInfiniteGrid(w *world.World, settings scene.GridSettings) *scene.InfiniteGrid {
	g := scene.NewInfiniteGrid(settings)
	w.Spawn(g.Node)

	grids, ok := world.Resource[Grids](w)
	if !ok {
		grids = world.Insert(w, Grids{})
	}
	grids.All = append(grids.All, g)
	if w.Scene.Camera != nil {
		g.Follow(w.Scene.Camera.Position())
	}
	return g
}

// FollowCamera re-centres the grids under the camera.
func FollowCamera(w *world.World) {
	cam := w.Scene.Camera
	if cam == nil {
		return
	}
	grids, ok := world.Resource[Grids](w)
	if !ok {
		return
	}
	for _, g := range grids.All {
		g.Follow(cam.Position())
	}
}
