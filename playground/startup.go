package playground

import (
	"go.uber.org/zap"

	"cube-playground/app"
	"cube-playground/core"
	"cube-playground/math"
	"cube-playground/scene"
	"cube-playground/world"
)

// Summon spawns the player cube and the camera.
func Summon(w *world.World) {
	s := world.MustResource[Settings](w)

	mesh := scene.CreateCuboid(1, 1, 1)
	mesh.Material = scene.NewMaterial("Player", playerColor)
	player := scene.NewNode("Player")
	player.Mesh = mesh
	player.SetTransform(core.TransformFromXYZ(0, 0.5, 0))
	w.Spawn(player, Player, DebugObject)

	aspect := float32(16.0 / 9.0)
	if res, ok := world.Resource[app.WindowResolution](w); ok {
		aspect = res.AspectRatio()
	}
	cam := scene.NewCamera(s.FOV, aspect, s.Near, s.Far)
	view := core.NewTransform()
	view.Position = s.CameraPosition
	cam.SetTransform(view.LookingAt(math.Vec3Zero, math.Vec3Up))
	fog := s.Fog
	cam.Fog = &fog
	listener := s.Listener
	cam.Listener = &listener
	w.Scene.SetCamera(cam)

	app.Logger().Debug("summoned player and camera",
		zap.Uint32("player", player.Id),
		zap.Float32("fov", s.FOV))
}

// SetWorld spawns the ground grid and a sun shining from (1,1,1) towards the
// origin.
func SetWorld(w *world.World) {
	app.SpawnInfiniteGrid(w, scene.DefaultGridSettings())

	sun := core.TransformFromXYZ(1, 1, 1).LookingAt(math.Vec3Zero, math.Vec3Up)
	w.Scene.AddLight(scene.NewDirectionalLight(sun))
}
