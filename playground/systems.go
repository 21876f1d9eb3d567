package playground

import (
	"cube-playground/gizmo"
	"cube-playground/input"
	"cube-playground/math"
	"cube-playground/world"
)

// MovePlayer moves players along their own axes: W/S along Z, A/D along X.
// Keys add up, so diagonals are faster than straight moves.
func MovePlayer(w *world.World) {
	keys := world.MustResource[input.ButtonInput[input.KeyCode]](w)
	step := world.MustResource[Settings](w).Speed * w.Time.Delta

	for node := range w.Query(Player) {
		rot := node.Transform.Rotation
		forward := rot.RotateVector(math.Vec3Front).Mul(step)
		right := rot.RotateVector(math.Vec3Right).Mul(step)

		pos := node.Transform.Position
		if keys.Pressed(input.KeyW) {
			pos = pos.Sub(forward)
		}
		if keys.Pressed(input.KeyS) {
			pos = pos.Add(forward)
		}
		if keys.Pressed(input.KeyA) {
			pos = pos.Sub(right)
		}
		if keys.Pressed(input.KeyD) {
			pos = pos.Add(right)
		}
		node.SetPosition(pos)
	}
}

// MoveCamera turns players about their local Y axis with the arrow keys.
func MoveCamera(w *world.World) {
	keys := world.MustResource[input.ButtonInput[input.KeyCode]](w)
	angle := world.MustResource[Settings](w).TurnRate * w.Time.Delta

	for node := range w.Query(Player) {
		if keys.Pressed(input.ArrowRight) {
			node.Rotate(math.QuaternionRotationY(-angle))
		}
		if keys.Pressed(input.ArrowLeft) {
			node.Rotate(math.QuaternionRotationY(angle))
		}
	}
}

// MouseLook applies every pointer motion since the last frame to players:
// pitch by the vertical delta, then yaw by the horizontal one. Deltas are
// scaled by the frame time as well as the sensitivity.
func MouseLook(w *world.World) {
	events := world.MustResource[input.Events[input.MouseMotion]](w).Read()
	if len(events) == 0 {
		return
	}
	s := world.MustResource[Settings](w)
	dt := w.Time.Delta

	for _, ev := range events {
		delta := ev.Delta.Mul(s.MouseSensitivity)
		for node := range w.Query(Player) {
			node.Rotate(math.QuaternionRotationX(-delta.Y * dt))
			node.Rotate(math.QuaternionRotationY(-delta.X * dt))
		}
	}
}

// RenderGizmos draws each debug object's heading as an arrow two units along
// its -Z and its local axes as unit rays.
func RenderGizmos(w *world.World) {
	g := world.MustResource[gizmo.Store](w).Group(RoundGizmos)

	for node := range w.Query(DebugObject) {
		pos := node.Transform.Position
		rot := node.Transform.Rotation

		g.Arrow(pos, pos.Add(rot.RotateVector(math.Vec3Front).Mul(-2)), arrowColor)
		g.Ray(pos, rot.RotateVector(math.Vec3Right), xAxisColor)
		g.Ray(pos, rot.RotateVector(math.Vec3Up), yAxisColor)
		g.Ray(pos, rot.RotateVector(math.Vec3Front), zAxisColor)
	}
}

// UpdateGizmos forces the configured depth bias onto every gizmo group.
func UpdateGizmos(w *world.World) {
	bias := world.MustResource[Settings](w).DepthBias
	world.MustResource[gizmo.Store](w).EachConfig(func(_ string, cfg *gizmo.Config) {
		cfg.DepthBias = bias
	})
}
