package playground

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-playground/app"
	"cube-playground/config"
	"cube-playground/gizmo"
	"cube-playground/input"
	"cube-playground/math"
	"cube-playground/scene"
	"cube-playground/world"
)

const dt = float32(0.1)

func newApp(t *testing.T) *app.App {
	t.Helper()
	a := app.New().AddPlugins(
		input.Plugin{},
		gizmo.Plugin{},
		app.InfiniteGridPlugin{},
		Plugin{},
	)
	a.Startup()
	a.World.Time.Delta = dt
	return a
}

func player(t *testing.T, w *world.World) *scene.Node {
	t.Helper()
	for n := range w.Query(Player) {
		return n
	}
	t.Fatal("no player spawned")
	return nil
}

func keys(w *world.World) *input.ButtonInput[input.KeyCode] {
	return world.MustResource[input.ButtonInput[input.KeyCode]](w)
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, 1e-4), "want %v, got %v", want, got)
}

func TestSummon(t *testing.T) {
	a := newApp(t)
	p := player(t, a.World)

	assert.True(t, a.World.Has(p, DebugObject))
	assert.Equal(t, math.NewVec3(0, 0.5, 0), p.Transform.Position)
	require.NotNil(t, p.Mesh)
	assert.Len(t, p.Mesh.Indices, 36)
	assert.Equal(t, playerColor, p.Mesh.Material.Albedo)

	cam := a.World.Scene.Camera
	require.NotNil(t, cam)
	assert.Equal(t, math.NewVec3(4, 4, 4), cam.Position())
	assertVec(t, math.NewVec3(-1, -1, -1).Normalize(), cam.GetForward())
	assert.InDelta(t, 70.53*stdmath.Pi/180, cam.FOV, 1e-5)

	require.NotNil(t, cam.Fog)
	assert.Equal(t, float32(20), cam.Fog.Start)
	assert.Equal(t, float32(48), cam.Fog.End)
	assert.Equal(t, float32(1), cam.Fog.Color.A)

	require.NotNil(t, cam.Listener)
	assert.Equal(t, math.NewVec3(0.1, 0, 0), cam.Listener.LeftEarOffset)
	assert.Equal(t, math.NewVec3(-0.1, 0, 0), cam.Listener.RightEarOffset)
}

func TestSetWorld(t *testing.T) {
	a := newApp(t)

	sun := a.World.Scene.DirectionalLight()
	require.NotNil(t, sun)
	assertVec(t, math.NewVec3(-1, -1, -1).Normalize(), sun.Direction)

	grids := world.MustResource[app.Grids](a.World)
	require.Len(t, grids.All, 1)
	assert.Same(t, a.World.Scene.Root, grids.All[0].Node.Parent)
}

func TestMoveForwardAndBack(t *testing.T) {
	tests := []struct {
		key  input.KeyCode
		want math.Vec3
	}{
		{input.KeyW, math.NewVec3(0, 0.5, -1.2)},
		{input.KeyS, math.NewVec3(0, 0.5, 1.2)},
		{input.KeyA, math.NewVec3(-1.2, 0.5, 0)},
		{input.KeyD, math.NewVec3(1.2, 0.5, 0)},
	}
	for _, tt := range tests {
		a := newApp(t)
		keys(a.World).Press(tt.key)
		MovePlayer(a.World)
		assertVec(t, tt.want, player(t, a.World).Transform.Position)
	}
}

func TestMoveFollowsRotation(t *testing.T) {
	a := newApp(t)
	p := player(t, a.World)
	rot := math.QuaternionRotationY(0.7).Mul(math.QuaternionRotationX(0.3))
	p.SetRotation(rot)

	keys(a.World).Press(input.KeyW)
	MovePlayer(a.World)

	want := math.NewVec3(0, 0.5, 0).Sub(rot.RotateVector(math.Vec3Front).Mul(12 * dt))
	assertVec(t, want, p.Transform.Position)
}

func TestDiagonalIsNotNormalised(t *testing.T) {
	a := newApp(t)
	keys(a.World).Press(input.KeyW)
	keys(a.World).Press(input.KeyD)
	MovePlayer(a.World)

	moved := player(t, a.World).Transform.Position.Sub(math.NewVec3(0, 0.5, 0))
	assert.InDelta(t, 12*dt*stdmath.Sqrt2, moved.Length(), 1e-4)
}

func TestOpposingKeysCancel(t *testing.T) {
	a := newApp(t)
	keys(a.World).Press(input.KeyW)
	keys(a.World).Press(input.KeyS)
	MovePlayer(a.World)
	assertVec(t, math.NewVec3(0, 0.5, 0), player(t, a.World).Transform.Position)
}

func TestArrowYaw(t *testing.T) {
	a := newApp(t)
	keys(a.World).Press(input.ArrowRight)
	MoveCamera(a.World)
	assert.True(t, math.QuaternionRotationY(-2*dt).ApproxEqual(player(t, a.World).Transform.Rotation, 1e-5))

	b := newApp(t)
	keys(b.World).Press(input.ArrowLeft)
	MoveCamera(b.World)
	assert.True(t, math.QuaternionRotationY(2*dt).ApproxEqual(player(t, b.World).Transform.Rotation, 1e-5))
}

func TestArrowYawIsLocal(t *testing.T) {
	a := newApp(t)
	p := player(t, a.World)
	start := math.QuaternionRotationX(0.5)
	p.SetRotation(start)

	keys(a.World).Press(input.ArrowRight)
	MoveCamera(a.World)

	want := start.Mul(math.QuaternionRotationY(-2 * dt))
	assert.True(t, want.ApproxEqual(p.Transform.Rotation, 1e-5))
}

func TestMouseLookPitchThenYaw(t *testing.T) {
	a := newApp(t)
	events := world.MustResource[input.Events[input.MouseMotion]](a.World)
	events.Send(input.MouseMotion{Delta: math.NewVec2(3, -2)})

	MouseLook(a.World)

	want := math.QuaternionIdentity().
		Mul(math.QuaternionRotationX(2 * dt)).
		Mul(math.QuaternionRotationY(-3 * dt))
	assert.True(t, want.ApproxEqual(player(t, a.World).Transform.Rotation, 1e-5))
	assert.Zero(t, events.Len(), "events are consumed")

	// order matters: yaw-then-pitch is a different orientation
	other := math.QuaternionRotationY(-3 * dt).Mul(math.QuaternionRotationX(2 * dt))
	assert.False(t, other.ApproxEqual(player(t, a.World).Transform.Rotation, 1e-5))
}

func TestMouseLookAppliesEveryEvent(t *testing.T) {
	a := newApp(t)
	events := world.MustResource[input.Events[input.MouseMotion]](a.World)
	events.Send(input.MouseMotion{Delta: math.NewVec2(1, 0)})
	events.Send(input.MouseMotion{Delta: math.NewVec2(0, 1)})

	MouseLook(a.World)

	want := math.QuaternionRotationX(0).Mul(math.QuaternionRotationY(-dt)).
		Mul(math.QuaternionRotationX(-dt)).Mul(math.QuaternionRotationY(0))
	assert.True(t, want.ApproxEqual(player(t, a.World).Transform.Rotation, 1e-5))
}

func TestMouseLookScalesWithFrameTime(t *testing.T) {
	a := newApp(t)
	a.World.Time.Delta = 0.5
	world.MustResource[input.Events[input.MouseMotion]](a.World).Send(input.MouseMotion{Delta: math.NewVec2(1, 0)})

	MouseLook(a.World)
	assert.True(t, math.QuaternionRotationY(-0.5).ApproxEqual(player(t, a.World).Transform.Rotation, 1e-5))
}

func TestRenderGizmos(t *testing.T) {
	a := newApp(t)
	p := player(t, a.World)
	rot := math.QuaternionRotationY(0.4)
	p.SetRotation(rot)

	RenderGizmos(a.World)

	lines := world.MustResource[gizmo.Store](a.World).Group(RoundGizmos).Lines()
	// arrow shaft + four tips, then three rays
	require.Len(t, lines, 8)

	pos := p.Transform.Position
	assert.Equal(t, arrowColor, lines[0].Color)
	assertVec(t, pos, lines[0].Start)
	assertVec(t, pos.Add(rot.RotateVector(math.Vec3Front).Mul(-2)), lines[0].End)

	rays := lines[5:]
	for i, want := range []struct {
		axis  math.Vec3
		color any
	}{
		{math.Vec3Right, xAxisColor},
		{math.Vec3Up, yAxisColor},
		{math.Vec3Front, zAxisColor},
	} {
		assertVec(t, pos, rays[i].Start)
		assertVec(t, pos.Add(rot.RotateVector(want.axis)), rays[i].End)
		assert.Equal(t, want.color, rays[i].Color)
	}
	assert.Empty(t, world.MustResource[gizmo.Store](a.World).Group(gizmo.DefaultGroup).Lines())
}

func TestDepthBiasAfterEveryFrame(t *testing.T) {
	a := newApp(t)
	store := world.MustResource[gizmo.Store](a.World)
	store.Register("extra")
	store.Config(gizmo.DefaultGroup).DepthBias = 0.5

	for i := 0; i < 3; i++ {
		a.RunStage(app.Update)
		store.EachConfig(func(name string, cfg *gizmo.Config) {
			assert.Equal(t, float32(-1), cfg.DepthBias, name)
		})
	}
}

func TestUpdateOrder(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, []string{
		"app.FollowCamera",
		"playground.MovePlayer",
		"playground.MoveCamera",
		"playground.MouseLook",
		"playground.RenderGizmos",
		"playground.UpdateGizmos",
	}, a.Schedule(app.Update).Names())
	assert.Equal(t, []string{"playground.Summon", "playground.SetWorld"}, a.Schedule(app.Startup).Names())
}

func TestApplyConfig(t *testing.T) {
	reloads := make(chan config.Config, 1)
	a := app.New().AddPlugins(input.Plugin{}, gizmo.Plugin{}, app.InfiniteGridPlugin{}, Plugin{}, ReloadPlugin{Configs: reloads})
	a.Startup()

	cfg := config.Default()
	cfg.Player.Speed = 30
	cfg.Camera.Fog.End = 80
	cfg.Gizmos.LineWidth = 4
	reloads <- cfg

	ApplyConfig(a.World)

	s := world.MustResource[Settings](a.World)
	assert.Equal(t, float32(30), s.Speed)
	assert.Equal(t, float32(80), a.World.Scene.Camera.Fog.End)
	assert.Equal(t, float32(4), world.MustResource[gizmo.Store](a.World).Config(RoundGizmos).LineWidth)
	assert.Equal(t, math.NewVec3(4, 4, 4), a.World.Scene.Camera.Position(), "camera placement is startup only")

	close(reloads)
	ApplyConfig(a.World)
	assert.Nil(t, world.MustResource[ConfigReloads](a.World).C)
}

func TestSettingsDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, float32(12), s.Speed)
	assert.Equal(t, float32(2), s.TurnRate)
	assert.Equal(t, float32(1), s.MouseSensitivity)
	assert.Equal(t, float32(-1), s.DepthBias)
	assert.Equal(t, math.NewVec3(4, 4, 4), s.CameraPosition)
}
