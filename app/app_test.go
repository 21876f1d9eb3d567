package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-playground/core"
	"cube-playground/scene"
	"cube-playground/world"
)

type trace struct {
	calls []string
}

func recordA(w *world.World) { world.MustResource[trace](w).calls = append(world.MustResource[trace](w).calls, "a") }
func recordB(w *world.World) { world.MustResource[trace](w).calls = append(world.MustResource[trace](w).calls, "b") }

type tracePlugin struct{}

func (tracePlugin) Build(a *App) {
	InsertResource(a, trace{})
	a.AddSystems(Startup, recordA)
	a.AddSystems(Update, recordA, recordB)
}

func TestStartupRunsOnce(t *testing.T) {
	a := New().AddPlugins(tracePlugin{})

	a.Startup()
	a.Startup()
	a.RunStage(Update)

	assert.Equal(t, []string{"a", "a", "b"}, world.MustResource[trace](a.World).calls)
}

func TestPluginAddedTwiceBuildsOnce(t *testing.T) {
	a := New().AddPlugins(tracePlugin{}, tracePlugin{})
	assert.Equal(t, 2, a.Schedule(Update).Len())
}

func TestPluginFuncAlwaysBuilds(t *testing.T) {
	n := 0
	a := New()
	a.AddPlugins(PluginFunc(func(*App) { n++ }), PluginFunc(func(*App) { n++ }))
	assert.Equal(t, 2, n)
}

func TestScheduleNamesAndStats(t *testing.T) {
	a := New().AddPlugins(tracePlugin{})
	sched := a.Schedule(Update)

	assert.Equal(t, []string{"app.recordA", "app.recordB"}, sched.Names())

	before := sched.Stats()
	assert.Zero(t, before.TotalExecutions)
	assert.Zero(t, before.Systems[0].MinDuration)

	for i := 0; i < 3; i++ {
		a.RunStage(Update)
	}
	stats := sched.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
}

func TestRunWithoutRunner(t *testing.T) {
	err := New().Run(context.Background())
	assert.ErrorIs(t, err, ErrNoRunner)
}

func TestRunnerDrivesStages(t *testing.T) {
	a := New().AddPlugins(tracePlugin{})
	a.SetRunner(func(ctx context.Context, a *App) error {
		a.Startup()
		for frame := 0; !a.ExitRequested(); frame++ {
			a.World.Time.Advance(time.Unix(0, int64(frame)*int64(time.Millisecond)))
			a.RunStage(Update)
			if frame == 1 {
				a.Exit()
			}
		}
		return nil
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"a", "a", "b", "a", "b"}, world.MustResource[trace](a.World).calls)
	assert.Equal(t, uint64(1), a.World.Time.Frame)
}

func TestUnknownStagePanics(t *testing.T) {
	assert.Panics(t, func() { New().Schedule(Stage(42)) })
	assert.Equal(t, "Stage(42)", Stage(42).String())
}

func TestScreenText(t *testing.T) {
	var st ScreenText
	st.Set("b", TextBlock{Lines: []string{"two"}, Anchor: BottomRight})
	st.Set("a", TextBlock{Lines: []string{"one"}, Color: core.ColorWhite})

	var order []string
	st.Each(func(name string, _ TextBlock) { order = append(order, name) })
	assert.Equal(t, []string{"a", "b"}, order)

	st.Remove("a")
	_, ok := st.Get("a")
	assert.False(t, ok)
	b, ok := st.Get("b")
	require.True(t, ok)
	assert.Equal(t, BottomRight, b.Anchor)
}

func TestGridFollowsCamera(t *testing.T) {
	a := New().AddPlugins(InfiniteGridPlugin{})
	g := SpawnInfiniteGrid(a.World, scene.DefaultGridSettings())
	assert.Same(t, a.World.Scene.Root, g.Node.Parent)

	cam := scene.NewCamera(1, 1, 0.1, 100)
	cam.SetTransform(core.TransformFromXYZ(26, 4, -14))
	a.World.Scene.SetCamera(cam)

	a.RunStage(Update)
	assert.Equal(t, float32(30), g.Center().X)
	assert.Equal(t, float32(-10), g.Center().Z)
}

func TestWindowResolutionAspect(t *testing.T) {
	assert.InDelta(t, 16.0/9.0, WindowResolution{}.AspectRatio(), 1e-6)
	assert.InDelta(t, 1280.0/720.0, WindowResolution{Width: 1280, Height: 720}.AspectRatio(), 1e-6)
}

func TestAnchorPlace(t *testing.T) {
	tests := []struct {
		anchor Anchor
		x, y   float32
	}{
		{TopLeft, 4, 4},
		{TopRight, 1280 - 100 - 4, 4},
		{BottomLeft, 4, 720 - 30 - 4},
		{BottomRight, 1280 - 100 - 4, 720 - 30 - 4},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Place(100, 30, 1280, 720, 4)
		assert.Equal(t, tt.x, x)
		assert.Equal(t, tt.y, y)
	}
}

func TestExitResource(t *testing.T) {
	a := New()
	assert.False(t, a.ExitRequested())
	world.MustResource[AppExit](a.World).Requested = true
	assert.True(t, a.ExitRequested())
}
