package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-playground/app"
	"cube-playground/core"
	"cube-playground/gizmo"
	"cube-playground/input"
	"cube-playground/world"
)

func testWindow() core.WindowConfig {
	cfg := core.DefaultWindowConfig()
	cfg.Width, cfg.Height = 800, 600
	return cfg
}

func TestDefaultPluginsInsertResources(t *testing.T) {
	a := app.New().AddPlugins(DefaultPlugins(testWindow())...)

	_, ok := world.Resource[input.ButtonInput[input.KeyCode]](a.World)
	assert.True(t, ok)
	_, ok = world.Resource[input.Events[input.MouseMotion]](a.World)
	assert.True(t, ok)
	_, ok = world.Resource[gizmo.Store](a.World)
	assert.True(t, ok)
	_, ok = world.Resource[app.ScreenText](a.World)
	assert.True(t, ok)

	res := world.MustResource[app.WindowResolution](a.World)
	assert.Equal(t, 800, res.Width)
	assert.Equal(t, 600, res.Height)
	assert.Equal(t, []string{"platform.CloseOnEscape"}, a.Schedule(app.Update).Names())
}

func TestWindowPluginKeepsUserResources(t *testing.T) {
	a := app.New()
	app.InsertResource(a, app.ClearColor{Color: core.ColorNone})
	app.InsertResource(a, app.Msaa{Samples: 0})
	a.AddPlugins(WindowPlugin{Window: core.WindowConfig{Width: 10, Height: 10, Samples: 4}})

	assert.Equal(t, core.ColorNone, world.MustResource[app.ClearColor](a.World).Color)
	assert.Equal(t, 0, world.MustResource[app.Msaa](a.World).Samples)
}

func TestWindowPluginEscapeOptOut(t *testing.T) {
	a := app.New().AddPlugins(WindowPlugin{Window: testWindow(), KeepOpenOnEscape: true})
	assert.Zero(t, a.Schedule(app.Update).Len())
}

func TestCloseOnEscape(t *testing.T) {
	a := app.New().AddPlugins(DefaultPlugins(testWindow())...)
	keys := world.MustResource[input.ButtonInput[input.KeyCode]](a.World)

	a.RunStage(app.Update)
	require.False(t, a.ExitRequested())

	keys.Press(input.KeyW)
	a.RunStage(app.Update)
	require.False(t, a.ExitRequested())

	keys.Press(input.Escape)
	a.RunStage(app.Update)
	assert.True(t, a.ExitRequested())
}
