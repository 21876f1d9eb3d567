package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-playground/app"
	"cube-playground/world"
)

func TestDiagnosticHistoryWraps(t *testing.T) {
	d := NewDiagnostic("x", "", 3)
	_, ok := d.Average()
	assert.False(t, ok)

	for _, v := range []float64{1, 2, 3, 4, 5} {
		d.Add(v)
	}
	assert.Equal(t, []float64{3, 4, 5}, d.History())

	avg, ok := d.Average()
	require.True(t, ok)
	assert.InDelta(t, 4, avg, 1e-9)

	last, _ := d.Value()
	assert.Equal(t, 5.0, last)
}

func TestDiagnosticSmoothing(t *testing.T) {
	d := NewDiagnostic("x", "", 3) // factor 0.5
	d.Add(10)
	v, _ := d.Smoothed()
	assert.Equal(t, 10.0, v, "first value seeds the average")

	d.Add(20)
	v, _ = d.Smoothed()
	assert.InDelta(t, 15, v, 1e-9)

	d.Add(20)
	v, _ = d.Smoothed()
	assert.InDelta(t, 17.5, v, 1e-9)
}

func TestFrameTimeUpdate(t *testing.T) {
	ft := NewFrameTime(DefaultHistory)
	ft.Update(0)
	assert.Equal(t, uint64(1), ft.FrameCount)
	_, ok := ft.FPS.Value()
	assert.False(t, ok, "zero-length frames are not measured")

	ft.Update(0.02)
	fps, _ := ft.FPS.Value()
	ms, _ := ft.FrameTime.Value()
	assert.InDelta(t, 50, fps, 1e-3)
	assert.InDelta(t, 20, ms, 1e-3)
	assert.Equal(t, uint64(2), ft.FrameCount)
}

func TestOverlayRefreshInterval(t *testing.T) {
	ft := NewFrameTime(DefaultHistory)
	o := NewOverlay(1)

	assert.True(t, o.Refresh(ft, 0), "first refresh always writes")
	assert.Equal(t, []string{"-- fps", "-- ms/frame"}, o.Lines())

	ft.Update(0.016)
	assert.False(t, o.Refresh(ft, 0.5))
	assert.True(t, o.Refresh(ft, 0.5))
	assert.Equal(t, []string{"62 fps", "16.00 ms/frame"}, o.Lines())
	assert.Equal(t, "62 fps\n16.00 ms/frame\n", o.Text())
}

func TestPluginPublishesScreenText(t *testing.T) {
	a := app.New().AddPlugins(Plugin{})
	a.World.Time.Delta = 0.025

	a.RunStage(app.Update)

	ft := world.MustResource[FrameTime](a.World)
	assert.Equal(t, uint64(1), ft.FrameCount)
	_, ok := world.MustResource[app.ScreenText](a.World).Get(overlayBlock)
	assert.False(t, ok, "overlay text is written in the overlay stage")

	a.RunStage(app.Overlay)
	block, ok := world.MustResource[app.ScreenText](a.World).Get(overlayBlock)
	require.True(t, ok)
	assert.Equal(t, app.BottomRight, block.Anchor)
	assert.Equal(t, []string{"40 fps", "25.00 ms/frame"}, block.Lines)
}
