package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cube-playground/app"
	"cube-playground/core"
	"cube-playground/gizmo"
	"cube-playground/input"
	"cube-playground/renderer"
	"cube-playground/world"
)

const (
	textScale  = 1.5
	textMargin = 8
)

func run(ctx context.Context, a *app.App, cfg core.WindowConfig) error {
	w := a.World

	// The window stays hidden until the first frame is on screen.
	cfg.Visible = false
	cfg.Samples = world.MustResource[app.Msaa](w).Samples

	window, err := core.NewWindow(cfg)
	if err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window)
	if err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	defer engine.Destroy()

	bindInput(window, w)

	res := world.MustResource[app.WindowResolution](w)
	res.Width, res.Height = window.GetFramebufferSize()

	a.Startup()
	Logger().Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("msaa", cfg.Samples))

	shown := false
	warnedNoCamera := false
	for !window.ShouldClose() && !a.ExitRequested() {
		if err := ctx.Err(); err != nil {
			Logger().Info("context done, closing", zap.Error(err))
			break
		}
		window.PollEvents()
		w.Time.Advance(time.Now())
		syncResolution(window, engine, w)

		a.RunStage(app.Update)

		err := engine.Render(w.Scene, world.MustResource[app.ClearColor](w).Color)
		if errors.Is(err, renderer.ErrNoCamera) && !warnedNoCamera {
			Logger().Warn("nothing to draw: scene has no camera")
			warnedNoCamera = true
		}
		store := world.MustResource[gizmo.Store](w)
		engine.DrawGizmos(store)
		store.ClearAll()

		a.RunStage(app.Overlay)
		drawScreenText(engine, world.MustResource[app.ScreenText](w))

		engine.Present()
		input.EndFrame(w)

		if !shown {
			window.Show()
			shown = true
		}
	}

	objects, vertices, lines := engine.DrawStats()
	Logger().Info("window closing",
		zap.Uint64("frames", w.Time.Frame),
		zap.Int("objects", objects),
		zap.Int("vertices", vertices),
		zap.Int("gizmo_lines", lines))
	return nil
}

// bindInput routes window callbacks into the world's input resources.
func bindInput(window *core.Window, w *world.World) {
	keys := world.MustResource[input.ButtonInput[input.KeyCode]](w)
	motion := input.NewMotionTracker(world.MustResource[input.Events[input.MouseMotion]](w))

	window.SetKeyCallback(func(key int, pressed bool) {
		k := input.KeyFromGLFW(key)
		if k == input.KeyUnknown {
			return
		}
		if pressed {
			keys.Press(k)
		} else {
			keys.Release(k)
		}
	})
	window.SetCursorPosCallback(motion.CursorMoved)
	window.SetFocusCallback(func(focused bool) {
		if !focused {
			keys.ReleaseAll()
		}
		motion.Reset()
	})
}

func syncResolution(window *core.Window, engine *renderer.RenderEngine, w *world.World) {
	res := world.MustResource[app.WindowResolution](w)
	width, height := window.GetFramebufferSize()
	if width == res.Width && height == res.Height {
		return
	}
	res.Width, res.Height = width, height
	engine.Resize(width, height)
	if cam := w.Scene.Camera; cam != nil {
		cam.UpdateAspectRatio(float32(width), float32(height))
	}
	Logger().Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))
}

func drawScreenText(engine *renderer.RenderEngine, text *app.ScreenText) {
	vpW, vpH := engine.Viewport()
	text.Each(func(_ string, block app.TextBlock) {
		if len(block.Lines) == 0 {
			return
		}
		s := strings.Join(block.Lines, "\n")
		tw, th := engine.MeasureText(s, textScale)
		x, y := block.Anchor.Place(tw, th, float32(vpW), float32(vpH), textMargin)
		engine.DrawText(s, x, y, textScale, block.Color)
	})
}
