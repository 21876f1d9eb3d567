package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

// EnabledButtons selects which title-bar buttons the window offers.
type EnabledButtons struct {
	Minimize bool
	Maximize bool
	Close    bool
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
	Centered  bool
	Visible   bool // false keeps the window hidden until Show
	Samples   int  // MSAA samples, 0 = off
	Buttons   EnabledButtons
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Playground",
		Resizable: true,
		VSync:     true,
		Centered:  true,
		Visible:   true,
		Buttons:   EnabledButtons{Minimize: true, Maximize: true, Close: true},
	}
}

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, config.Samples)
	glfw.WindowHint(glfw.Visible, boolToInt(config.Visible))
	// GLFW has no per-button switches: a fixed-size window loses maximize,
	// minimize and close stay with the window manager.
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable && config.Buttons.Maximize))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if config.Centered {
		if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
			mode := monitor.GetVideoMode()
			mx, my := monitor.GetPos()
			x, y := centeredPos(mx, my, mode.Width, mode.Height, config.Width, config.Height)
			handle.SetPos(x, y)
		}
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

// centeredPos returns the top-left corner that centers a w×h window on a
// monitor whose work area starts at (mx, my).
func centeredPos(mx, my, monitorW, monitorH, w, h int) (int, int) {
	return mx + (monitorW-w)/2, my + (monitorH-h)/2
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Show makes a window created with Visible=false appear.
func (w *Window) Show() {
	w.Handle.Show()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

// KeyCallback receives raw GLFW key codes; repeats are reported as pressed.
type KeyCallback func(key int, pressed bool)

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			cb(int(key), true)
		case glfw.Release:
			cb(int(key), false)
		}
	})
}

// CursorPosCallback receives the cursor position in screen coordinates.
type CursorPosCallback func(x, y float64)

func (w *Window) SetCursorPosCallback(cb CursorPosCallback) {
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

// FocusCallback fires when the window gains or loses input focus.
type FocusCallback func(focused bool)

func (w *Window) SetFocusCallback(cb FocusCallback) {
	w.Handle.SetFocusCallback(func(win *glfw.Window, focused bool) {
		cb(focused)
	})
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

const (
	KeyA      = int(glfw.KeyA)
	KeyD      = int(glfw.KeyD)
	KeyS      = int(glfw.KeyS)
	KeyW      = int(glfw.KeyW)
	KeyEscape = int(glfw.KeyEscape)
	KeyRight  = int(glfw.KeyRight)
	KeyLeft   = int(glfw.KeyLeft)
	KeyDown   = int(glfw.KeyDown)
	KeyUp     = int(glfw.KeyUp)
	KeyF3     = int(glfw.KeyF3)
)
