// Package renderer draws a scene, gizmo lines and screen text through the
// OpenGL backend.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cube-playground/core"
	"cube-playground/gizmo"
	"cube-playground/internal/opengl"
	"cube-playground/math"
	"cube-playground/scene"
)

var ErrNoCamera = errors.New("renderer: scene has no camera")

// textCmd is a queued DrawText call, flushed in Present().
type textCmd struct {
	text  string
	x, y  float32
	scale float32
	color core.Color
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window

	// Per-frame stats (populated during Render)
	lastObjects  int
	lastVertices int
	lastLines    int

	viewProj  math.Mat4
	lineVerts []opengl.LineVertex

	// Queued text commands, flushed in Present() after everything else
	textQueue []textCmd
}

func NewRenderEngine(window *core.Window) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	w, h := window.GetFramebufferSize()
	glRenderer.SetViewport(w, h)

	Logger().Info("render engine initialized", zap.Int("width", w), zap.Int("height", h))
	return &RenderEngine{
		gl:       glRenderer,
		window:   window,
		viewProj: math.Mat4Identity(),
	}, nil
}

// Render clears the frame to clear and draws every visible node of s.
func (re *RenderEngine) Render(s *scene.Scene, clear core.Color) error {
	if s == nil || s.Camera == nil {
		return ErrNoCamera
	}
	cam := s.Camera

	params := opengl.FrameParams{
		Clear:      clear,
		CameraPos:  cam.Position(),
		LightDir:   math.NewVec3(0.5, -1, -0.5),
		LightColor: core.ColorWhite,
		LightPower: 0.8,
		Ambient:    s.Ambient,
	}
	if sun := s.DirectionalLight(); sun != nil {
		params.LightDir = sun.Direction
		params.LightColor = sun.Color
		params.LightPower = sun.Intensity
	}
	if cam.Fog != nil {
		params.FogEnabled = true
		params.FogColor = cam.Fog.Color
		params.FogStart = cam.Fog.Start
		params.FogEnd = cam.Fog.End
	}
	re.gl.BeginFrame(params)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()
	re.viewProj = view.Mul(proj)

	objects, vertices := 0, 0
	for _, node := range s.GetVisibleNodes() {
		model := node.GetWorldMatrix()
		mvp := model.Mul(re.viewProj)
		re.gl.DrawMesh(node.Mesh, mvp, model)

		objects++
		vertices += len(node.Mesh.Vertices)
	}
	re.lastObjects = objects
	re.lastVertices = vertices
	re.lastLines = 0
	return nil
}

// DrawGizmos draws the queued lines of every enabled group with that group's
// line width and depth bias. Call after Render.
func (re *RenderEngine) DrawGizmos(store *gizmo.Store) {
	store.Each(func(_ string, cfg gizmo.Config, lines []gizmo.Line) {
		if !cfg.Enabled || len(lines) == 0 {
			return
		}
		re.lineVerts = re.lineVerts[:0]
		for _, l := range lines {
			re.lineVerts = append(re.lineVerts,
				opengl.LineVertex{Position: l.Start, Color: l.Color},
				opengl.LineVertex{Position: l.End, Color: l.Color})
		}
		re.gl.DrawLines(re.lineVerts, re.viewProj, cfg.LineWidth, cfg.DepthBias)
		re.lastLines += len(lines)
	})
}

// DrawText queues a text string to be drawn at screen position (x, y) in the
// next Present() call. scale=1 draws the 7x13 font at its native size.
func (re *RenderEngine) DrawText(text string, x, y, scale float32, color core.Color) {
	re.textQueue = append(re.textQueue, textCmd{
		text:  text,
		x:     x,
		y:     y,
		scale: scale,
		color: color,
	})
}

// MeasureText returns the pixel size of text at scale.
func (re *RenderEngine) MeasureText(text string, scale float32) (w, h float32) {
	return re.gl.MeasureText(text, scale)
}

// Viewport returns the framebuffer size being drawn to.
func (re *RenderEngine) Viewport() (width, height int) {
	return re.gl.Viewport()
}

// Present flushes queued text on top of the frame and swaps buffers.
func (re *RenderEngine) Present() {
	for _, cmd := range re.textQueue {
		re.gl.DrawText(cmd.text, cmd.x, cmd.y, cmd.scale, cmd.color)
	}
	re.textQueue = re.textQueue[:0]
	re.window.SwapBuffers()
}

func (re *RenderEngine) Resize(width, height int) {
	re.gl.SetViewport(width, height)
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent frame.
func (re *RenderEngine) DrawStats() (objects, vertices, lines int) {
	return re.lastObjects, re.lastVertices, re.lastLines
}
