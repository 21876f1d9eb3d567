package opengl

import (
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"cube-playground/core"
	"cube-playground/internal/glyph"
)

var (
	glyphAtlas     *glyph.Atlas
	glyphAtlasOnce sync.Once
)

func atlas() *glyph.Atlas {
	glyphAtlasOnce.Do(func() { glyphAtlas = glyph.NewAtlas() })
	return glyphAtlas
}

// TextRenderer draws screen-space text from the bitmap font atlas. The atlas
// is sampled with nearest filtering so glyphs stay pixel-sharp at any scale.
type TextRenderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	tex     uint32
	cap     int // VBO capacity in floats

	screenLoc int32
	colorLoc  int32
	atlasLoc  int32

	buf []float32
}

// vertex shader: pixel coordinates (y down) to NDC
const textVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPos;
layout(location = 1) in vec2 inUV;

uniform vec2 screen;

out vec2 fragUV;

void main() {
    vec2 ndc = vec2(inPos.x / screen.x * 2.0 - 1.0, 1.0 - inPos.y / screen.y * 2.0);
    gl_Position = vec4(ndc, 0.0, 1.0);
    fragUV = inUV;
}
` + "\x00"

const textFragSrc = `
#version 410 core
in vec2 fragUV;

uniform sampler2D atlas;
uniform vec4 textColor;

out vec4 outColor;

void main() {
    float a = texture(atlas, fragUV).r;
    if (a < 0.5) {
        discard;
    }
    outColor = vec4(textColor.rgb, textColor.a * a);
}
` + "\x00"

func newTextRenderer() (*TextRenderer, error) {
	prog, err := newProgram(textVertSrc, textFragSrc)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{
		program:   prog,
		screenLoc: uniform(prog, "screen"),
		colorLoc:  uniform(prog, "textColor"),
		atlasLoc:  uniform(prog, "atlas"),
	}

	a := atlas()
	gl.GenTextures(1, &tr.tex)
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8,
		int32(a.Image.Rect.Dx()), int32(a.Image.Rect.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 16, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 16, gl.PtrOffset(8))
	gl.BindVertexArray(0)

	return tr, nil
}

func (tr *TextRenderer) draw(text string, x, y, scale float32, color core.Color, screenW, screenH float32) {
	tr.buf = atlas().Layout(tr.buf[:0], text, x, y, scale)
	if len(tr.buf) == 0 || screenW <= 0 || screenH <= 0 {
		return
	}

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	if len(tr.buf) > tr.cap {
		tr.cap = len(tr.buf) * 2
		gl.BufferData(gl.ARRAY_BUFFER, tr.cap*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(tr.buf)*4, gl.Ptr(tr.buf))

	gl.UseProgram(tr.program)
	gl.Uniform2f(tr.screenLoc, screenW, screenH)
	gl.Uniform4f(tr.colorLoc, color.R, color.G, color.B, color.A)
	gl.Uniform1i(tr.atlasLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tr.buf)/4))

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
}

func (tr *TextRenderer) destroy() {
	gl.DeleteTextures(1, &tr.tex)
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteProgram(tr.program)
}
