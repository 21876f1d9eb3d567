package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"cube-playground/core"
	"cube-playground/math"
)

// LineVertex is one end of a line segment; consecutive pairs form segments.
type LineVertex struct {
	Position math.Vec3
	Color    core.Color
}

// LineRenderer streams line segments into a dynamic VBO every frame and
// widens them into screen-space quads in a geometry shader, since core
// profiles only guarantee one-pixel GL lines.
type LineRenderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	cap     int // VBO capacity in vertices

	viewProjLoc  int32
	depthBiasLoc int32
	viewportLoc  int32
	widthLoc     int32
}

// vertex shader: clip-space position with depth bias. A bias of -1 pulls z
// to the near plane, 1 pushes it to the far plane, 0 leaves it alone.
const lineVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec4 inColor;

uniform mat4  viewProj;
uniform float depthBias;

out vec4 vColor;

void main() {
    vec4 clip = viewProj * vec4(inPosition, 1.0);
    if (depthBias >= 0.0) {
        clip.z += depthBias * (clip.w - clip.z);
    } else {
        clip.z = mix(clip.z, -clip.w, -depthBias);
    }
    gl_Position = clip;
    vColor = inColor;
}
` + "\x00"

// geometry shader: one segment in, one quad lineWidth pixels wide out
const lineGeomSrc = `
#version 410 core
layout(lines) in;
layout(triangle_strip, max_vertices = 4) out;

uniform vec2  viewport;
uniform float lineWidth;

in  vec4 vColor[];
out vec4 gColor;

void main() {
    vec4 p0 = gl_in[0].gl_Position;
    vec4 p1 = gl_in[1].gl_Position;
    vec4 c0 = vColor[0];
    vec4 c1 = vColor[1];

    // clip against the plane just in front of the eye
    const float eps = 1e-4;
    if (p0.w < eps && p1.w < eps) {
        return;
    }
    if (p0.w < eps) {
        float t = (eps - p0.w) / (p1.w - p0.w);
        p0 = mix(p0, p1, t);
        c0 = mix(c0, c1, t);
    } else if (p1.w < eps) {
        float t = (eps - p1.w) / (p0.w - p1.w);
        p1 = mix(p1, p0, t);
        c1 = mix(c1, c0, t);
    }

    vec2 halfVp = viewport * 0.5;
    vec2 s0 = p0.xy / p0.w * halfVp;
    vec2 s1 = p1.xy / p1.w * halfVp;
    vec2 dir = s1 - s0;
    if (dot(dir, dir) < 1e-8) {
        dir = vec2(1.0, 0.0);
    }
    vec2 n = normalize(vec2(-dir.y, dir.x)) * lineWidth * 0.5 / halfVp;

    gl_Position = vec4(p0.xy + n * p0.w, p0.zw); gColor = c0; EmitVertex();
    gl_Position = vec4(p0.xy - n * p0.w, p0.zw); gColor = c0; EmitVertex();
    gl_Position = vec4(p1.xy + n * p1.w, p1.zw); gColor = c1; EmitVertex();
    gl_Position = vec4(p1.xy - n * p1.w, p1.zw); gColor = c1; EmitVertex();
    EndPrimitive();
}
` + "\x00"

const lineFragSrc = `
#version 410 core
in  vec4 gColor;
out vec4 outColor;

void main() {
    outColor = gColor;
}
` + "\x00"

func newLineRenderer() (*LineRenderer, error) {
	prog, err := newProgram(lineVertSrc, lineFragSrc,
		shaderStage{name: "geometry", kind: gl.GEOMETRY_SHADER, src: lineGeomSrc})
	if err != nil {
		return nil, err
	}

	lr := &LineRenderer{
		program:      prog,
		viewProjLoc:  uniform(prog, "viewProj"),
		depthBiasLoc: uniform(prog, "depthBias"),
		viewportLoc:  uniform(prog, "viewport"),
		widthLoc:     uniform(prog, "lineWidth"),
	}

	gl.GenVertexArrays(1, &lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindVertexArray(lr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)

	var v LineVertex
	stride := int32(unsafe.Sizeof(v))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Color))))

	gl.BindVertexArray(0)
	return lr, nil
}

func (lr *LineRenderer) draw(verts []LineVertex, viewProj math.Mat4, width, depthBias float32, vpW, vpH int32) {
	if len(verts) < 2 {
		return
	}
	stride := int(unsafe.Sizeof(LineVertex{}))

	gl.BindVertexArray(lr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if len(verts) > lr.cap {
		lr.cap = len(verts) * 2
		gl.BufferData(gl.ARRAY_BUFFER, lr.cap*stride, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*stride, gl.Ptr(verts))

	gl.UseProgram(lr.program)
	gl.UniformMatrix4fv(lr.viewProjLoc, 1, false, (*float32)(unsafe.Pointer(&viewProj[0][0])))
	gl.Uniform1f(lr.depthBiasLoc, depthBias)
	gl.Uniform2f(lr.viewportLoc, float32(vpW), float32(vpH))
	gl.Uniform1f(lr.widthLoc, width)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	gl.DrawArrays(gl.LINES, 0, int32(len(verts)&^1))

	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (lr *LineRenderer) destroy() {
	gl.DeleteBuffers(1, &lr.vbo)
	gl.DeleteVertexArrays(1, &lr.vao)
	gl.DeleteProgram(lr.program)
}
