package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"cube-playground/core"
	"cube-playground/math"
	"cube-playground/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
	Version    uint32 // mesh version the buffers were filled from
}

// FrameParams is the per-frame lighting and fog state of the mesh pass.
type FrameParams struct {
	Clear      core.Color
	CameraPos  math.Vec3
	LightDir   math.Vec3
	LightColor core.Color
	LightPower float32
	Ambient    core.Color
	FogEnabled bool
	FogColor   core.Color
	FogStart   float32
	FogEnd     float32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	mvpLoc   int32
	modelLoc int32

	lightDirLoc       int32
	lightColorLoc     int32
	lightIntensityLoc int32
	ambientColorLoc   int32
	cameraPosLoc      int32

	matAlbedoLoc int32
	unlitLoc     int32

	fogEnabledLoc int32
	fogColorLoc   int32
	fogStartLoc   int32
	fogEndLoc     int32

	viewportW int32
	viewportH int32

	lines *LineRenderer
	text  *TextRenderer

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// vertex shader: MVP + model transform, world-space position and normal to fragment
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;
uniform mat4 model;

out vec4 fragColor;
out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    gl_Position  = mvp * vec4(inPosition, 1.0);
    fragColor    = inColor;
    fragNormal   = mat3(model) * inNormal;
    fragWorldPos = worldPos.xyz;
}
` + "\x00"

// fragment shader: Lambert directional light + ambient, linear distance fog
const fragSrc = `
#version 410 core
in vec4 fragColor;
in vec3 fragNormal;
in vec3 fragWorldPos;

out vec4 outColor;

uniform vec3  lightDir;
uniform vec3  lightColor;
uniform float lightIntensity;
uniform vec3  ambientColor;
uniform vec3  cameraPos;

uniform vec4 matAlbedo;
uniform bool unlit;

uniform bool  fogEnabled;
uniform vec4  fogColor;
uniform float fogStart;
uniform float fogEnd;

void main() {
    vec4 base = fragColor * matAlbedo;
    vec3 color = base.rgb;
    if (!unlit) {
        vec3  N    = normalize(fragNormal);
        float diff = max(dot(N, -normalize(lightDir)), 0.0);
        color = base.rgb * (ambientColor + lightColor * lightIntensity * diff);
    }
    float alpha = base.a;
    if (fogEnabled) {
        float d   = distance(fragWorldPos, cameraPos);
        float vis = clamp((fogEnd - d) / max(fogEnd - fogStart, 1e-4), 0.0, 1.0);
        color = mix(fogColor.rgb, color, vis);
        alpha = mix(fogColor.a, alpha, vis);
    }
    outColor = vec4(color, alpha);
}
` + "\x00"

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	Logger().Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	lines, err := newLineRenderer()
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("line shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.MULTISAMPLE)

	r := &Renderer{
		program: prog,

		mvpLoc:   uniform(prog, "mvp"),
		modelLoc: uniform(prog, "model"),

		lightDirLoc:       uniform(prog, "lightDir"),
		lightColorLoc:     uniform(prog, "lightColor"),
		lightIntensityLoc: uniform(prog, "lightIntensity"),
		ambientColorLoc:   uniform(prog, "ambientColor"),
		cameraPosLoc:      uniform(prog, "cameraPos"),

		matAlbedoLoc: uniform(prog, "matAlbedo"),
		unlitLoc:     uniform(prog, "unlit"),

		fogEnabledLoc: uniform(prog, "fogEnabled"),
		fogColorLoc:   uniform(prog, "fogColor"),
		fogStartLoc:   uniform(prog, "fogStart"),
		fogEndLoc:     uniform(prog, "fogEnd"),

		lines:     lines,
		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}
	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Viewport() (width, height int) {
	return int(r.viewportW), int(r.viewportH)
}

// BeginFrame clears the framebuffer and sets the per-frame uniforms.
func (r *Renderer) BeginFrame(p FrameParams) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DepthMask(true)
	gl.ClearColor(p.Clear.R, p.Clear.G, p.Clear.B, p.Clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.ambientColorLoc, p.Ambient.R, p.Ambient.G, p.Ambient.B)
	gl.Uniform3f(r.cameraPosLoc, p.CameraPos.X, p.CameraPos.Y, p.CameraPos.Z)

	dir := p.LightDir.Normalize()
	gl.Uniform3f(r.lightDirLoc, dir.X, dir.Y, dir.Z)
	gl.Uniform3f(r.lightColorLoc, p.LightColor.R, p.LightColor.G, p.LightColor.B)
	gl.Uniform1f(r.lightIntensityLoc, p.LightPower)

	if p.FogEnabled {
		gl.Uniform1i(r.fogEnabledLoc, 1)
		gl.Uniform4f(r.fogColorLoc, p.FogColor.R, p.FogColor.G, p.FogColor.B, p.FogColor.A)
		gl.Uniform1f(r.fogStartLoc, p.FogStart)
		gl.Uniform1f(r.fogEndLoc, p.FogEnd)
	} else {
		gl.Uniform1i(r.fogEnabledLoc, 0)
	}
}

// DrawMesh draws a mesh with the given MVP and model matrices.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	// Mat4 is [4][4]float32 with translation in row 3, which GL reads as
	// column-major: pass directly (transpose=false).
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))

	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	gl.Uniform4f(r.matAlbedoLoc, mat.Albedo.R, mat.Albedo.G, mat.Albedo.B, mat.Albedo.A)
	if mat.Unlit {
		gl.Uniform1i(r.unlitLoc, 1)
	} else {
		gl.Uniform1i(r.unlitLoc, 0)
	}

	primitive := uint32(gl.TRIANGLES)
	if mesh.DrawMode == scene.DrawLines {
		primitive = gl.LINES
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitive, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// DrawLines draws world-space line segments on top of the scene pass.
func (r *Renderer) DrawLines(verts []LineVertex, viewProj math.Mat4, width, depthBias float32) {
	r.lines.draw(verts, viewProj, width, depthBias, r.viewportW, r.viewportH)
}

// DrawText renders a string at screen-space position (x, y), y pointing
// down, with pixel scale. Lazily creates the TextRenderer on first call.
func (r *Renderer) DrawText(text string, x, y, scale float32, color core.Color) {
	if r.text == nil {
		tr, err := newTextRenderer()
		if err != nil {
			Logger().Error("text renderer init failed", zap.Error(err))
			return
		}
		r.text = tr
	}
	r.text.draw(text, x, y, scale, color, float32(r.viewportW), float32(r.viewportH))
}

// MeasureText returns the pixel size DrawText would cover.
func (r *Renderer) MeasureText(text string, scale float32) (w, h float32) {
	return atlas().Measure(text, scale)
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		freeMesh(gpu)
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	r.lines.destroy()
	if r.text != nil {
		r.text.destroy()
	}
	gl.DeleteProgram(r.program)
}

func freeMesh(gpu *GPUMesh) {
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.HasIndices {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
}

// ensureUploaded uploads vertex/index data on first use and again whenever
// the mesh version moves on.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		if gpu.Version == mesh.Version {
			return gpu
		}
		r.ReleaseMesh(mesh)
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
		Version:    mesh.Version,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func newProgram(vertSrc, fragSrc string, extra ...shaderStage) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}
	shaders := []uint32{vert, frag}
	for _, st := range extra {
		s, err := compileShader(st.src, st.kind)
		if err != nil {
			for _, sh := range shaders {
				gl.DeleteShader(sh)
			}
			return 0, fmt.Errorf("%s: %w", st.name, err)
		}
		shaders = append(shaders, s)
	}

	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)
	for _, s := range shaders {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

type shaderStage struct {
	name string
	kind uint32
	src  string
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
