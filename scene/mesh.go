package scene

import (
	"cube-playground/core"
)

// DrawMode controls the OpenGL primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota // gl.TRIANGLES (default)
	DrawLines                     // gl.LINES, pairs of indices form line segments
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	DrawMode DrawMode

	// Material holds surface shading properties. If nil, DefaultMaterial() is used.
	Material *Material

	// Version is bumped whenever the vertex data is replaced so the renderer
	// knows to re-upload.
	Version uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// SetData replaces the geometry and marks the mesh for re-upload.
func (m *Mesh) SetData(vertices []core.Vertex, indices []uint32) {
	m.Vertices = vertices
	m.Indices = indices
	m.Version++
}
