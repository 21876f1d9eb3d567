package scene

import (
	"cube-playground/core"
	"cube-playground/math"
)

// CreateCube generates an axis-aligned cube centred on the origin.
func CreateCube(size float32) *Mesh {
	return CreateCuboid(size, size, size)
}

// CreateCuboid generates a box with the given full extents, four vertices per
// face so every face gets a flat normal.
func CreateCuboid(sx, sy, sz float32) *Mesh {
	x, y, z := sx/2, sy/2, sz/2

	type face struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}
	faces := []face{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: -z}, {X: -x, Y: y, Z: -z}, {X: x, Y: y, Z: -z}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -x, Y: y, Z: z}, {X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: -y, Z: z}, {X: -x, Y: -y, Z: z}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: x, Y: -y, Z: z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: y, Z: z}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: z}, {X: -x, Y: y, Z: z}, {X: -x, Y: y, Z: -z}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, p := range f.corners {
			vertices = append(vertices, core.Vertex{Position: p, Normal: f.normal, UV: uvs[i], Color: core.ColorWhite})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cuboid", vertices, indices)
}
