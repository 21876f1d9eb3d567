package scene

import (
	stdmath "math"

	"cube-playground/core"
	"cube-playground/math"
)

// GridSettings controls the look of the infinite ground grid.
type GridSettings struct {
	Spacing    float32 // world units between minor lines
	MajorEvery int     // every n-th line is a major line
	HalfCells  int     // lines drawn on each side of the grid centre
	XAxisColor core.Color
	ZAxisColor core.Color
	MinorColor core.Color
	MajorColor core.Color
}

func DefaultGridSettings() GridSettings {
	return GridSettings{
		Spacing:    1,
		MajorEvery: 10,
		HalfCells:  60,
		XAxisColor: core.Color{R: 1.0, G: 0.2, B: 0.2, A: 1},
		ZAxisColor: core.Color{R: 0.2, G: 0.2, B: 1.0, A: 1},
		MinorColor: core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		MajorColor: core.Color{R: 0.25, G: 0.25, B: 0.25, A: 1},
	}
}

// InfiniteGrid is a finite line grid on the XZ plane that re-centres itself
// under the viewer, snapped to the major spacing, so it never runs out. The
// camera fog hides the edge.
type InfiniteGrid struct {
	Settings GridSettings
	Node     *Node

	// grid centre in minor cells
	cellX, cellZ int
}

func NewInfiniteGrid(settings GridSettings) *InfiniteGrid {
	if settings.MajorEvery < 1 {
		settings.MajorEvery = 1
	}
	if settings.HalfCells < 1 {
		settings.HalfCells = 1
	}

	mesh := CreateMeshFromData("InfiniteGrid", nil, nil)
	mesh.DrawMode = DrawLines
	mat := DefaultMaterial()
	mat.Name = "GridMaterial"
	mat.Unlit = true
	mesh.Material = mat

	node := NewNode("InfiniteGrid")
	node.Mesh = mesh

	g := &InfiniteGrid{Settings: settings, Node: node}
	g.rebuild()
	return g
}

// Follow re-centres the grid under pos. It reports whether the geometry was
// rebuilt.
func (g *InfiniteGrid) Follow(pos math.Vec3) bool {
	cx, cz := g.snap(pos.X), g.snap(pos.Z)
	if cx == g.cellX && cz == g.cellZ {
		return false
	}
	g.cellX, g.cellZ = cx, cz
	g.rebuild()
	return true
}

// Center returns the world-space centre of the grid.
func (g *InfiniteGrid) Center() math.Vec3 {
	s := g.Settings.Spacing
	return math.Vec3{X: float32(g.cellX) * s, Z: float32(g.cellZ) * s}
}

func (g *InfiniteGrid) snap(coord float32) int {
	major := float64(g.Settings.Spacing) * float64(g.Settings.MajorEvery)
	return int(stdmath.Round(float64(coord)/major)) * g.Settings.MajorEvery
}

// lineColor picks the colour for the line at world cell index i; axis is the
// colour used when the line lies on a world axis.
func (g *InfiniteGrid) lineColor(i int, axis core.Color) core.Color {
	switch {
	case i == 0:
		return axis
	case i%g.Settings.MajorEvery == 0:
		return g.Settings.MajorColor
	}
	return g.Settings.MinorColor
}

func (g *InfiniteGrid) rebuild() {
	st := g.Settings
	n := st.HalfCells
	half := float32(n) * st.Spacing
	origin := g.Center()

	vertices := make([]core.Vertex, 0, (2*n+1)*4)
	indices := make([]uint32, 0, (2*n+1)*4)
	addLine := func(a, b math.Vec3, c core.Color) {
		base := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: a, Normal: math.Vec3Up, Color: c},
			core.Vertex{Position: b, Normal: math.Vec3Up, Color: c},
		)
		indices = append(indices, base, base+1)
	}

	for i := -n; i <= n; i++ {
		// lines parallel to Z; the one at x=0 is the Z axis
		x := origin.X + float32(i)*st.Spacing
		addLine(
			math.Vec3{X: x, Z: origin.Z - half},
			math.Vec3{X: x, Z: origin.Z + half},
			g.lineColor(g.cellX+i, st.ZAxisColor),
		)
		// lines parallel to X; the one at z=0 is the X axis
		z := origin.Z + float32(i)*st.Spacing
		addLine(
			math.Vec3{X: origin.X - half, Z: z},
			math.Vec3{X: origin.X + half, Z: z},
			g.lineColor(g.cellZ+i, st.XAxisColor),
		)
	}

	g.Node.Mesh.SetData(vertices, indices)
}
