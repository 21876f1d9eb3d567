package scene

import "cube-playground/core"

// Material describes surface appearance for a mesh: a base colour lit by the
// scene's directional light, or shown as-is when Unlit.
type Material struct {
	Name   string
	Albedo core.Color
	Unlit  bool
}

func DefaultMaterial() *Material {
	return &Material{
		Name:   "Default",
		Albedo: core.ColorWhite,
	}
}

func NewMaterial(name string, albedo core.Color) *Material {
	return &Material{
		Name:   name,
		Albedo: albedo,
	}
}
