package scene

import (
	"cube-playground/core"
	"cube-playground/math"
)

// Scene manages a collection of nodes and the active camera
type Scene struct {
	Root    *Node
	Camera  *Camera
	Lights  []*Light
	Ambient core.Color
}

// Light types
const (
	LightTypeDirectional = iota
	LightTypePoint
)

// Light represents a light source
type Light struct {
	Type      int
	Position  math.Vec3
	Direction math.Vec3
	Color     core.Color
	Intensity float32
}

// NewDirectionalLight builds a white sun shining along the forward axis of t.
func NewDirectionalLight(t core.Transform) *Light {
	return &Light{
		Type:      LightTypeDirectional,
		Position:  t.Position,
		Direction: t.GetForward(),
		Color:     core.ColorWhite,
		Intensity: 1.0,
	}
}

func NewScene() *Scene {
	return &Scene{
		Root:    NewNode("Root"),
		Lights:  make([]*Light, 0),
		Ambient: core.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// DirectionalLight returns the first directional light, or nil.
func (s *Scene) DirectionalLight() *Light {
	for _, l := range s.Lights {
		if l != nil && l.Type == LightTypeDirectional {
			return l
		}
	}
	return nil
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}
