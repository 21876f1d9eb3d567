package scene

import (
	"cube-playground/core"
	"cube-playground/math"
)

// Fog is linear distance fog: fully clear up to Start, fully Color from End.
type Fog struct {
	Color core.Color
	Start float32
	End   float32
}

// Visibility returns how much of the surface colour survives at distance d:
// 1 before Start, 0 after End, linear in between.
func (f Fog) Visibility(d float32) float32 {
	if f.End <= f.Start {
		if d < f.Start {
			return 1
		}
		return 0
	}
	v := (f.End - d) / (f.End - f.Start)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// SpatialListener places two ears relative to the camera for positional audio.
type SpatialListener struct {
	LeftEarOffset  math.Vec3
	RightEarOffset math.Vec3
}

// EarPositions returns both ears in world space for a listener at t.
func (l SpatialListener) EarPositions(t core.Transform) (left, right math.Vec3) {
	left = t.Position.Add(t.Rotation.RotateVector(l.LeftEarOffset))
	right = t.Position.Add(t.Rotation.RotateVector(l.RightEarOffset))
	return left, right
}

// Camera represents a perspective view camera
type Camera struct {
	Transform   core.Transform
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	Fog      *Fog
	Listener *SpatialListener

	// Cached matrices
	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Transform:   core.NewTransform(),
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetTransform(t core.Transform) {
	c.Transform = t
	c.dirty = true
}

func (c *Camera) Position() math.Vec3 {
	return c.Transform.Position
}

func (c *Camera) GetViewMatrix() math.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) GetForward() math.Vec3 {
	return c.Transform.GetForward()
}

func (c *Camera) updateMatrices() {
	// inverse of the camera transform: translate back, then undo the rotation
	translation := math.Mat4Translation(c.Transform.Position.Negate())
	rotation := c.Transform.Rotation.Conjugate().ToMat4()
	c.viewMatrix = translation.Mul(rotation)

	c.projectionMatrix = math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)

	c.dirty = false
}
