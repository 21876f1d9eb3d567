package core

import (
	"image/color"

	"cube-playground/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorNone   = Color{0, 0, 0, 0}
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// ColorRGB8 builds an opaque color from 0-255 channels.
func ColorRGB8(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

// ColorFrom converts any image/color value (for example a colornames entry).
func ColorFrom(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float32(r) / 0xffff,
		G: float32(g) / 0xffff,
		B: float32(b) / 0xffff,
		A: float32(a) / 0xffff,
	}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// TransformFromXYZ is an unrotated, unscaled transform at (x, y, z).
func TransformFromXYZ(x, y, z float32) Transform {
	t := NewTransform()
	t.Position = math.NewVec3(x, y, z)
	return t
}

// LookingAt returns t rotated so that its forward axis points at target.
func (t Transform) LookingAt(target, up math.Vec3) Transform {
	dir := target.Sub(t.Position)
	if dir.LengthSqr() == 0 {
		return t
	}
	t.Rotation = math.QuaternionLookTo(dir.Normalize(), up)
	return t
}

func (t Transform) GetMatrix() math.Mat4 {
	scale := math.Mat4Scale(t.Scale)
	rotation := t.Rotation.ToMat4()
	translation := math.Mat4Translation(t.Position)
	return scale.Mul(rotation).Mul(translation)
}

// GetForward is the local -Z axis in world space.
func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Forward)
}
