package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
	assert.Equal(t, Vec3Front.Negate(), Vec3Forward)
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), normalized)
	assert.InDelta(t, 1, normalized.Length(), eps)

	// zero stays zero instead of producing NaNs
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	result := NewVec4(0, 0, 0, 1).MulMat(m)
	assert.Equal(t, translation, result.ToVec3())
}

func TestMat4IdentityMul(t *testing.T) {
	m := Mat4Translation(NewVec3(4, 5, 6)).Mul(Mat4Scale(NewVec3(2, 2, 2)))
	assert.Equal(t, m, m.Mul(Mat4Identity()))
	assert.Equal(t, m, Mat4Identity().Mul(m))
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degrees about +Y takes +X to -Z
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	assert.True(t, q.RotateVector(Vec3Right).ApproxEqual(NewVec3(0, 0, -1), eps))

	assert.True(t, QuaternionRotationY(float32(math.Pi/2)).ApproxEqual(q, 1e-5))
	assert.True(t, QuaternionRotationX(0.3).ApproxEqual(QuaternionFromAxisAngle(Vec3Right, 0.3), 1e-5))
}

func TestQuaternionMulIsLocal(t *testing.T) {
	yaw := QuaternionRotationY(float32(math.Pi / 2))
	pitch := QuaternionRotationX(float32(math.Pi / 2))

	// pitch applied in the yawed frame: the local +Y ends up on the local
	// forward axis of the yawed frame.
	q := yaw.Mul(pitch)
	got := q.RotateVector(Vec3Up)
	want := yaw.RotateVector(Vec3Front)
	assert.True(t, got.ApproxEqual(want, eps), "got %v want %v", got, want)
}

func TestQuaternionFromRotationArc(t *testing.T) {
	cases := []struct {
		name     string
		from, to Vec3
	}{
		{"x to z", Vec3Right, Vec3Front},
		{"x to diagonal", Vec3Right, NewVec3(1, 1, 1).Normalize()},
		{"same", Vec3Up, Vec3Up},
		{"opposite", Vec3Right, Vec3Right.Negate()},
		{"opposite z", Vec3Front, Vec3Forward},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := QuaternionFromRotationArc(tc.from, tc.to)
			got := q.RotateVector(tc.from)
			assert.True(t, got.ApproxEqual(tc.to, eps), "got %v want %v", got, tc.to)
		})
	}
}

func TestQuaternionLookTo(t *testing.T) {
	eye := NewVec3(4, 4, 4)
	dir := Vec3Zero.Sub(eye).Normalize()
	q := QuaternionLookTo(dir, Vec3Up)

	assert.True(t, q.RotateVector(Vec3Forward).ApproxEqual(dir, eps))
	// right stays horizontal
	assert.InDelta(t, 0, q.RotateVector(Vec3Right).Y, eps)
	assert.Greater(t, q.RotateVector(Vec3Up).Y, float32(0))

	assert.True(t, QuaternionLookTo(Vec3Forward, Vec3Up).ApproxEqual(QuaternionIdentity(), 1e-5))
}

func TestQuaternionToMat4MatchesRotateVector(t *testing.T) {
	q := QuaternionRotationY(0.7).Mul(QuaternionRotationX(-0.4))
	v := NewVec3(0.3, -1.2, 2)

	viaMatrix := q.ToMat4().MulVec3(v)
	assert.True(t, viaMatrix.ApproxEqual(q.RotateVector(v), eps))
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(Radians(70.53), 16.0/9.0, 0.1, 1000)

	near := m.MulVec3(NewVec3(0, 0, -0.1))
	far := m.MulVec3(NewVec3(0, 0, -1000))
	assert.InDelta(t, -1, near.Z, eps)
	assert.InDelta(t, 1, far.Z, 1e-3)
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), 1e-6)
	assert.InDelta(t, 1.231, Radians(70.53), 1e-3)
}

func BenchmarkQuaternionMul(b *testing.B) {
	q1 := QuaternionRotationY(0.1)
	q2 := QuaternionRotationX(0.2)

	for i := 0; i < b.N; i++ {
		_ = q1.Mul(q2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
