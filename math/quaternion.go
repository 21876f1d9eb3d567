package math

import "math"

// Quaternion is a rotation. q.Mul(r) applies r first, in q's local frame, so
// `rot = rot.Mul(delta)` turns an object about its own axes.
type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	c := float32(math.Cos(float64(halfAngle)))

	axis = axis.Normalize()
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// QuaternionRotationX rotates by angle radians about +X (pitch).
func QuaternionRotationX(angle float32) Quaternion {
	s, c := math.Sincos(float64(angle) / 2)
	return Quaternion{X: float32(s), W: float32(c)}
}

// QuaternionRotationY rotates by angle radians about +Y (yaw).
func QuaternionRotationY(angle float32) Quaternion {
	s, c := math.Sincos(float64(angle) / 2)
	return Quaternion{Y: float32(s), W: float32(c)}
}

// QuaternionFromRotationArc returns the shortest rotation taking the unit
// vector from onto the unit vector to.
func QuaternionFromRotationArc(from, to Vec3) Quaternion {
	dot := from.Dot(to)
	switch {
	case dot > 1-1e-6:
		return QuaternionIdentity()
	case dot < -1+1e-6:
		return QuaternionFromAxisAngle(from.anyOrthonormal(), math.Pi)
	}
	c := from.Cross(to)
	return Quaternion{X: c.X, Y: c.Y, Z: c.Z, W: 1 + dot}.Normalize()
}

// QuaternionLookTo returns the rotation whose local Vec3Forward points along
// dir with local +Y as close to up as possible.
func QuaternionLookTo(dir, up Vec3) Quaternion {
	back := dir.Negate().Normalize()
	right := up.Cross(back).Normalize()
	upNew := back.Cross(right)
	return quaternionFromBasis(right, upNew, back)
}

// quaternionFromBasis converts the rotation with columns (x, y, z).
func quaternionFromBasis(x, y, z Vec3) Quaternion {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q Quaternion
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := float32(0.5 / math.Sqrt(float64(trace+1)))
		q.W = 0.25 / s
		q.X = (m21 - m12) * s
		q.Y = (m02 - m20) * s
		q.Z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2 * float32(math.Sqrt(float64(1+m00-m11-m22)))
		q.W = (m21 - m12) / s
		q.X = 0.25 * s
		q.Y = (m01 + m10) / s
		q.Z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * float32(math.Sqrt(float64(1+m11-m00-m22)))
		q.W = (m02 - m20) / s
		q.X = (m01 + m10) / s
		q.Y = 0.25 * s
		q.Z = (m12 + m21) / s
	default:
		s := 2 * float32(math.Sqrt(float64(1+m22-m00-m11)))
		q.W = (m10 - m01) / s
		q.X = (m02 + m20) / s
		q.Y = (m12 + m21) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Normalize() Quaternion {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length > 0 {
		invLength := 1 / length
		return Quaternion{
			X: q.X * invLength,
			Y: q.Y * invLength,
			Z: q.Z * invLength,
			W: q.W * invLength,
		}
	}
	return q
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qVec := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qVec.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(qVec.Cross(t))
}

// ApproxEqual treats q and -q as the same rotation.
func (q Quaternion) ApproxEqual(other Quaternion, eps float32) bool {
	dot := q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
	return absf(absf(dot)-1) <= eps
}

func (q Quaternion) ToMat4() Mat4 {
	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}
