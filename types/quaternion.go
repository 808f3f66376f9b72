package types

import "github.com/chewxy/math32"

// Quat is a rotation quaternion with vector part V and scalar part W.
type Quat struct {
	V Vec3
	W float32
}

// Create identity quaternion.
func QuatIdent() Quat {
	return Quat{
		V: Vec3{},
		W: 1.0,
	}
}

// Create a quaternion from an axis vector and an angle. The axis is expected
// to be of unit length.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin := math32.Sin(angle * 0.5)
	cos := math32.Cos(angle * 0.5)
	return Quat{
		V: axis.Mul(sin),
		W: cos,
	}
}

// Create the shortest-arc rotation that maps direction from onto direction to.
// Parallel inputs yield the identity rotation.
func QuatRotationBetween(from, to Vec3) Quat {
	axis := from.Cross(to).Normalize()
	if axis == (Vec3{}) {
		return QuatIdent()
	}
	return QuatFromAxisAngle(axis, from.Angle(to))
}

// Rotates a vector by the rotation this quaternion represents. The vector is
// embedded as a pure quaternion and conjugated: q * (0, v) * q^-1.
func (q1 Quat) Rotate(v Vec3) Vec3 {
	return q1.Mul(Quat{V: v}).Mul(q1.Conjugate()).V
}

// Multiplies two quaternions. This can be seen as a rotation. Note that
// Multiplication is NOT commutative, meaning q1.Mul(q2) does not necessarily
// equal q2.Mul(q1).
func (q1 Quat) Mul(q2 Quat) Quat {
	return Quat{
		q1.V.Cross(q2.V).Add(q2.V.Mul(q1.W)).Add(q1.V.Mul(q2.W)),
		q1.W*q2.W - q1.V.Dot(q2.V),
	}
}

// Returns the Length of the quaternion, also known as its Norm. This is the same thing as
// the Len of a Vec4
func (q1 Quat) Len() float32 {
	return math32.Sqrt(q1.W*q1.W + q1.V[0]*q1.V[0] + q1.V[1]*q1.V[1] + q1.V[2]*q1.V[2])
}

// Normalizes the quaternion, returning its versor (unit quaternion).
//
// This is the same as normalizing it as a Vec4.
func (q1 Quat) Normalize() Quat {
	length := q1.Len()

	absDelta := 1 - length
	if absDelta < 0 {
		absDelta = -absDelta
	}

	if absDelta < floatCmpEpsilon {
		return q1
	}
	if length == 0 {
		return QuatIdent()
	}
	if math32.IsInf(length, 1) {
		length = math32.MaxFloat32
	}

	return Quat{q1.V.Mul(1 / length), q1.W * 1 / length}
}

// The conjugate negates the vector part. For unit quaternions it is equal to
// the inverse.
func (q1 Quat) Conjugate() Quat {
	return Quat{q1.V.Neg(), q1.W}
}

// Check whether two quaternions are component-wise equal within eps.
func (q1 Quat) ApproxEqual(q2 Quat, eps float32) bool {
	return q1.V.ApproxEqual(q2.V, eps) && math32.Abs(q1.W-q2.W) <= eps
}
