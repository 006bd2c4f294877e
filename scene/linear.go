package scene

import "github.com/chewxy/math32"

// Vec3 is a 3-component vector of float32.
type Vec3 struct {
	X, Y, Z float32
}

// V3 builds a Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Quat is a rotation quaternion; the zero value is not a valid rotation,
// use IdentityQuat.
type Quat struct {
	X, Y, Z, W float32
}

// IdentityQuat returns the no-rotation quaternion.
func IdentityQuat() Quat { return Quat{W: 1} }

// QuatFromEuler converts intrinsic XYZ Euler angles in radians.
func QuatFromEuler(e Vec3) Quat {
	c1, s1 := math32.Cos(e.X/2), math32.Sin(e.X/2)
	c2, s2 := math32.Cos(e.Y/2), math32.Sin(e.Y/2)
	c3, s3 := math32.Cos(e.Z/2), math32.Sin(e.Z/2)
	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// QuatFromAxisAngle returns the rotation of angle radians around a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(angle / 2)}
}

// Euler converts q back to XYZ Euler angles.
func (q Quat) Euler() Vec3 {
	m := q.rotation()
	var e Vec3
	e.Y = math32.Asin(clamp(m[0][2], -1, 1))
	if math32.Abs(m[0][2]) < 0.9999999 {
		e.X = math32.Atan2(-m[1][2], m[2][2])
		e.Z = math32.Atan2(-m[0][1], m[0][0])
	} else {
		e.X = math32.Atan2(m[2][1], m[1][1])
	}
	return e
}

// rotation returns the row-major 3x3 rotation matrix of q.
func (q Quat) rotation() [3][3]float32 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return [3][3]float32{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// Mat4 is a column-major 4x4 matrix: element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Compose builds the translation * rotation * scale matrix.
func Compose(pos Vec3, q Quat, scale Vec3) Mat4 {
	r := q.rotation()
	var m Mat4
	for row := 0; row < 3; row++ {
		m[0*4+row] = r[row][0] * scale.X
		m[1*4+row] = r[row][1] * scale.Y
		m[2*4+row] = r[row][2] * scale.Z
	}
	m[12], m[13], m[14], m[15] = pos.X, pos.Y, pos.Z, 1
	return m
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// Scale returns the length of each basis column.
func (m Mat4) Scale() Vec3 {
	return Vec3{
		X: Vec3{m[0], m[1], m[2]}.Len(),
		Y: Vec3{m[4], m[5], m[6]}.Len(),
		Z: Vec3{m[8], m[9], m[10]}.Len(),
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
