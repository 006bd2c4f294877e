package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ZAngle returns the rotation about Z encoded by an x, y, z, w quaternion.
// Rotation about the other axes is dropped.
func ZAngle(x, y, z, w float64) float64 {
	return math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
}

// ZQuat returns the x, y, z, w quaternion of a rotation about Z.
func ZQuat(angle float64) [4]float64 {
	s, c := math.Sincos(angle / 2)
	return [4]float64{0, 0, s, c}
}
