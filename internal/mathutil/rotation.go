package mathutil

import "math"

// Mat4Rotation returns the rotation by angle (radians) about the axis (x, y, z).
//
// The axis is used as given and must be a unit vector; a non-unit axis yields
// a scaled or skewed matrix rather than a rotation. An angle of 0 yields the
// identity for any axis.
func Mat4Rotation(angle, x, y, z float32) Mat4 {
	s64, c64 := math.Sincos(float64(angle))
	s, c := float32(s64), float32(c64)
	ic := 1 - c

	return Mat4{
		x*x*ic + c, y*x*ic + z*s, x*z*ic - y*s, 0,
		x*y*ic - z*s, y*y*ic + c, y*z*ic + x*s, 0,
		x*z*ic + y*s, y*z*ic - x*s, z*z*ic + c, 0,
		0, 0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math.Pi / 180
}
