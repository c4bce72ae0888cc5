package mathutil

import (
	"math"

	"golang.org/x/image/math/f32"
)

func Vec3Dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Vec3Len(v f32.Vec3) float32 {
	return float32(math.Sqrt(float64(Vec3Dot(v, v))))
}

// Vec3Normalize returns v scaled to unit length, or the zero vector when v is
// (nearly) zero.
func Vec3Normalize(v f32.Vec3) f32.Vec3 {
	l := Vec3Len(v)
	if l < 1e-12 {
		return f32.Vec3{}
	}
	return f32.Vec3{v[0] / l, v[1] / l, v[2] / l}
}
