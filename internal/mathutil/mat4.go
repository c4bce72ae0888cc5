package mathutil

import "golang.org/x/image/math/f32"

// Mat4 is a 4×4 matrix stored column-major: element (row r, column c) is m[c*4+r].
// The layout matches what a shader uniform expects, so a Mat4 can be uploaded
// unmodified. Value type for zero heap allocation.
//
// Operations are not synchronized; distinct values may be used from any goroutine.
type Mat4 [16]float32

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b. Transforms accumulate right to left: when b is applied
// to a point first, a second.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		col := b[c*4 : c*4+4]
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += col[k] * a[k*4+r]
			}
			m[c*4+r] = sum
		}
	}
	return m
}

// Mul overwrites m with m × n. n is read-only, so m.Mul(*m) is safe.
func (m *Mat4) Mul(n Mat4) {
	*m = Mat4Mul(*m, n)
}

// Mat4Translation returns the affine translation by (x, y, z).
func Mat4Translation(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Translate returns m × T(x, y, z).
func (m Mat4) Translate(x, y, z float32) Mat4 {
	return Mat4Mul(m, Mat4Translation(x, y, z))
}

// TranslateInPlace is the in-place form of Translate.
func (m *Mat4) TranslateInPlace(x, y, z float32) {
	m.Mul(Mat4Translation(x, y, z))
}

// Rotate returns m × R(angle, x, y, z). See Mat4Rotation for the axis contract.
func (m Mat4) Rotate(angle, x, y, z float32) Mat4 {
	return Mat4Mul(m, Mat4Rotation(angle, x, y, z))
}

// RotateInPlace is the in-place form of Rotate.
func (m *Mat4) RotateInPlace(angle, x, y, z float32) {
	m.Mul(Mat4Rotation(angle, x, y, z))
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// InvertRigid inverts a rotation+translation matrix as R^T × T(-t).
//
// m must be rigid: orthonormal upper-left 3×3 and bottom row [0 0 0 1].
// Scale, shear or a projective row give a wrong result with no error;
// use IsRigid to check when the origin of m is not known.
func InvertRigid(m Mat4) Mat4 {
	t := Mat4Translation(-m[12], -m[13], -m[14])

	r := m
	r[12], r[13], r[14] = 0, 0, 0
	r = r.Transpose()

	return Mat4Mul(r, t)
}

// Mat4Frustum builds the off-center perspective projection for the given clip
// planes. The bottom row is [0 0 -1 0]. Equal opposing bounds divide by zero.
func Mat4Frustum(l, r, b, t, n, f float32) Mat4 {
	dx := r - l
	dy := t - b
	dz := f - n

	m := Mat4Identity()
	m[0] = (2 * n) / dx
	m[5] = (2 * n) / dy
	m[8] = (r + l) / dx
	m[9] = (t + b) / dy
	m[10] = -(f + n) / dz
	m[11] = -1
	m[14] = -(2 * f * n) / dz
	m[15] = 0
	return m
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Floats returns a copy of the 16 values in column-major order.
func (m Mat4) Floats() []float32 {
	out := make([]float32, 16)
	copy(out, m[:])
	return out
}

// MulVec4 returns M × v.
func (m Mat4) MulVec4(v f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// MulPoint transforms a 3D point (w=1). The result keeps w for the
// perspective divide.
func (m Mat4) MulPoint(v f32.Vec3) f32.Vec4 {
	return m.MulVec4(f32.Vec4{v[0], v[1], v[2], 1})
}
