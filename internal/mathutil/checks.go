package mathutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateFrustum reports clip planes that would divide by zero in Mat4Frustum.
var ErrDegenerateFrustum = errors.New("mathutil: degenerate frustum")

// Mat4ApproxEqual reports whether every element of a and b differs by at most eps.
func Mat4ApproxEqual(a, b Mat4, eps float32) bool {
	for i := 0; i < 16; i++ {
		if abs32(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity(eps float32) bool {
	return Mat4ApproxEqual(m, Mat4Identity(), eps)
}

// IsFinite reports whether no element is NaN or ±Inf.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// IsRigid reports whether m satisfies the InvertRigid precondition: affine
// bottom row and an orthonormal upper-left 3×3, both within eps.
func (m Mat4) IsRigid(eps float32) bool {
	if abs32(m[3]) > eps || abs32(m[7]) > eps || abs32(m[11]) > eps || abs32(m[15]-1) > eps {
		return false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var dot float32
			for k := 0; k < 3; k++ {
				dot += m[i*4+k] * m[j*4+k]
			}
			want := float32(0)
			if i == j {
				want = 1
			}
			if abs32(dot-want) > eps {
				return false
			}
		}
	}
	return true
}

// IsUnitAxis reports whether (x, y, z) is usable as a Mat4Rotation axis.
func IsUnitAxis(x, y, z, eps float32) bool {
	return abs32(x*x+y*y+z*z-1) <= eps
}

// ValidateFrustum returns ErrDegenerateFrustum when any pair of opposing
// clip planes coincides.
func ValidateFrustum(l, r, b, t, n, f float32) error {
	switch {
	case r == l:
		return fmt.Errorf("%w: left == right (%g)", ErrDegenerateFrustum, l)
	case t == b:
		return fmt.Errorf("%w: bottom == top (%g)", ErrDegenerateFrustum, b)
	case f == n:
		return fmt.Errorf("%w: near == far (%g)", ErrDegenerateFrustum, n)
	}
	return nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
