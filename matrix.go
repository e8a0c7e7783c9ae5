package vg

import (
	"math"

	"github.com/gogpu/vg/internal/mathutil"
)

// Matrix3 is the 3x3 row-major matrix type MathUtil operations use.
type Matrix3 = mathutil.Matrix3

// Matrix represents the 2x3 affine transformation used by DrawingState. It
// mirrors internal/mathutil.Matrix3's row-major layout but keeps only the
// six affine components (the third row is always [0 0 1]), matching the
// spec's "transform: 2x3 affine" data model.
//
//	| a  b  c |
//	| d  e  f |
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 0, E: 1, F: 0}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Matrix {
	return Matrix{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: 0, E: y, F: 0}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Matrix {
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	return Matrix{A: cos, B: -sin, C: 0, D: sin, E: cos, F: 0}
}

// Shear creates a shear matrix.
func Shear(x, y float32) Matrix {
	return Matrix{A: 1, B: x, C: 0, D: y, E: 1, F: 0}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(x, y float32) (float32, float32) {
	return m.A*x + m.B*y, m.D*x + m.E*y
}

// Invert returns the inverse matrix, or the identity matrix if m is not
// invertible.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if float32(math.Abs(float64(det))) < 1e-10 {
		return Identity()
	}
	invDet := 1 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// AvgScale returns the average of the two column norms, per spec §3's
// avgScale = (||col0|| + ||col1||) / 2. Drives stroke width, tessellation
// tolerance, and font scale quantization.
func (m Matrix) AvgScale() float32 {
	col0 := float32(math.Hypot(float64(m.A), float64(m.D)))
	col1 := float32(math.Hypot(float64(m.B), float64(m.E)))
	return (col0 + col1) / 2
}

// ToMatrix3 widens the affine matrix to the 3x3 row-major form MathUtil
// operations (multiplyMatrix3, invertMatrix3, transformPos2D) expect.
func (m Matrix) ToMatrix3() Matrix3 {
	return Matrix3{m.A, m.B, m.C, m.D, m.E, m.F, 0, 0, 1}
}
