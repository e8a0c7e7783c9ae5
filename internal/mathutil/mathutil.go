// Package mathutil is the default MathUtil collaborator: 3x3 matrix
// primitives and batch vertex-transform helpers, grounded on the teacher's
// matrix.go/vec.go 2x3-affine style and internal/wide's fixed-width batch
// shape (generalized here from F32x8 lanes to plain slices, since the
// batch operations here walk arena-sized vertex counts rather than
// SIMD-lane-sized chunks).
package mathutil

import "github.com/gogpu/vg/internal/wide"

// Matrix3 is a row-major 3x3 matrix used for gradient/pattern inverse
// matrices, stored as 9 floats so it composes directly with the 2x3
// DrawingState transform (last row implicitly [0 0 1]).
type Matrix3 [9]float32

// MultiplyMatrix3 returns a*b (3x3, row-major).
func MultiplyMatrix3(a, b Matrix3) Matrix3 {
	var r Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return r
}

// InvertMatrix3 returns the inverse of m, or the identity matrix if m is
// singular (mirrors Matrix.Invert's defensive fallback in matrix.go).
func InvertMatrix3(m Matrix3) Matrix3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det > -1e-12 && det < 1e-12 {
		return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
	invDet := 1 / det

	return Matrix3{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}
}

// TransformPos2D transforms a position (x, y, implicit w=1) by m.
func TransformPos2D(m Matrix3, x, y float32) (float32, float32) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// TransformVec2D transforms a direction (x, y, implicit w=0) by m, ignoring
// translation.
func TransformVec2D(m Matrix3, x, y float32) (float32, float32) {
	return m[0]*x + m[1]*y, m[3]*x + m[4]*y
}

// BatchTransformPositions transforms a packed [x0,y0,x1,y1,...] slice by m
// in place, used both by the render-side fringe computation and by shape
// cache replay forward-transforming object-space positions (spec §4.8).
func BatchTransformPositions(m Matrix3, pos []float32) {
	n := len(pos) / 2
	lanes := n / 8 * 8
	for i := 0; i < lanes; i += 8 {
		var xs, ys wide.F32x8
		for k := 0; k < 8; k++ {
			xs[k] = pos[(i+k)*2]
			ys[k] = pos[(i+k)*2+1]
		}
		rx := xs.Mul(wide.SplatF32(m[0])).Add(ys.Mul(wide.SplatF32(m[1]))).Add(wide.SplatF32(m[2]))
		ry := xs.Mul(wide.SplatF32(m[3])).Add(ys.Mul(wide.SplatF32(m[4]))).Add(wide.SplatF32(m[5]))
		for k := 0; k < 8; k++ {
			pos[(i+k)*2] = rx[k]
			pos[(i+k)*2+1] = ry[k]
		}
	}
	for i := lanes; i < n; i++ {
		x, y := pos[i*2], pos[i*2+1]
		pos[i*2] = m[0]*x + m[1]*y + m[2]
		pos[i*2+1] = m[3]*x + m[4]*y + m[5]
	}
}

// TextQuad is a single glyph quad: four corner positions and matching UVs,
// laid out tl, tr, bl, br.
type TextQuad struct {
	Pos [8]float32 // x0,y0, x1,y1, x2,y2, x3,y3
	UV  [8]float32
}

// BatchTransformTextQuads transforms every quad's positions by m in place.
// Used by the text primitive to move a font-system-produced mesh (already
// in pixel units) by the translate-only transform described in spec §4.10.
func BatchTransformTextQuads(m Matrix3, quads []TextQuad) {
	for qi := range quads {
		q := &quads[qi]
		for v := 0; v < 4; v++ {
			x, y := q.Pos[v*2], q.Pos[v*2+1]
			q.Pos[v*2] = m[0]*x + m[1]*y + m[2]
			q.Pos[v*2+1] = m[3]*x + m[4]*y + m[5]
		}
	}
}

// BatchTransformDrawIndices rewrites idx in place, adding baseVertex to
// every entry, used when a cached mesh's indices are replayed into a fresh
// arena offset.
func BatchTransformDrawIndices(idx []uint16, baseVertex uint16) {
	for i := range idx {
		idx[i] += baseVertex
	}
}

// GenQuadIndicesUnaligned appends the 6 indices of a single quad (two
// triangles, 0-1-2 0-2-3 winding) relative to baseVertex into dst.
func GenQuadIndicesUnaligned(dst []uint16, baseVertex uint16) []uint16 {
	return append(dst,
		baseVertex+0, baseVertex+1, baseVertex+2,
		baseVertex+0, baseVertex+2, baseVertex+3,
	)
}

// Memset32 fills dst with v.
func Memset32(dst []uint32, v uint32) {
	for i := range dst {
		dst[i] = v
	}
}

// Memset64 fills dst with v.
func Memset64(dst []uint64, v uint64) {
	for i := range dst {
		dst[i] = v
	}
}
