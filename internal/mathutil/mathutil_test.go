package mathutil

import "testing"

func approxEq(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestInvertMatrix3RoundTrip(t *testing.T) {
	m := Matrix3{2, 0, 3, 0, 4, 5, 0, 0, 1}
	inv := InvertMatrix3(m)
	id := MultiplyMatrix3(m, inv)
	want := Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range id {
		if !approxEq(id[i], want[i]) {
			t.Fatalf("m * inv(m) = %v, want identity", id)
		}
	}
}

func TestInvertMatrix3Singular(t *testing.T) {
	m := Matrix3{0, 0, 0, 0, 0, 0, 0, 0, 0}
	inv := InvertMatrix3(m)
	want := Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if inv != want {
		t.Fatalf("singular matrix should invert to identity fallback, got %v", inv)
	}
}

func TestTransformPos2D(t *testing.T) {
	m := Matrix3{2, 0, 10, 0, 3, 20, 0, 0, 1}
	x, y := TransformPos2D(m, 1, 1)
	if !approxEq(x, 12) || !approxEq(y, 23) {
		t.Fatalf("TransformPos2D = (%v, %v), want (12, 23)", x, y)
	}
}

func TestTransformVec2DIgnoresTranslation(t *testing.T) {
	m := Matrix3{2, 0, 10, 0, 3, 20, 0, 0, 1}
	x, y := TransformVec2D(m, 1, 1)
	if !approxEq(x, 2) || !approxEq(y, 3) {
		t.Fatalf("TransformVec2D = (%v, %v), want (2, 3)", x, y)
	}
}

func TestBatchTransformPositionsMatchesScalarPath(t *testing.T) {
	m := Matrix3{2, 0, 1, 0, 2, 1, 0, 0, 1}
	// 10 vertices: exercises both the 8-wide lane path and the scalar tail.
	pos := make([]float32, 20)
	for i := range pos {
		pos[i] = float32(i)
	}
	want := make([]float32, len(pos))
	copy(want, pos)
	for i := 0; i < len(want)/2; i++ {
		x, y := want[i*2], want[i*2+1]
		want[i*2] = m[0]*x + m[1]*y + m[2]
		want[i*2+1] = m[3]*x + m[4]*y + m[5]
	}

	BatchTransformPositions(m, pos)
	for i := range pos {
		if !approxEq(pos[i], want[i]) {
			t.Fatalf("pos[%d] = %v, want %v", i, pos[i], want[i])
		}
	}
}

func TestGenQuadIndicesUnaligned(t *testing.T) {
	dst := GenQuadIndicesUnaligned(nil, 4)
	want := []uint16{4, 5, 6, 4, 6, 7}
	if len(dst) != len(want) {
		t.Fatalf("len = %d, want %d", len(dst), len(want))
	}
	for i, w := range want {
		if dst[i] != w {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], w)
		}
	}
}

func TestBatchTransformDrawIndices(t *testing.T) {
	idx := []uint16{0, 1, 2, 0, 2, 3}
	BatchTransformDrawIndices(idx, 10)
	want := []uint16{10, 11, 12, 10, 12, 13}
	for i, w := range want {
		if idx[i] != w {
			t.Fatalf("idx[%d] = %d, want %d", i, idx[i], w)
		}
	}
}
