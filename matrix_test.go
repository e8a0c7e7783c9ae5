package vg

import (
	"math"
	"testing"

	"github.com/gogpu/vg/internal/mathutil"
)

func approxF32(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestIdentityAndTranslation(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Fatal("Identity() should report IsIdentity")
	}
	tr := Translate(5, 10)
	if !tr.IsTranslation() {
		t.Fatal("Translate() should report IsTranslation")
	}
	if tr.IsIdentity() {
		t.Fatal("a non-zero translation is not the identity")
	}
}

func TestMultiplyAndTransformPoint(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	x, y := m.TransformPoint(1, 1)
	if !approxF32(x, 12, 1e-5) || !approxF32(y, 2, 1e-5) {
		t.Fatalf("TransformPoint = (%v, %v), want (12, 2)", x, y)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(0.7)).Multiply(Scale(2, 3))
	inv := m.Invert()
	x, y := m.TransformPoint(5, -2)
	rx, ry := inv.TransformPoint(x, y)
	if !approxF32(rx, 5, 1e-3) || !approxF32(ry, -2, 1e-3) {
		t.Fatalf("Invert round trip = (%v, %v), want (5, -2)", rx, ry)
	}
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	m := Matrix{}
	if got := m.Invert(); !got.IsIdentity() {
		t.Fatalf("Invert() of a singular matrix = %+v, want identity", got)
	}
}

func TestAvgScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float32
	}{
		{"identity", Identity(), 1},
		{"uniform scale 2", Scale(2, 2), 2},
		{"non-uniform 3,1", Scale(3, 1), 2},
		{"translation only", Translate(50, 50), 1},
		{"rotation preserves scale", Rotate(math.Pi / 4), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.AvgScale(); !approxF32(got, tt.want, 1e-4) {
				t.Errorf("AvgScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToMatrix3(t *testing.T) {
	m := Translate(1, 2).Multiply(Scale(3, 4))
	m3 := m.ToMatrix3()
	x, y := mathutil.TransformPos2D(m3, 1, 1)
	wx, wy := m.TransformPoint(1, 1)
	if !approxF32(x, wx, 1e-5) || !approxF32(y, wy, 1e-5) {
		t.Fatalf("ToMatrix3 disagrees with TransformPoint: (%v,%v) vs (%v,%v)", x, y, wx, wy)
	}
	if m3[8] != 1 || m3[6] != 0 || m3[7] != 0 {
		t.Fatalf("ToMatrix3 bottom row = %v, want [0 0 1]", m3[6:9])
	}
}
