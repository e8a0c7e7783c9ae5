package vg

import (
	"testing"

	"github.com/gogpu/vg/internal/mathutil"
)

func TestLinearGradientAxisNormalization(t *testing.T) {
	g := linearGradient(Identity(), 0, 0, 10, 0, packColor(Red), packColor(White))
	if g.Params[3] < 9.999 || g.Params[3] > 10.001 {
		t.Fatalf("gradient extent = %v, want ~10", g.Params[3])
	}
}

func TestLinearGradientDegenerateAxisFallsBackToVertical(t *testing.T) {
	// sx,sy == ex,ey: the axis direction is undefined: should not panic and
	// should fall back to a well-defined (0, 1) direction.
	g := linearGradient(Identity(), 5, 5, 5, 5, packColor(Red), packColor(White))
	if g.Params[3] != 1 {
		t.Fatalf("degenerate-axis gradient extent = %v, want 1 (the maxF(1, d) floor)", g.Params[3])
	}
}

func TestComposeAndInvertRoundTrip(t *testing.T) {
	current := Translate(100, 50)
	local := Scale(2, 2)
	inv := composeAndInvert(current, local)

	// (100, 50) in canvas space is the local origin; transforming it through
	// the inverse should land back near (0, 0) in local/object space.
	x, y := mathutil.TransformPos2D(inv, 100, 50)
	if !approxF32(x, 0, 1e-3) || !approxF32(y, 0, 1e-3) {
		t.Fatalf("composeAndInvert round trip = (%v, %v), want ~(0, 0)", x, y)
	}
}

func TestBoxGradientCentersOnRect(t *testing.T) {
	g := boxGradient(Identity(), 10, 20, 40, 60, 5, 2, packColor(Black), packColor(White))
	if g.Params[0] != 20 || g.Params[1] != 30 {
		t.Fatalf("box gradient half-extents = (%v, %v), want (20, 30)", g.Params[0], g.Params[1])
	}
	if g.Params[2] != 5 {
		t.Fatalf("box gradient radius = %v, want 5", g.Params[2])
	}
}
