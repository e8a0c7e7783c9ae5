package vg

import "testing"

func TestScaledStrokeWidthAppliesAvgScale(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.state.AvgScale = 2
	got := ctx.scaledStrokeWidth(5, 0)
	if got != 10 {
		t.Fatalf("scaledStrokeWidth = %v, want 10", got)
	}
}

func TestScaledStrokeWidthFixedWidthBypassesAvgScale(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.state.AvgScale = 50
	got := ctx.scaledStrokeWidth(5, FlagFixedWidth)
	if got != 5 {
		t.Fatalf("scaledStrokeWidth with FlagFixedWidth = %v, want 5 (AvgScale ignored)", got)
	}
}

func TestScaledStrokeWidthClampsToMax(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.state.AvgScale = 1000
	got := ctx.scaledStrokeWidth(5, 0)
	if got != maxStrokeWidth {
		t.Fatalf("scaledStrokeWidth = %v, want clamped to %v", got, maxStrokeWidth)
	}
}

func TestScaledStrokeWidthClampsNegativeToZero(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.state.AvgScale = -1
	got := ctx.scaledStrokeWidth(5, 0)
	if got != 0 {
		t.Fatalf("scaledStrokeWidth = %v, want clamped to 0", got)
	}
}

// TestStrokePathColorFixedWidthIgnoresTransformScale covers spec §6's
// documented FixedWidth stroke flag end-to-end: a stroke under a large
// AvgScale still produces a draw (tessellation doesn't blow up or get
// clamped away) when FixedWidth is set.
func TestStrokePathColorFixedWidthIgnoresTransformScale(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)
	ctx.Scale(500, 500)
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(1, 0)
	ctx.StrokePathColor(packColor(Red), 2, FlagFixedWidth)
	ctx.End()

	if len(sw.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(sw.Draws))
	}
}
