package strokerimpl

import "testing"

func TestPolylineStrokeProducesRibbonQuads(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	pts := []float32{0, 0, 10, 0, 10, 10}
	mesh := s.PolylineStroke(pts, false, 2, CapButt, JoinMiter, 0xFFFFFFFF)
	if len(mesh.Indices) == 0 {
		t.Fatalf("expected a non-empty ribbon mesh")
	}
	if len(mesh.Pos)/2 != 6 {
		t.Fatalf("3-point open polyline with butt caps should have 6 ribbon vertices, got %d", len(mesh.Pos)/2)
	}
}

func TestPolylineStrokeSquareCapExtendsEndpoints(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	pts := []float32{0, 0, 10, 0}
	mesh := s.PolylineStroke(pts, false, 2, CapSquare, JoinMiter, 0xFFFFFFFF)
	if len(mesh.Pos)/2 <= 4 {
		t.Fatalf("square caps should add extra vertices beyond the 4 ribbon corners, got %d", len(mesh.Pos)/2)
	}
}

func TestPolylineStrokeClosedHasNoCapExtension(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	pts := square()
	mesh := s.PolylineStroke(pts, true, 2, CapRound, JoinMiter, 0xFFFFFFFF)
	if len(mesh.Pos)/2 != 8 {
		t.Fatalf("closed polylines must not grow caps, got %d vertices", len(mesh.Pos)/2)
	}
}

func TestPolylineStrokeAAThinProducesNonEmptyMesh(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	mesh := s.PolylineStrokeAAThin([]float32{0, 0, 10, 0}, false, 0xFFFFFFFF)
	if len(mesh.Indices) == 0 {
		t.Fatalf("hairline stroke should still produce triangles")
	}
}

func TestStrokeOffsetsOnePointPerVertexAtRightAngleTurn(t *testing.T) {
	pts := []float32{0, 10, 0, 0, 10, 0} // 90 degree turn at origin
	left, right := strokeOffsets(pts, false, 1, defaultMiterLimit)
	if len(left) != 6 || len(right) != 6 {
		t.Fatalf("expected 3 offset points per side")
	}
}
