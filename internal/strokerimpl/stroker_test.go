package strokerimpl

import "testing"

func square() []float32 {
	return []float32{0, 0, 10, 0, 10, 10, 0, 10}
}

func TestConvexFillTriangulatesSquare(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	mesh := s.ConvexFill(square(), 0xFFFFFFFF)
	if len(mesh.Indices) != 6 {
		t.Fatalf("square fan should produce 2 triangles (6 indices), got %d", len(mesh.Indices))
	}
}

func TestConvexFillAAAddsFringeRing(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	mesh := s.ConvexFillAA(square(), 0xFF0000FF)
	if len(mesh.Pos) != 16 {
		t.Fatalf("AA fill should double the vertex count (outer+inner ring), got %d floats", len(mesh.Pos))
	}
	if len(mesh.Colors) != 8 {
		t.Fatalf("AA fill must emit one color per vertex, got %d", len(mesh.Colors))
	}
	outerAlpha := mesh.Colors[0] >> 24
	if outerAlpha != 0 {
		t.Fatalf("outer ring vertices must fade to zero alpha, got %d", outerAlpha)
	}
}

func TestConcaveFillEndTriangulatesLShape(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	s.ConcaveFillBegin()
	// L-shape: concave polygon, six vertices.
	s.ConcaveFillAddContour([]float32{0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20})
	mesh, ok := s.ConcaveFillEnd(0xFFFFFFFF, false)
	if !ok {
		t.Fatalf("ear clipping should succeed on a simple concave polygon")
	}
	if len(mesh.Indices) != 4*3 {
		t.Fatalf("a 6-gon should triangulate into 4 triangles, got %d indices", len(mesh.Indices))
	}
}

func TestConcaveFillEndRejectsDegenerateInput(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	s.ConcaveFillBegin()
	s.ConcaveFillAddContour([]float32{0, 0, 1, 1})
	if _, ok := s.ConcaveFillEnd(0xFFFFFFFF, false); ok {
		t.Fatalf("fewer than 3 vertices must fail tessellation")
	}
}

func TestConcaveFillBridgesHoleContour(t *testing.T) {
	s := New()
	s.Reset(1, 0.25, 1)
	s.ConcaveFillBegin()
	s.ConcaveFillAddContour([]float32{0, 0, 20, 0, 20, 20, 0, 20})
	s.ConcaveFillAddContour([]float32{5, 5, 15, 5, 15, 15, 5, 15})
	mesh, ok := s.ConcaveFillEnd(0xFFFFFFFF, true)
	if !ok {
		t.Fatalf("bridged outer+hole polygon should still ear-clip successfully")
	}
	if len(mesh.Indices) == 0 {
		t.Fatalf("expected a non-empty triangulation")
	}
}

func TestOffsetPolygonShrinksTowardCentroid(t *testing.T) {
	inner := offsetPolygon(square(), -1)
	// every inner vertex should be strictly inside the original square
	for i := 0; i < len(inner); i += 2 {
		x, y := inner[i], inner[i+1]
		if x <= 0 || x >= 10 || y <= 0 || y >= 10 {
			t.Fatalf("offset vertex (%v,%v) should land strictly inside the square", x, y)
		}
	}
}
