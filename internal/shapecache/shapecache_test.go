package shapecache

import "testing"

func TestCacheInvalidUntilPopulated(t *testing.T) {
	c := New()
	if c.Valid(1.0) {
		t.Fatalf("fresh cache must not be valid")
	}
	c.Reset(1.0)
	c.MarkPopulated()
	if !c.Valid(1.0) {
		t.Fatalf("cache should be valid at the scale it was populated for")
	}
	if c.Valid(2.0) {
		t.Fatalf("cache must invalidate on scale change")
	}
}

func TestResetClearsRecordedData(t *testing.T) {
	c := New()
	c.Reset(1.0)
	idx := c.BeginCommand([9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1})
	c.AddMesh(idx, []float32{0, 0, 1, 0, 1, 1}, nil, []uint16{0, 1, 2})
	c.MarkPopulated()

	c.Reset(2.0)
	if len(c.Commands) != 0 || len(c.Meshes) != 0 {
		t.Fatalf("Reset should clear commands and meshes")
	}
	if c.Valid(2.0) {
		t.Fatalf("cache should be unpopulated immediately after Reset")
	}
}

func TestCursorAdvancesOncePerCommand(t *testing.T) {
	c := New()
	c.Reset(1.0)
	c.BeginCommand([9]float32{})
	c.BeginCommand([9]float32{})
	c.MarkPopulated()

	cur := NewCursor()
	if _, ok := cur.Advance(c); !ok {
		t.Fatalf("first Advance should succeed")
	}
	if _, ok := cur.Advance(c); !ok {
		t.Fatalf("second Advance should succeed")
	}
	if _, ok := cur.Advance(c); ok {
		t.Fatalf("third Advance should exhaust the cursor")
	}
}

func TestMeshesForSlicesCorrectRange(t *testing.T) {
	c := New()
	c.Reset(1.0)
	a := c.BeginCommand([9]float32{})
	c.AddMesh(a, []float32{0, 0}, nil, nil)
	b := c.BeginCommand([9]float32{})
	c.AddMesh(b, []float32{1, 1}, nil, nil)
	c.AddMesh(b, []float32{2, 2}, nil, nil)
	c.MarkPopulated()

	if got := len(c.MeshesFor(c.Commands[a])); got != 1 {
		t.Fatalf("command a has %d meshes, want 1", got)
	}
	if got := len(c.MeshesFor(c.Commands[b])); got != 2 {
		t.Fatalf("command b has %d meshes, want 2", got)
	}
}
