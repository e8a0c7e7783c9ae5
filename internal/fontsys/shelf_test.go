package fontsys

import "testing"

func TestShelfAllocatorPacksLeftToRight(t *testing.T) {
	a := newShelfAllocator(100, 100, 2)
	x0, y0, ok := a.allocate(20, 20)
	if !ok || x0 != 0 || y0 != 0 {
		t.Fatalf("first allocation should land at origin, got (%d,%d,%v)", x0, y0, ok)
	}
	x1, y1, ok := a.allocate(20, 20)
	if !ok || y1 != y0 || x1 <= x0 {
		t.Fatalf("second same-height allocation should share the shelf, got (%d,%d,%v)", x1, y1, ok)
	}
}

func TestShelfAllocatorStartsNewShelfWhenRowFull(t *testing.T) {
	a := newShelfAllocator(50, 50, 0)
	a.allocate(40, 10)
	_, y1, ok := a.allocate(40, 10)
	if !ok || y1 == 0 {
		t.Fatalf("overflowing a shelf's width should start a new shelf below it")
	}
}

func TestShelfAllocatorFailsWhenAtlasFull(t *testing.T) {
	a := newShelfAllocator(10, 10, 0)
	a.allocate(10, 10)
	if _, _, ok := a.allocate(10, 10); ok {
		t.Fatalf("allocating past the atlas bounds should fail")
	}
}

func TestShelfAllocatorResetReclaimsSpace(t *testing.T) {
	a := newShelfAllocator(10, 10, 0)
	a.allocate(10, 10)
	a.reset()
	if _, _, ok := a.allocate(10, 10); !ok {
		t.Fatalf("reset should allow reallocating the full atlas")
	}
}
