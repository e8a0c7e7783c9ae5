package fontsys

import "testing"

func TestFindFontReturnsInvalidForUnknownName(t *testing.T) {
	s := New()
	if id := s.FindFont("nope"); id != invalidFont {
		t.Fatalf("unknown font name should resolve to invalidFont, got %d", id)
	}
}

func TestWhitePixelIsReservedOnNew(t *testing.T) {
	s := New()
	u, v := s.GetWhitePixelUV()
	if u == 0 && v == 0 {
		t.Fatalf("white pixel UV should not be at the atlas origin once reserved")
	}
}

func TestGetLineHeightIsZeroForUnknownFont(t *testing.T) {
	s := New()
	if h := s.GetLineHeight(invalidFont, 16); h != 0 {
		t.Fatalf("unknown font should yield zero line height, got %v", h)
	}
}

func TestTextBreakLinesKeepsOneLineWithinWidthBudget(t *testing.T) {
	s := New()
	cfg := Config{FontID: invalidFont, SizePx: 16}
	// With no resolvable font, measureRunWidth returns 0 for every word,
	// so every word fits on one line: exercise the no-op path without
	// needing a real font asset in this package's unit tests.
	lines := s.TextBreakLines(cfg, "one two three", 1000)
	if len(lines) != 1 {
		t.Fatalf("expected a single line when nothing exceeds breakWidth, got %d", len(lines))
	}
}

func TestTextBreakLinesClassifiesRTLDirection(t *testing.T) {
	s := New()
	cfg := Config{FontID: invalidFont, SizePx: 16}
	lines := s.TextBreakLines(cfg, "hello", 1000)
	if len(lines) != 1 || lines[0].RTL {
		t.Fatalf("expected a single LTR line for ASCII text, got %+v", lines)
	}

	lines = s.TextBreakLines(cfg, "שלום", 1000)
	if len(lines) != 1 || !lines[0].RTL {
		t.Fatalf("expected a single RTL line for Hebrew text, got %+v", lines)
	}
}

func TestDirtyReflectsAtlasState(t *testing.T) {
	s := New()
	if !s.Dirty() {
		t.Fatalf("atlas should be dirty immediately after reserving the white pixel")
	}
	s.FlushFontAtlasImage()
	if s.Dirty() {
		t.Fatalf("atlas should be clean after a flush with no further writes")
	}
}
