// Package fontsys is the default FontSystem collaborator: font loading,
// HarfBuzz-level shaping via go-text/typesetting, a shelf-packed glyph
// atlas, and line-breaking for box text.
//
// Grounded on the teacher's text/shaper_gotext.go (font caching and the
// go-text/typesetting Shape call) and text/msdf/shelf.go (atlas packing),
// adapted from the teacher's pluggable-Shaper-interface design into a
// single concrete implementation since the FontSystem collaborator
// interface (spec §6) is itself the seam the rest of the renderer plugs
// into — there is no need for a second layer of shaper pluggability here.
package fontsys

import (
	"bytes"
	"fmt"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Vertex2D is a single glyph-quad vertex: position plus atlas UV.
type Vertex2D struct {
	X, Y, U, V float32
}

// Mesh is the quad-list output of Text/TextBox, ready for upload into a
// vertex arena by the caller.
type Mesh struct {
	Vertices []Vertex2D
	Indices  []uint16
}

const (
	atlasSize    = 1024
	glyphPadding = 2
	invalidFont  = 0xFFFFFFFF
)

type fontEntry struct {
	name string
	font *gotextfont.Font
}

type glyphKey struct {
	fontID uint32
	gid    uint16
	sizePx int32
}

type glyphRegion struct {
	u0, v0, u1, v1 float32
	advance        float32
	bearingX       float32
	bearingY       float32
	w, h           float32
}

// System is the default FontSystem implementation.
type System struct {
	mu sync.Mutex

	fonts        []fontEntry
	fallback     uint32
	shaperPool   sync.Pool
	atlasPixels  []byte
	atlasDirty   bool
	allocator    *shelfAllocator
	glyphRegions map[glyphKey]glyphRegion
	whiteU       float32
	whiteV       float32
}

// New constructs a FontSystem with an empty font list and a fresh atlas.
// This is the collaborator's create() entry point (spec §6).
func New() *System {
	s := &System{
		fallback:     invalidFont,
		atlasPixels:  make([]byte, atlasSize*atlasSize),
		allocator:    newShelfAllocator(atlasSize, atlasSize, glyphPadding),
		glyphRegions: make(map[glyphKey]glyphRegion),
	}
	s.shaperPool.New = func() any { return &shaping.HarfbuzzShaper{} }
	s.reserveWhitePixel()
	return s
}

// Destroy releases the atlas and cached fonts. Provided for symmetry with
// the collaborator's destroy() lifecycle hook; the Go GC reclaims memory on
// its own, so this simply drops references.
func (s *System) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fonts = nil
	s.atlasPixels = nil
	s.glyphRegions = nil
}

// reserveWhitePixel claims a 1x1 cell in the atlas so solid fills routed
// through the text pipeline (e.g. stroke AA caps) can sample it.
func (s *System) reserveWhitePixel() {
	x, y, ok := s.allocator.allocate(1, 1)
	if !ok {
		return
	}
	s.atlasPixels[y*atlasSize+x] = 0xFF
	s.whiteU = (float32(x) + 0.5) / atlasSize
	s.whiteV = (float32(y) + 0.5) / atlasSize
	s.atlasDirty = true
}

// AddFont parses TTF/OTF bytes and registers it under name, returning a
// stable font id. Mirrors the collaborator's addFont().
func (s *System) AddFont(name string, data []byte) (uint32, error) {
	face, err := gotextfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return invalidFont, fmt.Errorf("fontsys: parse font %q: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uint32(len(s.fonts))
	s.fonts = append(s.fonts, fontEntry{name: name, font: face.Font})
	return id, nil
}

// FindFont resolves a font name to its id, or invalidFont if unknown.
func (s *System) FindFont(name string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.fonts {
		if f.name == name {
			return uint32(i)
		}
	}
	return invalidFont
}

// AddFallbackFont designates fontID as the font searched when a glyph is
// missing from the primary face.
func (s *System) AddFallbackFont(fontID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = fontID
}

// lineHeightFactor approximates the ascent+descent+linegap ratio typical
// typefaces use, expressed relative to the nominal em size.
const lineHeightFactor = 1.2

// GetLineHeight returns the recommended line advance for fontID at sizePx.
func (s *System) GetLineHeight(fontID uint32, sizePx float32) float32 {
	s.mu.Lock()
	f := s.fontAt(fontID)
	s.mu.Unlock()
	if f == nil {
		return 0
	}
	return sizePx * lineHeightFactor
}

func (s *System) fontAt(id uint32) *gotextfont.Font {
	if int(id) < 0 || int(id) >= len(s.fonts) {
		return nil
	}
	return s.fonts[id].font
}

// GetFontAtlasImage returns the current atlas bitmap (single-channel
// coverage) for upload via GpuBackend.
func (s *System) GetFontAtlasImage() (pixels []byte, size int) {
	return s.atlasPixels, atlasSize
}

// GetWhitePixelUV returns the UV of the reserved 1x1 opaque atlas cell.
func (s *System) GetWhitePixelUV() (u, v float32) {
	return s.whiteU, s.whiteV
}

// FlushFontAtlasImage clears the dirty flag once the backend has uploaded
// the atlas, per the collaborator's flushFontAtlasImage().
func (s *System) FlushFontAtlasImage() {
	s.mu.Lock()
	s.atlasDirty = false
	s.mu.Unlock()
}

// Dirty reports whether the atlas has pending changes since the last flush.
func (s *System) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atlasDirty
}

// Frame is the collaborator's per-frame hook; the default implementation
// has no per-frame bookkeeping beyond what AddFont/Text already maintain.
func (s *System) Frame() {}

func floatToFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
