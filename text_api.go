package vg

import (
	"github.com/gogpu/vg/internal/arena"
	"github.com/gogpu/vg/internal/batch"
	"github.com/gogpu/vg/internal/fontsys"
	"github.com/gogpu/vg/internal/handle"
)

// CreateFont registers TTF/OTF bytes under name and returns a stable font
// id, or an error if the font table is already at maxFonts or the data
// fails to parse.
func (c *Context) CreateFont(name string, data []byte) (uint32, error) {
	if c.fontCount >= c.cfg.MaxFonts {
		return 0, ErrHandleExhausted
	}
	id, err := c.fonts.AddFont(name, data)
	if err != nil {
		return 0, err
	}
	c.fontCount++
	return id, nil
}

// GetFontByName resolves a previously registered font name to its id.
func (c *Context) GetFontByName(name string) uint32 { return c.fonts.FindFont(name) }

// SetFallbackFont designates fontID as the fallback face for glyphs missing
// from a primary font.
func (c *Context) SetFallbackFont(fontID uint32) { c.fonts.AddFallbackFont(fontID) }

func (c *Context) textConfig(fontID uint32, sizePx float32) fontsys.Config {
	return fontsys.Config{FontID: fontID, SizePx: sizePx * c.state.FontScale}
}

// TextConfig bundles the Text/TextBox parameters the public API takes
// directly (fontID, sizePx, color) behind a single handle, since the
// command-list wire format (spec §4.6) carries one uint32 "config" field for
// an OpText/OpTextBox rather than three separate operands. CreateTextConfig
// is only needed by ClText/ClTextBox recording; direct Text/TextBox calls
// never touch this table.
type TextConfig struct {
	FontID uint32
	SizePx float32
	Color  uint32
}

// CreateTextConfig registers a (font, size, color) triple and returns its
// handle, or handleInvalid once the table is at capacity.
func (c *Context) CreateTextConfig(fontID uint32, sizePx float32, color uint32) uint32 {
	h := c.textConfigs.Alloc(TextConfig{FontID: fontID, SizePx: sizePx, Color: color})
	if h == handle.Invalid {
		Logger().Warn("vg: text config table exhausted")
		return handleInvalid
	}
	return h
}

// textWithConfig is the low-level entry point cmdlist playback dispatches
// OpText to: it resolves configHandle back into (fontID, sizePx, color) and
// draws exactly as Text does.
func (c *Context) textWithConfig(configHandle uint32, x, y float32, s string) {
	cfg, ok := c.textConfigs.Get(configHandle)
	if !ok {
		Logger().Warn("vg: Text with an invalid text config handle")
		return
	}
	c.Text(cfg.FontID, x, y, cfg.SizePx, s, cfg.Color)
}

// textBoxWithConfig is the low-level entry point cmdlist playback dispatches
// OpTextBox to, mirroring textWithConfig.
func (c *Context) textBoxWithConfig(configHandle uint32, x, y, breakWidth float32, s string) {
	cfg, ok := c.textConfigs.Get(configHandle)
	if !ok {
		Logger().Warn("vg: TextBox with an invalid text config handle")
		return
	}
	c.TextBox(cfg.FontID, x, y, cfg.SizePx, breakWidth, s, cfg.Color)
}

// uploadGlyphMesh converts a fontsys.Mesh (already in pixel/device units at
// the pen position) into arena/batch draw commands, sampling the font
// atlas's packed glyph regions. Per spec §4.10, glyph positions are moved
// by a translate-only transform (the text origin), not the full affine
// transform, since glyph shaping already accounts for scale via
// DrawingState.FontScale.
func (c *Context) uploadGlyphMesh(mesh fontsys.Mesh, color uint32) {
	if len(mesh.Vertices) == 0 {
		return
	}
	ox, oy := c.state.Transform.C, c.state.Transform.F
	pos := make([]float32, len(mesh.Vertices)*2)
	colors := make([]uint32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		pos[i*2] = v.X + ox
		pos[i*2+1] = v.Y + oy
		colors[i] = color
	}
	c.uploadMesh(pos, colors, mesh.Indices, color, arena.UV{}, batch.Textured, batch.HandleSentinel)
	// Per-vertex UV differs from the single white-pixel UV used elsewhere
	// for Textured draws; overwrite it now that uploadMesh has placed the
	// vertices, since uploadMesh's uv parameter only supports one constant.
	n := uint32(len(mesh.Vertices))
	first := c.vb.Count - n
	for i, v := range mesh.Vertices {
		c.vb.UV[first+uint32(i)] = arena.UV{U: v.U, V: v.V}
	}
}

// Text draws str at (x, y) using fontID at sizePx, returning the horizontal
// advance.
func (c *Context) Text(fontID uint32, x, y, sizePx float32, str string, color uint32) float32 {
	cfg := c.textConfig(fontID, sizePx)
	var mesh fontsys.Mesh
	adv := c.fonts.Text(cfg, x, y, str, &mesh)
	c.uploadGlyphMesh(mesh, scaleAlpha(color, c.state.Alpha))
	return adv
}

// TextBox draws str word-wrapped to breakWidth at (x, y). Each line is
// classified right-to-left or not (fontsys.Line.RTL, via x/text's bidi
// paragraph direction) and shaped accordingly: an RTL line is right-aligned
// against breakWidth instead of starting its pen at x, matching how the
// line would actually be read.
func (c *Context) TextBox(fontID uint32, x, y, sizePx, breakWidth float32, str string, color uint32) {
	cfg := c.textConfig(fontID, sizePx)
	lines := c.fonts.TextBreakLines(cfg, str, breakWidth)
	lineHeight := c.fonts.GetLineHeight(fontID, sizePx)
	premult := scaleAlpha(color, c.state.Alpha)
	penY := y
	for _, line := range lines {
		lineCfg := cfg
		penX := x
		if line.RTL {
			lineCfg.Direction = fontsys.DirectionRTL
			penX = x + breakWidth - line.Width
		}
		var mesh fontsys.Mesh
		c.fonts.Text(lineCfg, penX, penY, str[line.Start:line.End], &mesh)
		c.uploadGlyphMesh(mesh, premult)
		penY += lineHeight
	}
}

// MeasureText returns the horizontal advance str would occupy without
// drawing it.
func (c *Context) MeasureText(fontID uint32, sizePx float32, str string) float32 {
	cfg := c.textConfig(fontID, sizePx)
	var mesh fontsys.Mesh
	return c.fonts.Text(cfg, 0, 0, str, &mesh)
}

// TextBreakLines exposes the FontSystem's word-wrap line breaking directly.
func (c *Context) TextBreakLines(fontID uint32, sizePx float32, str string, breakWidth float32) []fontsys.Line {
	return c.fonts.TextBreakLines(c.textConfig(fontID, sizePx), str, breakWidth)
}

// MeasureTextBox returns the total height str would occupy word-wrapped to
// breakWidth.
func (c *Context) MeasureTextBox(fontID uint32, sizePx, breakWidth float32, str string) float32 {
	lines := c.TextBreakLines(fontID, sizePx, str, breakWidth)
	return float32(len(lines)) * c.GetTextLineHeight(fontID, sizePx)
}

// GetTextLineHeight returns the recommended line advance for fontID at
// sizePx.
func (c *Context) GetTextLineHeight(fontID uint32, sizePx float32) float32 {
	return c.fonts.GetLineHeight(fontID, sizePx)
}
