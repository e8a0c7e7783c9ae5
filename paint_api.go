package vg

import (
	"github.com/gogpu/vg/internal/arena"
	"github.com/gogpu/vg/internal/batch"
	gammacolor "github.com/gogpu/vg/internal/color"
	"github.com/gogpu/vg/internal/mathutil"
	"github.com/gogpu/vg/internal/strokerimpl"
)

// Fill/stroke flag bits, packed into the flags uint32 every FillPath*/
// StrokePath* call carries (also the wire representation recorded by
// cmdlist, spec §4.6).
const (
	FlagAntialias  uint32 = 1 << 0
	FlagEvenOdd    uint32 = 1 << 1
	FlagFixedWidth uint32 = 1 << 2
)

// maxStrokeWidth is the upper clamp bx::clamp<float>(width * avgScale, 0,
// 200) applies to every non-fixed-width stroke (spec §4.9 step 2), bounding
// pathological widths that a large AvgScale would otherwise blow up.
const maxStrokeWidth = 200

// scaledStrokeWidth computes the canvas-space stroke width for a
// StrokePath* call: FixedWidth strokes bypass AvgScale entirely (their
// width is already canvas-space), everything else scales with the current
// transform and is clamped to [0, maxStrokeWidth], grounded on the
// original renderer's ctxStrokePathColor/Gradient/ImagePattern
// (original_source/src/vg.cpp:2557,2660,2739).
func (c *Context) scaledStrokeWidth(width float32, flags uint32) float32 {
	if flags&FlagFixedWidth != 0 {
		return width
	}
	scaled := width * c.state.AvgScale
	if scaled < 0 {
		return 0
	}
	if scaled > maxStrokeWidth {
		return maxStrokeWidth
	}
	return scaled
}

// packColor converts an RGBA into the premultiplied RGBA8 packing every
// vertex color and batch.Command-adjacent uniform carries. Blending happens
// directly in gamma space (matching the original renderer's default
// behavior; see PackSRGBPremultiplied for the linear-light alternative),
// but the float-to-byte rounding itself is delegated to the teacher's
// internal/color conversion helper rather than a hand-rolled clamp+cast.
func packColor(c RGBA) uint32 {
	p := c.Premultiply()
	u8 := gammacolor.F32ToU8(gammacolor.ColorF32{
		R: float32(p.R), G: float32(p.G), B: float32(p.B), A: float32(p.A),
	})
	return uint32(u8.R) | uint32(u8.G)<<8 | uint32(u8.B)<<16 | uint32(u8.A)<<24
}

// scaleAlpha scales every channel of a premultiplied RGBA8 color by factor,
// used to apply DrawingState.Alpha and (for thin strokes) the documented
// quadratic coverage correction.
func scaleAlpha(color uint32, factor float32) uint32 {
	if factor >= 1 {
		return color
	}
	if factor < 0 {
		factor = 0
	}
	r := float32(color&0xFF) * factor
	g := float32((color>>8)&0xFF) * factor
	b := float32((color>>16)&0xFF) * factor
	a := float32((color>>24)&0xFF) * factor
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// transformedVertices copies v (x,y pairs in user space) through the
// current transform into canvas space.
func (c *Context) transformedVertices(v []float32) []float32 {
	out := make([]float32, len(v))
	for i := 0; i < len(v); i += 2 {
		out[i], out[i+1] = c.state.Transform.TransformPoint(v[i], v[i+1])
	}
	return out
}

// uploadMesh copies a tessellated mesh into the active vertex/index arenas
// and records (or coalesces into) a batch draw command. indices are local
// to pos (0-based); they are rebased onto the arena's absolute vertex
// offset before being appended to the shared index arena, per
// internal/arena's "indices are 16-bit, relative to MaxVertices" contract.
func (c *Context) uploadMesh(pos []float32, colors []uint32, indices []uint16, uniformColor uint32, uv arena.UV, typ batch.Type, handleID uint16) {
	n := uint32(len(pos) / 2)
	if n == 0 || len(indices) == 0 {
		return
	}
	if c.vb.Full(n) {
		c.arenas = append(c.arenas, c.vb)
		c.vb = c.arenaPool.Acquire()
		c.batcher.ForceNewDraw()
	}
	firstVertex := c.vb.Alloc(n)
	copy(c.vb.Pos[firstVertex*2:], pos)
	for i := uint32(0); i < n; i++ {
		col := uniformColor
		if colors != nil {
			col = colors[i]
		}
		c.vb.Color[firstVertex+i] = col
		c.vb.UV[firstVertex+i] = uv
	}
	rebased := make([]uint16, len(indices))
	for i, v := range indices {
		rebased[i] = uint16(firstVertex) + v
	}
	firstIndex := c.ib.Append(rebased)
	arenaID := uint32(len(c.arenas))
	_, _, merged := c.batcher.AllocDrawCommand(arenaID, firstVertex, firstIndex, n, uint32(len(indices)), typ, handleID, c.currentScissor())
	if merged {
		c.stats.MergedDraws++
	}
	c.stats.Vertices += int(n)
	c.stats.Indices += len(indices)
	c.stats.DrawCommands = len(c.batcher.DrawCommands)
}

func (c *Context) whiteUV() arena.UV {
	u, v := c.fonts.GetWhitePixelUV()
	return arena.UV{U: u, V: v}
}

// emitMeshes uploads meshes for one fillPath/strokePath call, transparently
// recording into or replaying from the active shape cache (spec §4.8).
//
//   - cacheReplay != nil: the command list is being played back under an
//     unchanged average scale. No tessellation runs at all; the meshes
//     recorded on a prior pass are pulled via the cursor and forward-
//     transformed through the current transform from object space back
//     into canvas space before upload.
//   - cacheRecord != nil: this is the command list's first (or scale-
//     invalidated) pass. tessellate runs as normal and its output is
//     uploaded directly, but a copy is also pushed into the cache in
//     object space (via the inverse of the transform current at this
//     call) for future replays.
//   - neither: plain immediate-mode draw, no cache involved.
//
// tessellate is called at most once, only when no replay is available.
func (c *Context) emitMeshes(typ batch.Type, handleID uint16, uv arena.UV, uniformColor uint32, tessellate func() []strokerimpl.Mesh) {
	if c.cacheReplay != nil {
		cmd, ok := c.cacheCursor.Advance(c.cacheReplay)
		if !ok {
			return
		}
		fwd := c.state.Transform.ToMatrix3()
		for _, m := range c.cacheReplay.MeshesFor(cmd) {
			pos := make([]float32, len(m.Pos))
			copy(pos, m.Pos)
			mathutil.BatchTransformPositions(fwd, pos)
			c.uploadMesh(pos, m.Colors, m.Indices, uniformColor, uv, typ, handleID)
		}
		return
	}

	meshes := tessellate()
	if c.cacheRecord != nil {
		inv := c.state.Transform.Invert().ToMatrix3()
		cmdIndex := c.cacheRecord.BeginCommand(inv)
		for _, m := range meshes {
			objPos := make([]float32, len(m.Pos))
			copy(objPos, m.Pos)
			mathutil.BatchTransformPositions(inv, objPos)
			c.cacheRecord.AddMesh(cmdIndex, objPos, m.Colors, m.Indices)
		}
		c.cacheRecord.EndCommand(cmdIndex)
	}
	for _, m := range meshes {
		c.uploadMesh(m.Pos, m.Colors, m.Indices, uniformColor, uv, typ, handleID)
	}
}

// fillMesh tessellates the accumulated path (one or more subpaths) into a
// single fill mesh: a fan for a single subpath; for more than one, the
// first subpath is the outer contour, every later one is bridged in as a
// hole, and the result is ear-clipped. The even-odd flag is passed to the
// stroker but does not change the triangulation. ok is false on
// tessellation failure (degenerate/self-intersecting input), matching spec
// §7's "no draw commands, log a warning" policy.
func (c *Context) fillMesh(color uint32, flags uint32) (strokerimpl.Mesh, bool) {
	subs := c.path.SubPaths()
	if len(subs) == 0 {
		return strokerimpl.Mesh{}, false
	}
	aa := flags&FlagAntialias != 0
	evenOdd := flags&FlagEvenOdd != 0
	c.stroker.Reset(c.state.AvgScale, baseTolerance, c.fringeWidth)

	if len(subs) == 1 {
		verts := c.transformedVertices(subs[0].Vertices)
		if aa {
			return c.stroker.ConvexFillAA(verts, color), true
		}
		return c.stroker.ConvexFill(verts, color), true
	}

	c.stroker.ConcaveFillBegin()
	for _, s := range subs {
		c.stroker.ConcaveFillAddContour(c.transformedVertices(s.Vertices))
	}
	if aa {
		return c.stroker.ConcaveFillEndAA(color, evenOdd)
	}
	return c.stroker.ConcaveFillEnd(color, evenOdd)
}

// fillMeshes wraps fillMesh's single-mesh result into the []Mesh shape
// emitMeshes' tessellate callback expects, logging and returning nil on
// tessellation failure (spec §7: "no draw commands, log a warning").
func (c *Context) fillMeshes(color uint32, flags uint32) []strokerimpl.Mesh {
	mesh, ok := c.fillMesh(color, flags)
	if !ok {
		Logger().Warn("vg: fill tessellation failed")
		return nil
	}
	return []strokerimpl.Mesh{mesh}
}

// FillPathColor fills the accumulated path with a solid color, sampling the
// font atlas's reserved white pixel so the shader's single textured-draw
// path also serves solid fills (spec §4.5).
func (c *Context) FillPathColor(color uint32, flags uint32) {
	color = scaleAlpha(color, c.state.Alpha)
	c.emitMeshes(batch.Textured, batch.HandleSentinel, c.whiteUV(), color, func() []strokerimpl.Mesh {
		return c.fillMeshes(color, flags)
	})
}

// FillPathGradient fills the accumulated path against a previously created
// gradient handle.
func (c *Context) FillPathGradient(gradientHandle uint32, flags uint32) {
	if gradientHandle >= uint32(len(c.gradients)) {
		Logger().Warn("vg: FillPathGradient with an invalid gradient handle")
		return
	}
	g := c.gradients[gradientHandle]
	color := scaleAlpha(g.OuterColor, c.state.Alpha)
	c.emitMeshes(batch.ColorGradient, uint16(gradientHandle), arena.UV{}, color, func() []strokerimpl.Mesh {
		return c.fillMeshes(color, flags)
	})
}

// FillPathPattern fills the accumulated path against a previously created
// image pattern handle.
func (c *Context) FillPathPattern(patternHandle uint32, flags uint32) {
	if patternHandle >= uint32(len(c.patterns)) {
		Logger().Warn("vg: FillPathPattern with an invalid pattern handle")
		return
	}
	color := scaleAlpha(packColor(White), c.state.Alpha)
	c.emitMeshes(batch.ImagePattern, uint16(patternHandle), arena.UV{}, color, func() []strokerimpl.Mesh {
		return c.fillMeshes(color, flags)
	})
}

// strokeMesh expands every subpath into a stroke mesh of the given width
// (canvas-space units, i.e. already scaled by AvgScale by the caller).
func (c *Context) strokeMesh(color uint32, width float32, flags uint32) []strokerimpl.Mesh {
	subs := c.path.SubPaths()
	if len(subs) == 0 {
		return nil
	}
	aa := flags&FlagAntialias != 0
	c.stroker.Reset(c.state.AvgScale, baseTolerance, c.fringeWidth)

	out := make([]strokerimpl.Mesh, 0, len(subs))
	for _, s := range subs {
		verts := c.transformedVertices(s.Vertices)
		if width <= c.fringeWidth {
			out = append(out, c.stroker.PolylineStrokeAAThin(verts, s.Closed, color))
			continue
		}
		if aa {
			out = append(out, c.stroker.PolylineStrokeAA(verts, s.Closed, width, c.state.LineCap, c.state.LineJoin, color))
		} else {
			out = append(out, c.stroker.PolylineStroke(verts, s.Closed, width, c.state.LineCap, c.state.LineJoin, color))
		}
	}
	return out
}

// StrokePathColor strokes the accumulated path with a solid color. Hairline
// strokes (width <= the AA fringe) route through PolylineStrokeAAThin and
// apply the quadratic coverage correction per §9's documented original
// behavior for the solid-color branch.
func (c *Context) StrokePathColor(color uint32, width float32, flags uint32) {
	scaled := c.scaledStrokeWidth(width, flags)
	thin := scaled <= c.fringeWidth
	base := color
	if thin {
		t := scaled / c.fringeWidth
		base = scaleAlpha(base, t*t)
	}
	base = scaleAlpha(base, c.state.Alpha)
	c.emitMeshes(batch.Textured, batch.HandleSentinel, c.whiteUV(), base, func() []strokerimpl.Mesh {
		return c.strokeMesh(base, scaled, flags)
	})
}

// StrokePathGradient strokes the accumulated path against a gradient.
func (c *Context) StrokePathGradient(gradientHandle uint32, width float32, flags uint32) {
	if gradientHandle >= uint32(len(c.gradients)) {
		Logger().Warn("vg: StrokePathGradient with an invalid gradient handle")
		return
	}
	g := c.gradients[gradientHandle]
	scaled := c.scaledStrokeWidth(width, flags)
	color := scaleAlpha(g.OuterColor, c.state.Alpha)
	c.emitMeshes(batch.ColorGradient, uint16(gradientHandle), arena.UV{}, color, func() []strokerimpl.Mesh {
		return c.strokeMesh(color, scaled, flags)
	})
}

// StrokePathPattern strokes the accumulated path against an image pattern.
// The quadratic thin-stroke coverage correction is applied on the opposite
// branch from StrokePathColor — this mirrors a documented inconsistency in
// the original renderer (spec §9 Open Question) and is preserved
// deliberately rather than "fixed", since the spec treats it as an accepted
// quirk rather than a defect to correct.
func (c *Context) StrokePathPattern(patternHandle uint32, width float32, flags uint32) {
	if patternHandle >= uint32(len(c.patterns)) {
		Logger().Warn("vg: StrokePathPattern with an invalid pattern handle")
		return
	}
	scaled := c.scaledStrokeWidth(width, flags)
	thin := scaled <= c.fringeWidth
	color := scaleAlpha(packColor(White), c.state.Alpha)
	if !thin {
		t := scaled / c.fringeWidth
		color = scaleAlpha(color, t*t)
	}
	c.emitMeshes(batch.ImagePattern, uint16(patternHandle), arena.UV{}, color, func() []strokerimpl.Mesh {
		return c.strokeMesh(color, scaled, flags)
	})
}

// IndexedTriList (spec §10 supplemented feature) uploads raw triangle
// geometry directly, bypassing Path/Stroker entirely — an escape hatch for
// callers that already have tessellated geometry (e.g. text layout glyph
// quads assembled outside the FontSystem collaborator, or imported vector
// art). pos is (x,y) pairs in user space; transformed the same way path
// vertices are.
func (c *Context) IndexedTriList(color uint32, pos []float32, indices []uint16) {
	verts := c.transformedVertices(pos)
	color = scaleAlpha(color, c.state.Alpha)
	c.uploadMesh(verts, nil, indices, color, c.whiteUV(), batch.Textured, batch.HandleSentinel)
}
