package vg

import (
	"github.com/gogpu/vg/internal/batch"
	"github.com/gogpu/vg/internal/cmdlist"
	"github.com/gogpu/vg/internal/handle"
	"github.com/gogpu/vg/internal/shapecache"
)

// CreateCommandList allocates an empty, long-lived command list with flags
// (cmdlist.Cacheable, cmdlist.AllowCommandCulling), returning its handle or
// handleInvalid once the table is at capacity (spec §4.6).
func (c *Context) CreateCommandList(flags uint32) uint32 {
	h := c.commandLists.Alloc(cmdlist.NewList(flags))
	if h == handle.Invalid {
		Logger().Warn("vg: command list table exhausted")
		return handleInvalid
	}
	return h
}

// DestroyCommandList frees listHandle. No-op on an invalid or already-freed
// handle.
func (c *Context) DestroyCommandList(listHandle uint32) {
	c.commandLists.Free(listHandle)
}

// ResetCommandList truncates listHandle for reuse, discarding any recorded
// commands and its shape cache.
func (c *Context) ResetCommandList(listHandle uint32) {
	l, ok := c.commandLists.Get(listHandle)
	if !ok {
		Logger().Warn("vg: ResetCommandList with an invalid handle")
		return
	}
	l.Reset()
}

// BeginRecording opens listHandle for capture: subsequent Cl* calls append
// to it instead of drawing immediately. Recordings do not nest (spec §4.6).
func (c *Context) BeginRecording(listHandle uint32) bool {
	if c.recorder != nil {
		Logger().Warn("vg: BeginRecording called while a recording is already open")
		return false
	}
	l, ok := c.commandLists.Get(listHandle)
	if !ok {
		Logger().Warn("vg: BeginRecording with an invalid handle")
		return false
	}
	c.recording = l
	c.recorder = cmdlist.NewRecorder(l)
	c.recordingHandle = listHandle
	return true
}

// EndRecording closes the recording opened by BeginRecording.
func (c *Context) EndRecording() {
	if c.recorder == nil {
		Logger().Warn("vg: EndRecording without a matching BeginRecording")
		return
	}
	c.recording = nil
	c.recorder = nil
	c.recordingHandle = handleInvalid
}

// SubmitCommandList plays listHandle back against this Context, as if every
// recorded call had been made directly (spec §4.7). If the list carries
// cmdlist.Cacheable, the shape cache recorded under its current average
// scale replays instead of re-tessellating; a scale change invalidates it
// and the next submission re-records (spec §4.8).
func (c *Context) SubmitCommandList(listHandle uint32) {
	l, ok := c.commandLists.Get(listHandle)
	if !ok {
		Logger().Warn("vg: SubmitCommandList with an invalid handle")
		return
	}

	// Save the caller's cache state (nil if this isn't a nested submission)
	// and push it, so a cacheable list that itself submits another
	// cacheable list can't clobber the outer list's in-progress recording
	// (spec §4.8's cache-stack discipline).
	c.cacheStack = append(c.cacheStack, cacheFrame{
		record:    c.cacheRecord,
		recordInv: c.cacheRecordInv,
		replay:    c.cacheReplay,
		cursor:    c.cacheCursor,
	})
	c.cacheRecord, c.cacheReplay, c.cacheCursor = nil, nil, nil

	var cache *shapecache.Cache
	recording := false
	if l.Flags&cmdlist.Cacheable != 0 {
		if l.Cache == nil {
			l.Cache = shapecache.New()
		}
		cache = l.Cache.(*shapecache.Cache)
		avgScale := c.state.AvgScale
		if cache.Valid(avgScale) {
			c.cacheReplay = cache
			c.cacheCursor = shapecache.NewCursor()
		} else {
			cache.Reset(avgScale)
			c.cacheRecord = cache
			c.cacheRecordInv = c.state.Transform.Invert().ToMatrix3()
			recording = true
		}
	}

	depth := c.playDepth
	c.playDepth++
	ok = cmdlist.Play(l, ctxDispatcher{c}, depth, c.cfg.MaxCommandListDepth)
	c.playDepth--
	if !ok {
		Logger().Warn("vg: SubmitCommandList recursion depth exceeded")
	}

	if recording && ok {
		cache.MarkPopulated()
	}

	top := len(c.cacheStack) - 1
	saved := c.cacheStack[top]
	c.cacheStack = c.cacheStack[:top]
	c.cacheRecord = saved.record
	c.cacheRecordInv = saved.recordInv
	c.cacheReplay = saved.replay
	c.cacheCursor = saved.cursor
}

// requireRecording reports whether a Cl* call is valid right now, logging
// (spec §7: "protocol violation, logged and ignored") if not.
func (c *Context) requireRecording() bool {
	if c.recorder == nil {
		Logger().Warn("vg: Cl* call outside BeginRecording/EndRecording")
		return false
	}
	return true
}

// --- Cl* recording entry points --------------------------------------------
//
// Each mirrors a direct entry point 1:1, appending to the open recording
// instead of drawing immediately (spec §4.6).

func (c *Context) ClBeginPath() {
	if c.requireRecording() {
		c.recorder.BeginPath()
	}
}
func (c *Context) ClMoveTo(x, y float32) {
	if c.requireRecording() {
		c.recorder.MoveTo(x, y)
	}
}
func (c *Context) ClLineTo(x, y float32) {
	if c.requireRecording() {
		c.recorder.LineTo(x, y)
	}
}
func (c *Context) ClCubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	if c.requireRecording() {
		c.recorder.CubicTo(c1x, c1y, c2x, c2y, x, y)
	}
}
func (c *Context) ClQuadraticTo(cx, cy, x, y float32) {
	if c.requireRecording() {
		c.recorder.QuadraticTo(cx, cy, x, y)
	}
}
func (c *Context) ClArc(cx, cy, radius, a1, a2 float32) {
	if c.requireRecording() {
		c.recorder.Arc(cx, cy, radius, a1, a2)
	}
}
func (c *Context) ClArcTo(x1, y1, x2, y2, radius float32) {
	if c.requireRecording() {
		c.recorder.ArcTo(x1, y1, x2, y2, radius)
	}
}
func (c *Context) ClRect(x, y, w, h float32) {
	if c.requireRecording() {
		c.recorder.Rect(x, y, w, h)
	}
}
func (c *Context) ClRoundedRect(x, y, w, h, radius float32) {
	if c.requireRecording() {
		c.recorder.RoundedRect(x, y, w, h, radius)
	}
}
func (c *Context) ClRoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl float32) {
	if c.requireRecording() {
		c.recorder.RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl)
	}
}
func (c *Context) ClCircle(cx, cy, radius float32) {
	if c.requireRecording() {
		c.recorder.Circle(cx, cy, radius)
	}
}
func (c *Context) ClEllipse(cx, cy, rx, ry float32) {
	if c.requireRecording() {
		c.recorder.Ellipse(cx, cy, rx, ry)
	}
}
func (c *Context) ClPolyline(pts []float32, closed bool) {
	if c.requireRecording() {
		c.recorder.Polyline(pts, closed)
	}
}
func (c *Context) ClClosePath() {
	if c.requireRecording() {
		c.recorder.ClosePath()
	}
}

func (c *Context) ClFillPathColor(color, flags uint32) {
	if c.requireRecording() {
		c.recorder.FillPathColor(color, flags)
	}
}

// ClFillPathGradient records a fill against gradient, which may be a local
// handle returned by ClCreateLinearGradient/ClCreateBoxGradient/etc. or a
// handle from a gradient created outside this recording.
func (c *Context) ClFillPathGradient(gradient, flags uint32) {
	if c.requireRecording() {
		c.recorder.FillPathGradient(gradient, flags)
	}
}
func (c *Context) ClFillPathPattern(pattern, flags uint32) {
	if c.requireRecording() {
		c.recorder.FillPathPattern(pattern, flags)
	}
}
func (c *Context) ClStrokePathColor(color uint32, width float32, flags uint32) {
	if c.requireRecording() {
		c.recorder.StrokePathColor(color, width, flags)
	}
}
func (c *Context) ClStrokePathGradient(gradient uint32, width float32, flags uint32) {
	if c.requireRecording() {
		c.recorder.StrokePathGradient(gradient, width, flags)
	}
}
func (c *Context) ClStrokePathPattern(pattern uint32, width float32, flags uint32) {
	if c.requireRecording() {
		c.recorder.StrokePathPattern(pattern, width, flags)
	}
}
func (c *Context) ClIndexedTriList(color uint32, pos []float32, indices []uint16) {
	if c.requireRecording() {
		c.recorder.IndexedTriList(color, pos, indices)
	}
}

// ClText records a glyph draw. fontID/sizePx/color are boxed into a
// TextConfig handle since the wire format carries one uint32 config operand
// (spec §4.6).
func (c *Context) ClText(fontID uint32, x, y, sizePx float32, s string, color uint32) {
	if !c.requireRecording() {
		return
	}
	cfg := c.CreateTextConfig(fontID, sizePx, color)
	c.recorder.Text(cfg, x, y, s)
}
func (c *Context) ClTextBox(fontID uint32, x, y, sizePx, breakWidth float32, s string, color uint32) {
	if !c.requireRecording() {
		return
	}
	cfg := c.CreateTextConfig(fontID, sizePx, color)
	c.recorder.TextBox(cfg, x, y, breakWidth, s)
}

func (c *Context) ClBeginClip(rule batch.ClipRule) {
	if c.requireRecording() {
		c.recorder.BeginClip(uint8(rule))
	}
}
func (c *Context) ClEndClip() {
	if c.requireRecording() {
		c.recorder.EndClip()
	}
}
func (c *Context) ClResetClip() {
	if c.requireRecording() {
		c.recorder.ResetClip()
	}
}

// ClCreateLinearGradient records a gradient and returns a local handle
// (cmdlist.LocalHandle) that ClFillPathGradient/ClStrokePathGradient calls
// later in this same recording can reference; SubmitCommandList relocates it
// to a real per-frame gradient handle at playback (spec §4.6/§4.7).
func (c *Context) ClCreateLinearGradient(sx, sy, ex, ey float32, inner, outer uint32) uint32 {
	if !c.requireRecording() {
		return handleInvalid
	}
	idx := c.recording.NumGradients
	c.recorder.CreateLinearGradient(sx, sy, ex, ey, inner, outer)
	return cmdlist.LocalHandle(idx)
}
func (c *Context) ClCreateBoxGradient(x, y, w, h, radius, feather float32, inner, outer uint32) uint32 {
	if !c.requireRecording() {
		return handleInvalid
	}
	idx := c.recording.NumGradients
	c.recorder.CreateBoxGradient(x, y, w, h, radius, feather, inner, outer)
	return cmdlist.LocalHandle(idx)
}
func (c *Context) ClCreateRadialGradient(cx, cy, inr, outr float32, inner, outer uint32) uint32 {
	if !c.requireRecording() {
		return handleInvalid
	}
	idx := c.recording.NumGradients
	c.recorder.CreateRadialGradient(cx, cy, inr, outr, inner, outer)
	return cmdlist.LocalHandle(idx)
}
func (c *Context) ClCreateSweepGradient(cx, cy, startAngle, sweep, feather float32, inner, outer uint32) uint32 {
	if !c.requireRecording() {
		return handleInvalid
	}
	idx := c.recording.NumGradients
	c.recorder.CreateSweepGradient(cx, cy, startAngle, sweep, feather, inner, outer)
	return cmdlist.LocalHandle(idx)
}

// ClCreateImagePattern records an image pattern and returns a local handle,
// same relocation scheme as ClCreateLinearGradient. image is always a real
// (non-local) image handle: images are long-lived, never recorded.
func (c *Context) ClCreateImagePattern(x, y, w, h, angle, alpha float32, image uint32) uint32 {
	if !c.requireRecording() {
		return handleInvalid
	}
	idx := c.recording.NumImagePatterns
	c.recorder.CreateImagePattern(x, y, w, h, angle, alpha, image)
	return cmdlist.LocalHandle(idx)
}

func (c *Context) ClPushState() {
	if c.requireRecording() {
		c.recorder.PushState()
	}
}
func (c *Context) ClPopState() {
	if c.requireRecording() {
		c.recorder.PopState()
	}
}
func (c *Context) ClSetGlobalAlpha(alpha float32) {
	if c.requireRecording() {
		c.recorder.SetGlobalAlpha(alpha)
	}
}
func (c *Context) ClTranslate(x, y float32) {
	if c.requireRecording() {
		c.recorder.Translate(x, y)
	}
}
func (c *Context) ClScale(x, y float32) {
	if c.requireRecording() {
		c.recorder.Scale(x, y)
	}
}
func (c *Context) ClRotate(angle float32) {
	if c.requireRecording() {
		c.recorder.Rotate(angle)
	}
}
func (c *Context) ClResetTransform() {
	if c.requireRecording() {
		c.recorder.ResetTransform()
	}
}
func (c *Context) ClSetScissor(x, y, w, h float32) {
	if c.requireRecording() {
		c.recorder.SetScissor(x, y, w, h)
	}
}
func (c *Context) ClIntersectScissor(x, y, w, h float32) {
	if c.requireRecording() {
		c.recorder.IntersectScissor(x, y, w, h)
	}
}
func (c *Context) ClResetScissor() {
	if c.requireRecording() {
		c.recorder.ResetScissor()
	}
}
func (c *Context) ClSetViewBox(x, y, w, h float32) {
	if c.requireRecording() {
		c.recorder.SetViewBox(x, y, w, h)
	}
}

// ctxDispatcher adapts *Context to cmdlist.Dispatcher. Most methods are
// promoted directly from the embedded *Context, whose direct entry points
// (path_api.go, paint_api.go, context.go) already match Dispatcher's
// signatures exactly. The handful that don't — because the public API
// returns a handle/error where Dispatcher needs void or a resulting
// scissor/cap extent, or takes richer parameters than the wire format
// carries — are overridden explicitly below; an explicitly defined method
// always shadows a promoted one of the same name (spec §4.7).
type ctxDispatcher struct{ *Context }

func (d ctxDispatcher) BeginClip(rule uint8) { d.Context.BeginClip(batch.ClipRule(rule)) }

func (d ctxDispatcher) CreateLinearGradient(sx, sy, ex, ey float32, inner, outer uint32) {
	d.Context.CreateLinearGradient(sx, sy, ex, ey, inner, outer)
}
func (d ctxDispatcher) CreateBoxGradient(x, y, w, h, radius, feather float32, inner, outer uint32) {
	d.Context.CreateBoxGradient(x, y, w, h, radius, feather, inner, outer)
}
func (d ctxDispatcher) CreateRadialGradient(cx, cy, inr, outr float32, inner, outer uint32) {
	d.Context.CreateRadialGradient(cx, cy, inr, outr, inner, outer)
}
func (d ctxDispatcher) CreateSweepGradient(cx, cy, startAngle, sweep, feather float32, inner, outer uint32) {
	d.Context.CreateSweepGradient(cx, cy, startAngle, sweep, feather, inner, outer)
}
func (d ctxDispatcher) CreateImagePattern(x, y, w, h, angle, alpha float32, image uint32) {
	d.Context.CreateImagePattern(x, y, w, h, angle, alpha, image)
}

func (d ctxDispatcher) PushState() { _ = d.Context.PushState() }

func (d ctxDispatcher) PopState() (scissorW, scissorH float32) {
	d.Context.PopState()
	_, _, w, h := d.Context.GetScissor()
	return w, h
}

func (d ctxDispatcher) SetScissor(x, y, w, h float32) (resultW, resultH float32) {
	d.Context.SetScissor(x, y, w, h)
	_, _, rw, rh := d.Context.GetScissor()
	return rw, rh
}

func (d ctxDispatcher) IntersectScissor(x, y, w, h float32) (resultW, resultH float32) {
	d.Context.IntersectScissor(x, y, w, h)
	_, _, rw, rh := d.Context.GetScissor()
	return rw, rh
}

func (d ctxDispatcher) Text(config uint32, x, y float32, s string) {
	d.Context.textWithConfig(config, x, y, s)
}
func (d ctxDispatcher) TextBox(config uint32, x, y, breakWidth float32, s string) {
	d.Context.textBoxWithConfig(config, x, y, breakWidth, s)
}

func (d ctxDispatcher) NextGradientID() uint32     { return d.Context.gradCounter.Count() }
func (d ctxDispatcher) NextImagePatternID() uint32 { return d.Context.patternCounter.Count() }
