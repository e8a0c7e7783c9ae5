package cmdlist

// Recorder appends commands to a List's aligned command buffer. Each method
// corresponds 1:1 to a public cl* recorder named in spec §4.6.
type Recorder struct {
	l *List
}

// NewRecorder wraps l for recording.
func NewRecorder(l *List) *Recorder { return &Recorder{l: l} }

// emit aligns the payload to Alignment, writes the 2-field header (op,
// aligned size), then the payload and its padding, matching clAlloc's
// "align dataSize, grow cmdBuffer by max(needed, 256), write header then
// payload" (spec §4.6). Growth is handled by append's own amortized
// doubling; the max(needed,256) batching in the original is an allocator
// micro-optimization that Go's slice growth already provides.
func (r *Recorder) emit(op Op, payload []byte) {
	aligned := alignUp(len(payload), Alignment)
	header := make([]byte, 0, HeaderSize)
	header = appendU32(header, uint32(op))
	header = appendU32(header, uint32(aligned))
	r.l.Cmds = append(r.l.Cmds, header...)
	r.l.Cmds = append(r.l.Cmds, payload...)
	if pad := aligned - len(payload); pad > 0 {
		r.l.Cmds = append(r.l.Cmds, make([]byte, pad)...)
	}
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// --- Path construction -----------------------------------------------------

func (r *Recorder) BeginPath() { r.emit(OpBeginPath, nil) }

func (r *Recorder) MoveTo(x, y float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	r.emit(OpMoveTo, w.buf)
}

func (r *Recorder) LineTo(x, y float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	r.emit(OpLineTo, w.buf)
}

func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	var w writer
	w.f32(c1x)
	w.f32(c1y)
	w.f32(c2x)
	w.f32(c2y)
	w.f32(x)
	w.f32(y)
	r.emit(OpCubicTo, w.buf)
}

func (r *Recorder) QuadraticTo(cx, cy, x, y float32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(x)
	w.f32(y)
	r.emit(OpQuadraticTo, w.buf)
}

func (r *Recorder) Arc(cx, cy, radius, a1, a2 float32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(radius)
	w.f32(a1)
	w.f32(a2)
	r.emit(OpArc, w.buf)
}

func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float32) {
	var w writer
	w.f32(x1)
	w.f32(y1)
	w.f32(x2)
	w.f32(y2)
	w.f32(radius)
	r.emit(OpArcTo, w.buf)
}

func (r *Recorder) Rect(x, y, w2, h float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	r.emit(OpRect, w.buf)
}

func (r *Recorder) RoundedRect(x, y, w2, h, radius float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	w.f32(radius)
	r.emit(OpRoundedRect, w.buf)
}

func (r *Recorder) RoundedRectVarying(x, y, w2, h, rtl, rtr, rbr, rbl float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	w.f32(rtl)
	w.f32(rtr)
	w.f32(rbr)
	w.f32(rbl)
	r.emit(OpRoundedRectVarying, w.buf)
}

func (r *Recorder) Circle(cx, cy, radius float32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(radius)
	r.emit(OpCircle, w.buf)
}

func (r *Recorder) Ellipse(cx, cy, rx, ry float32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(rx)
	w.f32(ry)
	r.emit(OpEllipse, w.buf)
}

func (r *Recorder) Polyline(pts []float32, closed bool) {
	var w writer
	w.u32(uint32(len(pts) / 2))
	if closed {
		w.u8(1)
	} else {
		w.u8(0)
	}
	for _, p := range pts {
		w.f32(p)
	}
	r.emit(OpPolyline, w.buf)
}

func (r *Recorder) ClosePath() { r.emit(OpClosePath, nil) }

// --- Paint ------------------------------------------------------------------

func (r *Recorder) FillPathColor(color, flags uint32) {
	var w writer
	w.u32(color)
	w.u32(flags)
	r.emit(OpFillPathColor, w.buf)
}

// FillPathGradient records a fill against gradient, which must already carry
// the local-handle bit if it refers to a gradient created earlier in this
// same recording (see LocalHandle).
func (r *Recorder) FillPathGradient(gradient, flags uint32) {
	var w writer
	w.u32(gradient)
	w.u32(flags)
	r.emit(OpFillPathGradient, w.buf)
}

func (r *Recorder) FillPathPattern(pattern, flags uint32) {
	var w writer
	w.u32(pattern)
	w.u32(flags)
	r.emit(OpFillPathPattern, w.buf)
}

func (r *Recorder) StrokePathColor(color uint32, width float32, flags uint32) {
	var w writer
	w.u32(color)
	w.f32(width)
	w.u32(flags)
	r.emit(OpStrokePathColor, w.buf)
}

func (r *Recorder) StrokePathGradient(gradient uint32, width float32, flags uint32) {
	var w writer
	w.u32(gradient)
	w.f32(width)
	w.u32(flags)
	r.emit(OpStrokePathGradient, w.buf)
}

func (r *Recorder) StrokePathPattern(pattern uint32, width float32, flags uint32) {
	var w writer
	w.u32(pattern)
	w.f32(width)
	w.u32(flags)
	r.emit(OpStrokePathPattern, w.buf)
}

func (r *Recorder) IndexedTriList(color uint32, pos []float32, indices []uint16) {
	var w writer
	w.u32(color)
	w.u32(uint32(len(pos) / 2))
	w.u32(uint32(len(indices)))
	for _, p := range pos {
		w.f32(p)
	}
	for _, i := range indices {
		w.u16(i)
	}
	r.emit(OpIndexedTriList, w.buf)
}

func (r *Recorder) Text(config uint32, x, y float32, s string) {
	off, length := r.l.StoreString(s)
	var w writer
	w.u32(config)
	w.f32(x)
	w.f32(y)
	w.u32(off)
	w.u32(length)
	r.emit(OpText, w.buf)
}

func (r *Recorder) TextBox(config uint32, x, y, breakWidth float32, s string) {
	off, length := r.l.StoreString(s)
	var w writer
	w.u32(config)
	w.f32(x)
	w.f32(y)
	w.f32(breakWidth)
	w.u32(off)
	w.u32(length)
	r.emit(OpTextBox, w.buf)
}

// --- Clip ---------------------------------------------------------------

func (r *Recorder) BeginClip(rule uint8) {
	var w writer
	w.u8(rule)
	r.emit(OpBeginClip, w.buf)
}

func (r *Recorder) EndClip() { r.emit(OpEndClip, nil) }

func (r *Recorder) ResetClip() { r.emit(OpResetClip, nil) }

// --- Gradients / patterns -------------------------------------------------
//
// Creation ops record raw parameters and then bump l.NumGradients /
// l.NumImagePatterns themselves. The caller (the owning Context's
// recording-mode entry point) reads the count before the create call as the
// new local index, which a later FillPath/StrokePath embeds with
// LocalHandle into the referencing op.

func (r *Recorder) CreateLinearGradient(sx, sy, ex, ey float32, inner, outer uint32) {
	var w writer
	w.f32(sx)
	w.f32(sy)
	w.f32(ex)
	w.f32(ey)
	w.u32(inner)
	w.u32(outer)
	r.emit(OpCreateLinearGradient, w.buf)
	r.l.NumGradients++
}

func (r *Recorder) CreateBoxGradient(x, y, w2, h, radius, feather float32, inner, outer uint32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	w.f32(radius)
	w.f32(feather)
	w.u32(inner)
	w.u32(outer)
	r.emit(OpCreateBoxGradient, w.buf)
	r.l.NumGradients++
}

func (r *Recorder) CreateRadialGradient(cx, cy, inr, outr float32, inner, outer uint32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(inr)
	w.f32(outr)
	w.u32(inner)
	w.u32(outer)
	r.emit(OpCreateRadialGradient, w.buf)
	r.l.NumGradients++
}

func (r *Recorder) CreateSweepGradient(cx, cy, startAngle, sweep, feather float32, inner, outer uint32) {
	var w writer
	w.f32(cx)
	w.f32(cy)
	w.f32(startAngle)
	w.f32(sweep)
	w.f32(feather)
	w.u32(inner)
	w.u32(outer)
	r.emit(OpCreateSweepGradient, w.buf)
	r.l.NumGradients++
}

func (r *Recorder) CreateImagePattern(x, y, w2, h, angle, alpha float32, image uint32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	w.f32(angle)
	w.f32(alpha)
	w.u32(image)
	r.emit(OpCreateImagePattern, w.buf)
	r.l.NumImagePatterns++
}

// --- State ------------------------------------------------------------------

func (r *Recorder) PushState() { r.emit(OpPushState, nil) }
func (r *Recorder) PopState()  { r.emit(OpPopState, nil) }

func (r *Recorder) SetGlobalAlpha(alpha float32) {
	var w writer
	w.f32(alpha)
	r.emit(OpSetGlobalAlpha, w.buf)
}

func (r *Recorder) Translate(x, y float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	r.emit(OpTranslate, w.buf)
}

func (r *Recorder) Scale(x, y float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	r.emit(OpScale, w.buf)
}

func (r *Recorder) Rotate(angle float32) {
	var w writer
	w.f32(angle)
	r.emit(OpRotate, w.buf)
}

func (r *Recorder) ResetTransform() { r.emit(OpResetTransform, nil) }

func (r *Recorder) SetScissor(x, y, w2, h float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	r.emit(OpSetScissor, w.buf)
}

func (r *Recorder) IntersectScissor(x, y, w2, h float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	r.emit(OpIntersectScissor, w.buf)
}

func (r *Recorder) ResetScissor() { r.emit(OpResetScissor, nil) }

func (r *Recorder) SetViewBox(x, y, w2, h float32) {
	var w writer
	w.f32(x)
	w.f32(y)
	w.f32(w2)
	w.f32(h)
	r.emit(OpSetViewBox, w.buf)
}
