package cmdlist

import "encoding/binary"

// Dispatcher is implemented by the owning Context: every method here is the
// same direct ctx* entry point that the public API calls, per spec §4.7
// ("dispatches to the same primitive entry points that direct calls use").
//
// SetScissor/IntersectScissor/PopState return the resulting scissor extents
// so Play can evaluate command culling (spec §4.7) without reaching into
// Context internals.
type Dispatcher interface {
	BeginPath()
	MoveTo(x, y float32)
	LineTo(x, y float32)
	CubicTo(c1x, c1y, c2x, c2y, x, y float32)
	QuadraticTo(cx, cy, x, y float32)
	Arc(cx, cy, radius, a1, a2 float32)
	ArcTo(x1, y1, x2, y2, radius float32)
	Rect(x, y, w, h float32)
	RoundedRect(x, y, w, h, radius float32)
	RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl float32)
	Circle(cx, cy, radius float32)
	Ellipse(cx, cy, rx, ry float32)
	Polyline(pts []float32, closed bool)
	ClosePath()

	FillPathColor(color, flags uint32)
	FillPathGradient(gradient, flags uint32)
	FillPathPattern(pattern, flags uint32)
	StrokePathColor(color uint32, width float32, flags uint32)
	StrokePathGradient(gradient uint32, width float32, flags uint32)
	StrokePathPattern(pattern uint32, width float32, flags uint32)
	IndexedTriList(color uint32, pos []float32, indices []uint16)
	Text(config uint32, x, y float32, s string)
	TextBox(config uint32, x, y, breakWidth float32, s string)

	BeginClip(rule uint8)
	EndClip()
	ResetClip()

	CreateLinearGradient(sx, sy, ex, ey float32, inner, outer uint32)
	CreateBoxGradient(x, y, w, h, radius, feather float32, inner, outer uint32)
	CreateRadialGradient(cx, cy, inr, outr float32, inner, outer uint32)
	CreateSweepGradient(cx, cy, startAngle, sweep, feather float32, inner, outer uint32)
	CreateImagePattern(x, y, w, h, angle, alpha float32, image uint32)

	PushState()
	PopState() (scissorW, scissorH float32)
	SetGlobalAlpha(alpha float32)
	Translate(x, y float32)
	Scale(x, y float32)
	Rotate(angle float32)
	ResetTransform()
	SetScissor(x, y, w, h float32) (resultW, resultH float32)
	IntersectScissor(x, y, w, h float32) (resultW, resultH float32)
	ResetScissor()
	SetViewBox(x, y, w, h float32)

	NextGradientID() uint32
	NextImagePatternID() uint32
}

// relocate resolves a possibly-local gradient/image-pattern handle recorded
// during capture into a global handle for this playback, per spec §4.7.
func relocate(h, firstID uint32) uint32 {
	if IsLocal(h) {
		return firstID + uint32(LocalIndex(h))
	}
	return h
}

// Play walks l's command buffer once, dispatching each command to d.
// depth is the current recursion depth (0 for a direct, non-nested
// submission); Play refuses to run at depth >= maxDepth, matching spec
// §4.7's recursion guard, and returns false in that case without touching
// d (a protocol violation, logged and no-op by the caller per §7).
func Play(l *List, d Dispatcher, depth, maxDepth int) bool {
	if depth >= maxDepth {
		return false
	}

	firstGradientID := d.NextGradientID()
	firstImagePatternID := d.NextImagePatternID()

	d.PushState()
	skipCmds := false
	culling := l.Flags&AllowCommandCulling != 0

	cmds := l.Cmds
	pos := 0
	for pos < len(cmds) {
		op := Op(binary.LittleEndian.Uint32(cmds[pos:]))
		size := int(binary.LittleEndian.Uint32(cmds[pos+4:]))
		payloadStart := pos + HeaderSize
		r := reader{buf: cmds[payloadStart : payloadStart+size]}
		next := payloadStart + size

		switch op {
		case OpBeginPath:
			if !skipCmds {
				d.BeginPath()
			}
		case OpMoveTo:
			x, y := r.f32(), r.f32()
			if !skipCmds {
				d.MoveTo(x, y)
			}
		case OpLineTo:
			x, y := r.f32(), r.f32()
			if !skipCmds {
				d.LineTo(x, y)
			}
		case OpCubicTo:
			c1x, c1y, c2x, c2y, x, y := r.f32(), r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.CubicTo(c1x, c1y, c2x, c2y, x, y)
			}
		case OpQuadraticTo:
			cx, cy, x, y := r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.QuadraticTo(cx, cy, x, y)
			}
		case OpArc:
			cx, cy, radius, a1, a2 := r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.Arc(cx, cy, radius, a1, a2)
			}
		case OpArcTo:
			x1, y1, x2, y2, radius := r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.ArcTo(x1, y1, x2, y2, radius)
			}
		case OpRect:
			x, y, w, h := r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.Rect(x, y, w, h)
			}
		case OpRoundedRect:
			x, y, w, h, radius := r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.RoundedRect(x, y, w, h, radius)
			}
		case OpRoundedRectVarying:
			x, y, w, h := r.f32(), r.f32(), r.f32(), r.f32()
			rtl, rtr, rbr, rbl := r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl)
			}
		case OpCircle:
			cx, cy, radius := r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.Circle(cx, cy, radius)
			}
		case OpEllipse:
			cx, cy, rx, ry := r.f32(), r.f32(), r.f32(), r.f32()
			if !skipCmds {
				d.Ellipse(cx, cy, rx, ry)
			}
		case OpPolyline:
			n := r.u32()
			closed := r.u8() != 0
			pts := make([]float32, n*2)
			for i := range pts {
				pts[i] = r.f32()
			}
			if !skipCmds {
				d.Polyline(pts, closed)
			}
		case OpClosePath:
			if !skipCmds {
				d.ClosePath()
			}

		case OpFillPathColor:
			color, flags := r.u32(), r.u32()
			if !skipCmds {
				d.FillPathColor(color, flags)
			}
		case OpFillPathGradient:
			gradient, flags := r.u32(), r.u32()
			gradient = relocate(gradient, firstGradientID)
			if !skipCmds {
				d.FillPathGradient(gradient, flags)
			}
		case OpFillPathPattern:
			pattern, flags := r.u32(), r.u32()
			pattern = relocate(pattern, firstImagePatternID)
			if !skipCmds {
				d.FillPathPattern(pattern, flags)
			}
		case OpStrokePathColor:
			color, width, flags := r.u32(), r.f32(), r.u32()
			if !skipCmds {
				d.StrokePathColor(color, width, flags)
			}
		case OpStrokePathGradient:
			gradient, width, flags := r.u32(), r.f32(), r.u32()
			gradient = relocate(gradient, firstGradientID)
			if !skipCmds {
				d.StrokePathGradient(gradient, width, flags)
			}
		case OpStrokePathPattern:
			pattern, width, flags := r.u32(), r.f32(), r.u32()
			pattern = relocate(pattern, firstImagePatternID)
			if !skipCmds {
				d.StrokePathPattern(pattern, width, flags)
			}
		case OpIndexedTriList:
			color := r.u32()
			numV, numI := r.u32(), r.u32()
			pos2 := make([]float32, numV*2)
			for i := range pos2 {
				pos2[i] = r.f32()
			}
			idx := make([]uint16, numI)
			for i := range idx {
				idx[i] = r.u16()
			}
			if !skipCmds {
				d.IndexedTriList(color, pos2, idx)
			}
		case OpText:
			config, x, y := r.u32(), r.f32(), r.f32()
			off, length := r.u32(), r.u32()
			if !skipCmds {
				d.Text(config, x, y, l.LoadString(off, length))
			}
		case OpTextBox:
			config, x, y, breakWidth := r.u32(), r.f32(), r.f32(), r.f32()
			off, length := r.u32(), r.u32()
			if !skipCmds {
				d.TextBox(config, x, y, breakWidth, l.LoadString(off, length))
			}

		case OpBeginClip:
			rule := r.u8()
			d.BeginClip(rule)
		case OpEndClip:
			d.EndClip()
		case OpResetClip:
			d.ResetClip()

		case OpCreateLinearGradient:
			sx, sy, ex, ey := r.f32(), r.f32(), r.f32(), r.f32()
			inner, outer := r.u32(), r.u32()
			d.CreateLinearGradient(sx, sy, ex, ey, inner, outer)
		case OpCreateBoxGradient:
			x, y, w, h, radius, feather := r.f32(), r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			inner, outer := r.u32(), r.u32()
			d.CreateBoxGradient(x, y, w, h, radius, feather, inner, outer)
		case OpCreateRadialGradient:
			cx, cy, inr, outr := r.f32(), r.f32(), r.f32(), r.f32()
			inner, outer := r.u32(), r.u32()
			d.CreateRadialGradient(cx, cy, inr, outr, inner, outer)
		case OpCreateSweepGradient:
			cx, cy, startAngle, sweep, feather := r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			inner, outer := r.u32(), r.u32()
			d.CreateSweepGradient(cx, cy, startAngle, sweep, feather, inner, outer)
		case OpCreateImagePattern:
			x, y, w, h, angle, alpha := r.f32(), r.f32(), r.f32(), r.f32(), r.f32(), r.f32()
			image := r.u32()
			d.CreateImagePattern(x, y, w, h, angle, alpha, image)

		case OpPushState:
			d.PushState()
		case OpPopState:
			w, h := d.PopState()
			if culling {
				skipCmds = w < 1 || h < 1
			}
		case OpSetGlobalAlpha:
			d.SetGlobalAlpha(r.f32())
		case OpTranslate:
			x, y := r.f32(), r.f32()
			d.Translate(x, y)
		case OpScale:
			x, y := r.f32(), r.f32()
			d.Scale(x, y)
		case OpRotate:
			d.Rotate(r.f32())
		case OpResetTransform:
			d.ResetTransform()
		case OpSetScissor:
			x, y, w, h := r.f32(), r.f32(), r.f32(), r.f32()
			rw, rh := d.SetScissor(x, y, w, h)
			if culling {
				skipCmds = rw < 1 || rh < 1
			}
		case OpIntersectScissor:
			x, y, w, h := r.f32(), r.f32(), r.f32(), r.f32()
			rw, rh := d.IntersectScissor(x, y, w, h)
			if culling {
				skipCmds = rw < 1 || rh < 1
			}
		case OpResetScissor:
			d.ResetScissor()
			skipCmds = false
		case OpSetViewBox:
			x, y, w, h := r.f32(), r.f32(), r.f32(), r.f32()
			d.SetViewBox(x, y, w, h)
		}

		pos = next
	}

	d.PopState()
	d.ResetClip()
	return true
}
