package vg

// Path construction (spec §4.9): every call is a thin forward to the Path
// collaborator, recorded in user space at whatever tessellation tolerance
// the current average scale implies. Paint calls (paint_api.go) resolve the
// accumulated subpaths into canvas-space meshes at fill/stroke time.

const baseTolerance = 0.25

// beginPath rebinds the Path collaborator's tolerance to the current
// average scale and discards any previously accumulated subpaths, matching
// the collaborator's reset(avgScale, tol) entry point (spec §6).
func (c *Context) beginPath() {
	var tol float32 = baseTolerance
	if c.state.AvgScale > 0 {
		tol = baseTolerance / c.state.AvgScale
	}
	c.path.Reset(c.state.AvgScale, tol)
}

// BeginPath starts a new path, discarding any subpaths accumulated so far.
func (c *Context) BeginPath() { c.beginPath() }

func (c *Context) MoveTo(x, y float32) { c.path.MoveTo(x, y) }
func (c *Context) LineTo(x, y float32) { c.path.LineTo(x, y) }

func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Context) QuadraticTo(cx, cy, x, y float32) { c.path.QuadraticTo(cx, cy, x, y) }
func (c *Context) Arc(cx, cy, radius, a1, a2 float32) { c.path.Arc(cx, cy, radius, a1, a2) }
func (c *Context) ArcTo(x1, y1, x2, y2, radius float32) { c.path.ArcTo(x1, y1, x2, y2, radius) }
func (c *Context) Rect(x, y, w, h float32) { c.path.Rect(x, y, w, h) }

func (c *Context) RoundedRect(x, y, w, h, radius float32) {
	c.path.RoundedRect(x, y, w, h, radius)
}

func (c *Context) RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl float32) {
	c.path.RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl)
}

func (c *Context) Circle(cx, cy, radius float32)   { c.path.Circle(cx, cy, radius) }
func (c *Context) Ellipse(cx, cy, rx, ry float32)  { c.path.Ellipse(cx, cy, rx, ry) }
func (c *Context) Polyline(pts []float32, closed bool) { c.path.Polyline(pts, closed) }
func (c *Context) ClosePath()                      { c.path.ClosePath() }
