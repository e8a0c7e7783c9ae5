// Package pathimpl is the default Path collaborator: path construction
// primitives plus curve flattening into polylines, tolerance-driven by the
// current average scale.
//
// Grounded on the teacher's path.go (PathElement/Path construction API),
// path_builder.go (rect/rounded-rect/circle/ellipse convenience shapes) and
// curve.go (QuadBez/CubicBez subdivision, generalized here from an
// element-list-then-transform design to eager flattening, since the spec's
// Path collaborator returns already-flattened per-subpath vertices rather
// than a resolution-independent element list).
package pathimpl

import "math"

// SubPath is a maximal contiguous run of flattened vertices between
// moveTo/closePath boundaries (spec glossary: "Subpath").
type SubPath struct {
	Vertices []float32 // 2 floats per vertex, screen space
	Closed   bool
}

// Path accumulates one or more SubPaths, flattening curves to line segments
// at construction time using the tolerance set by Reset.
type Path struct {
	avgScale float32
	tol      float32

	subpaths []SubPath
	cur      []float32
	closed   bool

	startX, startY float32
	curX, curY     float32
	hasCurrent     bool
}

// New returns an empty Path.
func New() *Path {
	return &Path{tol: 0.25}
}

// Reset clears all subpaths and rebinds the flattening tolerance, matching
// the collaborator's reset(avgScale, tol) entry point (spec §6).
func (p *Path) Reset(avgScale, tol float32) {
	p.avgScale = avgScale
	p.tol = tol
	p.subpaths = p.subpaths[:0]
	p.cur = p.cur[:0]
	p.closed = false
	p.hasCurrent = false
}

func (p *Path) finishSubpath() {
	if len(p.cur) >= 2 {
		verts := make([]float32, len(p.cur))
		copy(verts, p.cur)
		p.subpaths = append(p.subpaths, SubPath{Vertices: verts, Closed: p.closed})
	}
	p.cur = p.cur[:0]
	p.closed = false
}

func (p *Path) appendVertex(x, y float32) {
	p.cur = append(p.cur, x, y)
	p.curX, p.curY = x, y
	p.hasCurrent = true
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.finishSubpath()
	p.startX, p.startY = x, y
	p.appendVertex(x, y)
}

// LineTo appends a straight segment to (x, y).
func (p *Path) LineTo(x, y float32) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	p.appendVertex(x, y)
}

// ClosePath closes the current subpath back to its start point.
func (p *Path) ClosePath() {
	if len(p.cur) < 2 {
		return
	}
	p.closed = true
	p.curX, p.curY = p.startX, p.startY
}

// CubicTo flattens a cubic Bezier from the current point through two
// control points to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	if !p.hasCurrent {
		p.MoveTo(c1x, c1y)
	}
	p.flattenCubic(p.curX, p.curY, c1x, c1y, c2x, c2y, x, y, 0)
	p.appendVertex(x, y)
}

// QuadraticTo flattens a quadratic Bezier from the current point through
// one control point to (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float32) {
	if !p.hasCurrent {
		p.MoveTo(cx, cy)
	}
	// Raise to cubic (matches curve.go's QuadBez.Raise idiom) so a single
	// flattening routine serves both curve orders.
	c1x := p.curX + (2.0/3.0)*(cx-p.curX)
	c1y := p.curY + (2.0/3.0)*(cy-p.curY)
	c2x := x + (2.0/3.0)*(cx-x)
	c2y := y + (2.0/3.0)*(cy-y)
	p.flattenCubic(p.curX, p.curY, c1x, c1y, c2x, c2y, x, y, 0)
	p.appendVertex(x, y)
}

const maxFlattenDepth = 24

// flattenCubic recursively subdivides until the curve is flat within p.tol,
// emitting interior points (the final endpoint is appended by the caller).
func (p *Path) flattenCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32, depth int) {
	if depth >= maxFlattenDepth || cubicFlatEnough(x0, y0, c1x, c1y, c2x, c2y, x1, y1, p.tol) {
		return
	}

	// De Casteljau subdivision at t=0.5.
	x01, y01 := mid(x0, y0, c1x, c1y)
	x12, y12 := mid(c1x, c1y, c2x, c2y)
	x23, y23 := mid(c2x, c2y, x1, y1)
	x012, y012 := mid(x01, y01, x12, y12)
	x123, y123 := mid(x12, y12, x23, y23)
	xm, ym := mid(x012, y012, x123, y123)

	p.flattenCubic(x0, y0, x01, y01, x012, y012, xm, ym, depth+1)
	p.appendVertex(xm, ym)
	p.flattenCubic(xm, ym, x123, y123, x23, y23, x1, y1, depth+1)
}

func mid(x0, y0, x1, y1 float32) (float32, float32) {
	return (x0 + x1) / 2, (y0 + y1) / 2
}

// cubicFlatEnough tests the control points' deviation from the chord.
func cubicFlatEnough(x0, y0, c1x, c1y, c2x, c2y, x1, y1, tol float32) bool {
	d1 := pointLineDistance(c1x, c1y, x0, y0, x1, y1)
	d2 := pointLineDistance(c2x, c2y, x0, y0, x1, y1)
	return d1 <= tol && d2 <= tol
}

func pointLineDistance(px, py, x0, y0, x1, y1 float32) float32 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		ddx, ddy := px-x0, py-y0
		return float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
	}
	cross := dx*(y0-py) - dy*(x0-px)
	return float32(math.Abs(float64(cross))) / float32(math.Sqrt(float64(lenSq)))
}

// Arc appends a circular arc from angle a1 to a2 (radians) around (cx, cy),
// flattened directly (no cubic intermediate) since the endpoint tangents
// are already known analytically.
func (p *Path) Arc(cx, cy, radius, a1, a2 float32) {
	const twoPi = 2 * math.Pi
	span := float64(a2 - a1)
	// Choose a per-segment angle so the sagitta stays within tolerance.
	maxAngle := 2 * math.Acos(1-float64(p.tol)/math.Max(float64(radius), 0.001))
	if maxAngle <= 0 || math.IsNaN(maxAngle) {
		maxAngle = math.Pi / 8
	}
	steps := int(math.Ceil(math.Abs(span) / maxAngle))
	if steps < 1 {
		steps = 1
	}
	step := span / float64(steps)

	x0 := cx + radius*float32(math.Cos(float64(a1)))
	y0 := cy + radius*float32(math.Sin(float64(a1)))
	if !p.hasCurrent {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	for i := 1; i <= steps; i++ {
		a := float64(a1) + step*float64(i)
		p.appendVertex(cx+radius*float32(math.Cos(a)), cy+radius*float32(math.Sin(a)))
	}
	_ = twoPi
}

// ArcTo appends a tangent arc of the given radius between the current point
// and (x1, y1), bending toward (x2, y2), matching the common two-tangent
// arcTo convention.
func (p *Path) ArcTo(x1, y1, x2, y2, radius float32) {
	if !p.hasCurrent {
		p.MoveTo(x1, y1)
		return
	}
	x0, y0 := p.curX, p.curY
	dx0, dy0 := x0-x1, y0-y1
	dx1, dy1 := x2-x1, y2-y1
	len0 := float32(math.Sqrt(float64(dx0*dx0 + dy0*dy0)))
	len1 := float32(math.Sqrt(float64(dx1*dx1 + dy1*dy1)))
	if len0 < 1e-6 || len1 < 1e-6 || radius <= 0 {
		p.LineTo(x1, y1)
		return
	}
	dx0, dy0 = dx0/len0, dy0/len0
	dx1, dy1 = dx1/len1, dy1/len1

	angle := float32(math.Acos(float64(clampF(dx0*dx1+dy0*dy1, -1, 1))))
	if angle < 1e-4 {
		p.LineTo(x1, y1)
		return
	}
	dist := radius / float32(math.Tan(float64(angle)/2))

	tan0x, tan0y := x1+dx0*dist, y1+dy0*dist
	tan1x, tan1y := x1+dx1*dist, y1+dy1*dist

	p.LineTo(tan0x, tan0y)

	// Bisector-derived center and start/end angles for the connecting arc.
	bisectX, bisectY := dx0+dx1, dy0+dy1
	bisectLen := float32(math.Sqrt(float64(bisectX*bisectX + bisectY*bisectY)))
	if bisectLen < 1e-6 {
		p.LineTo(tan1x, tan1y)
		return
	}
	centerDist := radius / float32(math.Sin(float64(angle)/2))
	cx := x1 + (bisectX/bisectLen)*centerDist
	cy := y1 + (bisectY/bisectLen)*centerDist

	startAngle := float32(math.Atan2(float64(tan0y-cy), float64(tan0x-cx)))
	endAngle := float32(math.Atan2(float64(tan1y-cy), float64(tan1x-cx)))
	p.Arc(cx, cy, radius, startAngle, endAngle)
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect appends a rectangle as a closed subpath.
func (p *Path) Rect(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// RoundedRect appends a rectangle with a uniform corner radius.
func (p *Path) RoundedRect(x, y, w, h, radius float32) {
	p.RoundedRectVarying(x, y, w, h, radius, radius, radius, radius)
}

// RoundedRectVarying appends a rectangle with independent per-corner radii:
// top-left, top-right, bottom-right, bottom-left.
func (p *Path) RoundedRectVarying(x, y, w, h, rtl, rtr, rbr, rbl float32) {
	maxR := float32(math.Min(float64(w), float64(h))) / 2
	clampR := func(r float32) float32 {
		if r > maxR {
			return maxR
		}
		if r < 0 {
			return 0
		}
		return r
	}
	rtl, rtr, rbr, rbl = clampR(rtl), clampR(rtr), clampR(rbr), clampR(rbl)

	p.MoveTo(x+rtl, y)
	p.LineTo(x+w-rtr, y)
	if rtr > 0 {
		p.Arc(x+w-rtr, y+rtr, rtr, -math.Pi/2, 0)
	}
	p.LineTo(x+w, y+h-rbr)
	if rbr > 0 {
		p.Arc(x+w-rbr, y+h-rbr, rbr, 0, math.Pi/2)
	}
	p.LineTo(x+rbl, y+h)
	if rbl > 0 {
		p.Arc(x+rbl, y+h-rbl, rbl, math.Pi/2, math.Pi)
	}
	p.LineTo(x, y+rtl)
	if rtl > 0 {
		p.Arc(x+rtl, y+rtl, rtl, math.Pi, 3*math.Pi/2)
	}
	p.ClosePath()
}

// Circle appends a circle as a closed subpath.
func (p *Path) Circle(cx, cy, radius float32) {
	p.Ellipse(cx, cy, radius, radius)
}

// Ellipse appends an ellipse as a closed subpath, flattened directly via
// parametric sampling (avoids the eccentricity error of a 4-cubic
// approximation at extreme aspect ratios).
func (p *Path) Ellipse(cx, cy, rx, ry float32) {
	maxR := float32(math.Max(float64(rx), float64(ry)))
	maxAngle := 2 * math.Acos(1-float64(p.tol)/math.Max(float64(maxR), 0.001))
	if maxAngle <= 0 || math.IsNaN(maxAngle) {
		maxAngle = math.Pi / 16
	}
	steps := int(math.Ceil(2 * math.Pi / maxAngle))
	if steps < 8 {
		steps = 8
	}
	p.MoveTo(cx+rx, cy)
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p.appendVertex(cx+rx*float32(math.Cos(a)), cy+ry*float32(math.Sin(a)))
	}
	p.ClosePath()
}

// Polyline appends pts (x0,y0,x1,y1,...) verbatim as a single subpath, the
// low-level entry point behind the public polyline() operation.
func (p *Path) Polyline(pts []float32, closed bool) {
	if len(pts) < 2 {
		return
	}
	p.finishSubpath()
	p.cur = append(p.cur, pts...)
	p.curX, p.curY = pts[len(pts)-2], pts[len(pts)-1]
	p.startX, p.startY = pts[0], pts[1]
	p.hasCurrent = true
	if closed {
		p.ClosePath()
	}
}

// NumSubPaths returns the number of finished subpaths (the currently open
// one, if any, is included as if closed by an implicit flush).
func (p *Path) NumSubPaths() int {
	if len(p.cur) >= 2 {
		return len(p.subpaths) + 1
	}
	return len(p.subpaths)
}

// SubPaths returns every subpath, finishing any in-progress one first.
func (p *Path) SubPaths() []SubPath {
	p.finishSubpath()
	return p.subpaths
}

// Vertices returns the flattened vertex slice for subpath i.
func (p *Path) Vertices(i int) []float32 {
	return p.SubPaths()[i].Vertices
}

// NumVertices returns the vertex count for subpath i.
func (p *Path) NumVertices(i int) int {
	return len(p.Vertices(i)) / 2
}

// Close releases the Path's resources. The default implementation holds no
// external resources, so this only clears buffered vertices.
func (p *Path) Close() {
	p.subpaths = nil
	p.cur = nil
	p.hasCurrent = false
}
