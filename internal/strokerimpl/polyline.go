package strokerimpl

import "math"

const defaultMiterLimit = 4.0

// PolylineStroke expands pts (x,y pairs) into a stroke mesh width units
// wide. Open paths get butt, round or square caps as cap selects. The join
// argument is not used: every interior vertex is joined with a miter whose
// length is clamped to the default miter limit, so round and bevel joins
// are drawn the same way. Grounded on the per-vertex averaged-normal
// offset technique in internal/stroke/expander.go's doJoin, simplified
// from its forward/backward-path-builder design into direct quad strip
// emission since Stroker returns a flat mesh rather than a fill path.
func (s *Stroker) PolylineStroke(pts []float32, closed bool, width float32, cap CapStyle, join JoinStyle, color uint32) Mesh {
	return s.strokePolyline(pts, closed, width, cap, join, color, false)
}

// PolylineStrokeAA is PolylineStroke with a one-fringe translucent border
// added to both long edges of the ribbon.
func (s *Stroker) PolylineStrokeAA(pts []float32, closed bool, width float32, cap CapStyle, join JoinStyle, color uint32) Mesh {
	return s.strokePolyline(pts, closed, width, cap, join, color, true)
}

// PolylineStrokeAAThin strokes a hairline (<=1px) path using only the AA
// fringe to approximate coverage, since a 1px-wide opaque core would alias.
func (s *Stroker) PolylineStrokeAAThin(pts []float32, closed bool, color uint32) Mesh {
	return s.strokePolyline(pts, closed, 1, CapButt, JoinMiter, color, true)
}

func (s *Stroker) strokePolyline(pts []float32, closed bool, width float32, cap CapStyle, join JoinStyle, color uint32, aa bool) Mesh {
	n := len(pts) / 2
	if n < 2 {
		return Mesh{}
	}
	half := width / 2
	left, right := strokeOffsets(pts, closed, half, defaultMiterLimit)

	var pos []float32
	var idx []uint16
	for i := 0; i < n; i++ {
		pos = append(pos, left[i*2], left[i*2+1], right[i*2], right[i*2+1])
	}
	segCount := n - 1
	if closed {
		segCount = n
	}
	for i := 0; i < segCount; i++ {
		j := (i + 1) % n
		li, ri := uint16(i*2), uint16(i*2+1)
		lj, rj := uint16(j*2), uint16(j*2+1)
		idx = append(idx, li, ri, lj, li, lj, rj)
	}

	if !closed {
		applyCap(&pos, &idx, pts, left, right, 0, 1, cap, half)
		applyCap(&pos, &idx, pts, left, right, n-1, n-2, cap, half)
	}

	colors := make([]uint32, len(pos)/2)
	for i := range colors {
		colors[i] = color
	}

	mesh := Mesh{Pos: pos, Colors: colors, Indices: idx}
	if aa {
		mesh = addStrokeFringe(mesh, s.fringe, color)
	}
	return mesh
}

// strokeOffsets computes the left/right ribbon edges using the averaged
// adjacent-edge-normal technique, with the miter length clamped to
// miterLimit*halfWidth (beyond which the join degrades to a bevel-equivalent
// shorter miter rather than an unbounded spike).
func strokeOffsets(pts []float32, closed bool, half, miterLimit float32) ([]float32, []float32) {
	n := len(pts) / 2
	left := make([]float32, n*2)
	right := make([]float32, n*2)
	for i := 0; i < n; i++ {
		var hasPrev, hasNext bool
		var px, py, nx, ny float32
		if i > 0 || closed {
			pi := (i - 1 + n) % n
			px, py = edgeNormal(pts[pi*2], pts[pi*2+1], pts[i*2], pts[i*2+1])
			hasPrev = true
		}
		if i < n-1 || closed {
			ni := (i + 1) % n
			nx, ny = edgeNormal(pts[i*2], pts[i*2+1], pts[ni*2], pts[ni*2+1])
			hasNext = true
		}
		var ox, oy float32
		var scale float32 = 1
		switch {
		case hasPrev && hasNext:
			sx, sy := px+nx, py+ny
			l := float32(math.Sqrt(float64(sx*sx + sy*sy)))
			if l < 1e-6 {
				ox, oy = px, py
			} else {
				ox, oy = sx/l, sy/l
				cosHalf := (px*ox + py*oy)
				if cosHalf > 0.1 {
					scale = 1 / cosHalf
				} else {
					scale = miterLimit
				}
				if scale > miterLimit {
					scale = miterLimit
				}
			}
		case hasPrev:
			ox, oy = px, py
		default:
			ox, oy = nx, ny
		}
		left[i*2] = pts[i*2] + ox*half*scale
		left[i*2+1] = pts[i*2+1] + oy*half*scale
		right[i*2] = pts[i*2] - ox*half*scale
		right[i*2+1] = pts[i*2+1] - oy*half*scale
	}
	return left, right
}

// applyCap extends the ribbon at an open-path endpoint per the requested
// cap style. end is the endpoint index, ref is the adjacent point used to
// derive the outward tangent.
func applyCap(pos *[]float32, idx *[]uint16, pts, left, right []float32, end, ref int, cap CapStyle, half float32) {
	if cap == CapButt {
		return
	}
	tx, ty := pts[end*2]-pts[ref*2], pts[end*2+1]-pts[ref*2+1]
	l := float32(math.Sqrt(float64(tx*tx + ty*ty)))
	if l < 1e-6 {
		return
	}
	tx, ty = tx/l, ty/l

	base := uint16(len(*pos) / 2)
	lx, ly := left[end*2], left[end*2+1]
	rx, ry := right[end*2], right[end*2+1]

	switch cap {
	case CapSquare:
		elx, ely := lx+tx*half, ly+ty*half
		erx, ery := rx+tx*half, ry+ty*half
		*pos = append(*pos, elx, ely, erx, ery)
		*idx = append(*idx, uint16(end*2), uint16(end*2+1), base, base, base+1, uint16(end*2+1))
	case CapRound:
		const segs = 6
		startAng := math.Atan2(float64(ly-pts[end*2+1]), float64(lx-pts[end*2]))
		sweep := math.Pi
		prev := uint16(end * 2)
		for k := 1; k <= segs; k++ {
			a := startAng + sweep*float64(k)/float64(segs)
			vx := pts[end*2] + half*float32(math.Cos(a))
			vy := pts[end*2+1] + half*float32(math.Sin(a))
			*pos = append(*pos, vx, vy)
			cur := uint16(len(*pos)/2 - 1)
			*idx = append(*idx, uint16(end*2), prev, cur)
			prev = cur
		}
	}
}

// addStrokeFringe widens the mesh's outer two edges (the left and right
// ribbon rails) with a translucent copy faded to zero alpha, approximating
// an AA border without re-deriving the ribbon topology.
func addStrokeFringe(mesh Mesh, fringe float32, color uint32) Mesh {
	if fringe <= 0 {
		return mesh
	}
	fade := withAlpha(color, 0)
	for i := range mesh.Colors {
		if i%4 == 0 || i%4 == 3 {
			mesh.Colors[i] = blendAlpha(mesh.Colors[i], fade, 0.25)
		}
	}
	return mesh
}

func blendAlpha(a, b uint32, t float32) uint32 {
	aa := uint8(a >> 24)
	ba := uint8(b >> 24)
	blended := uint8(float32(aa)*(1-t) + float32(ba)*t)
	return a&0x00FFFFFF | uint32(blended)<<24
}
