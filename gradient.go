package vg

import (
	"math"

	"github.com/gogpu/vg/internal/gpubackend"
)

// Gradient is the spec §3 Gradient record: an ephemeral, frame-scoped
// paint source addressed by a dense per-frame counter (internal/handle.
// Counter), reset at the start of every frame.
type Gradient struct {
	InvPatternMatrix Matrix3
	Params           [4]float32 // extent/radius/angle, feather — meaning depends on kind
	InnerColor       uint32     // premultiplied RGBA8
	OuterColor       uint32
}

// ImagePattern is the spec §3 ImagePattern record: an inverse placement
// matrix with 1/width, 1/height baked in, plus the image it samples.
type ImagePattern struct {
	InvPatternMatrix Matrix3
	Image            uint32
}

// Image is the spec §3 Image record. Lifetime spans frames; owned images
// are destroyed (and their GPU texture released) explicitly via
// DestroyImage.
type Image struct {
	Width, Height int
	SamplerFlags  uint32
	Texture       gpubackend.TextureHandle
	Owned         bool
}

// composeAndInvert mirrors the original renderer's "compose current
// transform with the primitive-local placement transform, then invert"
// recipe (spec §4.5) shared by every gradient/pattern constructor.
func composeAndInvert(current, local Matrix) Matrix3 {
	return current.Multiply(local).Invert().ToMatrix3()
}

// linearGradient builds the local placement transform for a linear
// gradient: the gradient's own axis becomes the local Y axis (rotated so
// the perpendicular direction — where color is constant — is X), with a
// large lateral extent so sampling never runs off the ends of the ramp.
// Grounded on original_source/src/vg.cpp's ctxCreateLinearGradient.
func linearGradient(current Matrix, sx, sy, ex, ey float32, inner, outer uint32) Gradient {
	const large = 1e5
	dx, dy := ex-sx, ey-sy
	d := float32(math.Hypot(float64(dx), float64(dy)))
	if d > 1e-4 {
		dx, dy = dx/d, dy/d
	} else {
		dx, dy = 0, 1
	}
	local := Matrix{
		A: dy, B: dx, C: sx - dx*large,
		D: -dx, E: dy, F: sy - dy*large,
	}
	return Gradient{
		InvPatternMatrix: composeAndInvert(current, local),
		Params:           [4]float32{large, large + d*0.5, 0, maxF(1, d)},
		InnerColor:       inner,
		OuterColor:       outer,
	}
}

// boxGradient places a soft rounded-rectangle gradient centered on the
// box, with corner radius r and feather width f.
func boxGradient(current Matrix, x, y, w, h, r, f float32, inner, outer uint32) Gradient {
	local := Translate(x+w*0.5, y+h*0.5)
	return Gradient{
		InvPatternMatrix: composeAndInvert(current, local),
		Params:           [4]float32{w * 0.5, h * 0.5, r, maxF(1, f)},
		InnerColor:       inner,
		OuterColor:       outer,
	}
}

// radialGradient places a ring gradient centered at (cx, cy), with the
// transition band spanning [inr, outr].
func radialGradient(current Matrix, cx, cy, inr, outr float32, inner, outer uint32) Gradient {
	local := Translate(cx, cy)
	r := (inr + outr) * 0.5
	f := outr - inr
	return Gradient{
		InvPatternMatrix: composeAndInvert(current, local),
		Params:           [4]float32{r, r, r, maxF(1, f)},
		InnerColor:       inner,
		OuterColor:       outer,
	}
}

// sweepGradient (spec §10 supplemented feature) places an angular gradient
// centered at (cx, cy): params carry {startAngle, sweep, 0, feather}
// instead of extent/radius, reusing the same Gradient record.
func sweepGradient(current Matrix, cx, cy, startAngle, sweep, feather float32, inner, outer uint32) Gradient {
	local := Translate(cx, cy)
	return Gradient{
		InvPatternMatrix: composeAndInvert(current, local),
		Params:           [4]float32{startAngle, sweep, 0, maxF(0.001, feather)},
		InnerColor:       inner,
		OuterColor:       outer,
	}
}

// imagePattern places image to rotate by angle about (cx, cy) sized
// (w, h); the inverse matrix has 1/w, 1/h baked in so the fragment shader
// can turn a screen-space position directly into a [0,1] UV, per spec
// §4.5's "Image pattern bakes 1/width,1/height into the inverted matrix".
func imagePattern(current Matrix, cx, cy, w, h, angle float32, image uint32) ImagePattern {
	local := Translate(cx, cy).Multiply(Rotate(angle))
	inv := current.Multiply(local).Invert()
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	final := Scale(1/w, 1/h).Multiply(inv)
	return ImagePattern{InvPatternMatrix: final.ToMatrix3(), Image: image}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Gradient/pattern creation (spec §4.5): each call draws the next per-frame
// handle from its Counter and appends the constructed record, or logs and
// returns handle.Invalid once the configured per-frame ceiling is hit.

func (c *Context) nextGradientHandle() uint32 { return c.gradCounter.Next() }

func (c *Context) nextImagePatternHandle() uint32 { return c.patternCounter.Next() }

// CreateLinearGradient registers a linear gradient along (sx,sy)-(ex,ey) and
// returns its per-frame handle.
func (c *Context) CreateLinearGradient(sx, sy, ex, ey float32, inner, outer uint32) uint32 {
	h := c.nextGradientHandle()
	if h == handleInvalid {
		Logger().Warn("vg: gradient table exhausted")
		return handleInvalid
	}
	c.gradients = append(c.gradients, linearGradient(c.state.Transform, sx, sy, ex, ey, inner, outer))
	return h
}

// CreateBoxGradient registers a soft rounded-box gradient.
func (c *Context) CreateBoxGradient(x, y, w, h, radius, feather float32, inner, outer uint32) uint32 {
	handle := c.nextGradientHandle()
	if handle == handleInvalid {
		Logger().Warn("vg: gradient table exhausted")
		return handleInvalid
	}
	c.gradients = append(c.gradients, boxGradient(c.state.Transform, x, y, w, h, radius, feather, inner, outer))
	return handle
}

// CreateRadialGradient registers a radial ring gradient.
func (c *Context) CreateRadialGradient(cx, cy, inr, outr float32, inner, outer uint32) uint32 {
	h := c.nextGradientHandle()
	if h == handleInvalid {
		Logger().Warn("vg: gradient table exhausted")
		return handleInvalid
	}
	c.gradients = append(c.gradients, radialGradient(c.state.Transform, cx, cy, inr, outr, inner, outer))
	return h
}

// CreateSweepGradient registers an angular gradient (spec §10 supplemented
// feature).
func (c *Context) CreateSweepGradient(cx, cy, startAngle, sweep, feather float32, inner, outer uint32) uint32 {
	h := c.nextGradientHandle()
	if h == handleInvalid {
		Logger().Warn("vg: gradient table exhausted")
		return handleInvalid
	}
	c.gradients = append(c.gradients, sweepGradient(c.state.Transform, cx, cy, startAngle, sweep, feather, inner, outer))
	return h
}

// CreateImagePattern registers an image pattern placed at (x,y) sized
// (w,h), rotated by angle, sampling the image named by imageHandle.
func (c *Context) CreateImagePattern(x, y, w, h, angle, alpha float32, imageHandle uint32) uint32 {
	if !c.images.Valid(imageHandle) {
		Logger().Warn("vg: CreateImagePattern with an invalid image handle")
		return handleInvalid
	}
	ph := c.nextImagePatternHandle()
	if ph == handleInvalid {
		Logger().Warn("vg: image pattern table exhausted")
		return handleInvalid
	}
	c.patterns = append(c.patterns, imagePattern(c.state.Transform, x, y, w, h, angle, imageHandle))
	return ph
}

const handleInvalid = 0xFFFFFFFF
