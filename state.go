package vg

import "github.com/gogpu/vg/internal/strokerimpl"

// DrawingState is the spec §3 DrawingState record: transform, scissor,
// global alpha, and the two derived quantities (avgScale, fontScale) that
// key stroke width, tessellation tolerance, and font-atlas reuse. LineCap/
// LineJoin ride along on the same struct so they participate in Push/Pop
// like every other paint attribute.
//
// Grounded on the teacher's Context.matrix/stack push/pop shape
// (context.go Push/Pop), generalized into a single stack-allocated struct
// per spec §3 rather than the teacher's parallel matrix/clip/mask stacks,
// since this renderer's clip state lives in internal/batch, not here.
type DrawingState struct {
	Transform Matrix
	Scissor   [4]float32 // x, y, w, h in canvas space
	Alpha     float32
	AvgScale  float32
	FontScale float32
	LineCap   strokerimpl.CapStyle
	LineJoin  strokerimpl.JoinStyle
}

// quantizeFontScale rounds avgScale to the nearest 0.1, per spec §3's
// "fontScale = quantize(avgScale, 0.1)" — this keeps the glyph atlas from
// thrashing under sub-pixel scale jitter.
func quantizeFontScale(avgScale float32) float32 {
	const step = 0.1
	return float32(int(avgScale/step+0.5)) * step
}

// deriveScale recomputes AvgScale/FontScale from Transform; called
// whenever Transform changes.
func (s *DrawingState) deriveScale() {
	s.AvgScale = s.Transform.AvgScale()
	s.FontScale = quantizeFontScale(s.AvgScale)
}

// defaultDrawingState returns the state a fresh frame begins with: identity
// transform, full-canvas scissor, opaque alpha.
func defaultDrawingState(canvasW, canvasH float32) DrawingState {
	s := DrawingState{
		Transform: Identity(),
		Scissor:   [4]float32{0, 0, canvasW, canvasH},
		Alpha:     1,
	}
	s.deriveScale()
	return s
}

// stateStack is a bounded LIFO of DrawingState, matching spec §3's
// "Stack-allocated up to a cap".
type stateStack struct {
	entries []DrawingState
	cap     int
}

func newStateStack(cap int) *stateStack {
	return &stateStack{cap: cap}
}

func (s *stateStack) depth() int { return len(s.entries) }

// push copies cur onto the stack. Returns false if the cap would be
// exceeded (resource exhaustion, spec §7 — caller logs and ignores).
func (s *stateStack) push(cur DrawingState) bool {
	if len(s.entries) >= s.cap {
		return false
	}
	s.entries = append(s.entries, cur)
	return true
}

// pop removes and returns the top entry. ok is false on an empty stack
// (protocol violation — unbalanced PopState).
func (s *stateStack) pop() (DrawingState, bool) {
	if len(s.entries) == 0 {
		return DrawingState{}, false
	}
	n := len(s.entries) - 1
	st := s.entries[n]
	s.entries = s.entries[:n]
	return st, true
}

func (s *stateStack) reset() {
	s.entries = s.entries[:0]
}
