package cmdlist

// Op tags a recorded command's payload shape. Values are stable within a
// process (command lists are not persisted across runs, so no on-disk
// compatibility concern applies).
type Op uint32

const (
	OpBeginPath Op = iota
	OpMoveTo
	OpLineTo
	OpCubicTo
	OpQuadraticTo
	OpArc
	OpArcTo
	OpRect
	OpRoundedRect
	OpRoundedRectVarying
	OpCircle
	OpEllipse
	OpPolyline
	OpClosePath

	OpFillPathColor
	OpFillPathGradient
	OpFillPathPattern
	OpStrokePathColor
	OpStrokePathGradient
	OpStrokePathPattern
	OpIndexedTriList
	OpText
	OpTextBox

	OpBeginClip
	OpEndClip
	OpResetClip

	OpCreateLinearGradient
	OpCreateBoxGradient
	OpCreateRadialGradient
	OpCreateSweepGradient
	OpCreateImagePattern

	OpPushState
	OpPopState
	OpSetGlobalAlpha
	OpTranslate
	OpScale
	OpRotate
	OpResetTransform
	OpSetScissor
	OpIntersectScissor
	OpResetScissor
	OpSetViewBox
)
