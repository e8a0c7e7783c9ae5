package vg

import (
	"github.com/gogpu/vg/internal/fontsys"
	"github.com/gogpu/vg/internal/gpubackend"
	"github.com/gogpu/vg/internal/pathimpl"
	"github.com/gogpu/vg/internal/strokerimpl"
)

// Path is the spec §6 Path collaborator: curve flattening and subpath
// accumulation. internal/pathimpl.Path is the default implementation;
// Context depends only on this interface so an alternate tessellator can
// be substituted.
type Path interface {
	Reset(avgScale, tol float32)
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
	NumSubPaths() int
	SubPaths() []pathimpl.SubPath
	Vertices(i int) []float32
	NumVertices(i int) int
	Close()
}

var _ Path = (*pathimpl.Path)(nil)

// Stroker is the spec §6 Stroker collaborator: fill-mesh and stroke-mesh
// generation. internal/strokerimpl.Stroker is the default implementation.
type Stroker interface {
	Reset(avgScale, tol, fringe float32)

	ConvexFill(vertices []float32, color uint32) strokerimpl.Mesh
	ConvexFillAA(vertices []float32, color uint32) strokerimpl.Mesh
	ConcaveFillBegin()
	ConcaveFillAddContour(vertices []float32)
	ConcaveFillEnd(color uint32, evenOdd bool) (strokerimpl.Mesh, bool)
	ConcaveFillEndAA(color uint32, evenOdd bool) (strokerimpl.Mesh, bool)

	PolylineStroke(pts []float32, closed bool, width float32, cap strokerimpl.CapStyle, join strokerimpl.JoinStyle, color uint32) strokerimpl.Mesh
	PolylineStrokeAA(pts []float32, closed bool, width float32, cap strokerimpl.CapStyle, join strokerimpl.JoinStyle, color uint32) strokerimpl.Mesh
	PolylineStrokeAAThin(pts []float32, closed bool, color uint32) strokerimpl.Mesh
}

var _ Stroker = (*strokerimpl.Stroker)(nil)

// FontSystem is the spec §6 FontSystem collaborator: font registration,
// shaping, atlas management and line breaking. internal/fontsys.System is
// the default implementation.
type FontSystem interface {
	Destroy()
	AddFont(name string, data []byte) (uint32, error)
	FindFont(name string) uint32
	AddFallbackFont(fontID uint32)
	Text(cfg fontsys.Config, x, y float32, str string, mesh *fontsys.Mesh) (advanceX float32)
	TextBreakLines(cfg fontsys.Config, str string, breakWidth float32) []fontsys.Line
	LineBounds(cfg fontsys.Config) (ascent, descent float32)
	GetLineHeight(fontID uint32, sizePx float32) float32
	GetFontAtlasImage() (pixels []byte, size int)
	GetWhitePixelUV() (u, v float32)
	FlushFontAtlasImage()
	Frame()
}

var _ FontSystem = (*fontsys.System)(nil)

// GpuBackend is the spec §6 GpuBackend collaborator, defined in
// internal/gpubackend so both the "software" and "gogpu" adapters (and the
// frame orchestrator) can share it without an import cycle back into vg.
type GpuBackend = gpubackend.Backend

// MathUtil's operations (multiplyMatrix3, invertMatrix3, transformPos2D,
// batchTransformPositions, ...) are exposed as internal/mathutil
// package-level functions rather than an interface, mirroring the
// teacher's own matrix.go/vec.go, which are likewise free functions with
// no collaborator-swapping seam. Matrix math has exactly one correct
// implementation per spec §6; there is no adapter surface to abstract.
