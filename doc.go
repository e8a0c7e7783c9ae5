// Package vg implements a stateful, protocol-driven 2D vector graphics
// renderer: the caller builds paths and issues fill/stroke/text/image calls
// against a Context, which tessellates them into batched GPU draw commands
// each frame.
//
// # Overview
//
// A Context owns one frame's worth of path, stroke, batching, gradient, and
// clip state. Begin opens a frame; path-construction calls (MoveTo, LineTo,
// CubicTo, Rect, ...) build up the current path; FillPathColor,
// StrokePathGradient, and friends tessellate it into vertex/index data and
// hand it to the batcher; End walks the batched commands and submits them
// to the configured GpuBackend.
//
//	ctx, err := vg.NewContext(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.Begin(800, 600)
//	ctx.Rect(100, 100, 200, 150)
//	ctx.FillPathColor(0xFF0000FF, 0)
//	ctx.End()
//
// # Command lists
//
// Repeated drawing (icons, UI chrome redrawn every frame with the same
// geometry) can be recorded once with BeginRecording/EndRecording into a
// CommandList and replayed with SubmitCommandList, which also enables the
// shape cache: fill/stroke tessellation is skipped entirely on cache hits
// and only the resulting mesh is re-transformed.
//
// # Backends
//
// The GpuBackend collaborator is pluggable; WithGpuBackend selects a named
// registered backend ("software" for headless/testing, "gogpu" for the
// production GPU backend) or accepts a pre-built gpubackend.Backend
// directly.
//
// # Coordinate system
//
// Origin (0, 0) at the top-left, X increases right, Y increases down,
// angles in radians with 0 pointing right and increasing clockwise (screen
// space, not math convention).
package vg
