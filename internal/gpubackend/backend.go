// Package gpubackend provides the default GpuBackend collaborator
// implementations: a CPU-visible software adapter for tests and headless
// rendering, and a production adapter wired to the gogpu GPU stack.
//
// Grounded on the teacher's backend.RenderBackend registration pattern
// (backend/backend.go, backend/software.go) for the Name/Init/Close
// lifecycle, and render/device.go's DeviceHandle for how the renderer
// receives (rather than creates) a GPU device.
package gpubackend

import "fmt"

// BufferHandle identifies a GPU-visible vertex or index buffer created via
// CreateBuffer. The zero value is invalid.
type BufferHandle uint32

// TextureHandle identifies a GPU texture (the font atlas or an image).
type TextureHandle uint32

// ShaderHandle identifies a compiled shader program.
type ShaderHandle uint32

const InvalidHandle = 0xFFFFFFFF

// BlendMode selects the fixed-function blend state for a draw.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
	BlendNone
)

// StencilMode selects the comparison function the frame orchestrator
// (vg's frame.go) sets when it submits clip and draw commands.
type StencilMode uint8

const (
	StencilDisabled StencilMode = iota
	StencilAlways         // clip command: always pass, write ref
	StencilEqual          // draw command, ClipRule In: pass if stencil == ref
	StencilNotEqual       // draw command, ClipRule NotIn: pass if stencil != ref
)

// Viewport is the pixel rectangle a frame renders into.
type Viewport struct {
	X, Y, Width, Height float32
}

// ReleaseFunc is called by the backend once it is done reading a buffer's
// backing memory, mirroring the collaborator's makeRef(ptr, size,
// release_cb, user) contract (spec §6) for zero-copy buffer uploads.
type ReleaseFunc func()

// Backend is the GpuBackend collaborator interface (spec §6): shader
// program creation, dynamic vertex/index buffer create/update, uniform/
// texture/scissor/stencil/state/blend setters, and submit.
type Backend interface {
	Name() string
	Init() error
	Close()

	CreateShader(vertSrc, fragSrc string) (ShaderHandle, error)

	// CreateBuffer registers a CPU-backed slice as a GPU-visible buffer.
	// release is invoked once the backend has finished consuming data for
	// the in-flight frame (the makeRef contract).
	CreateBuffer(data []byte, release ReleaseFunc) BufferHandle
	UpdateBuffer(h BufferHandle, data []byte, release ReleaseFunc)
	DestroyBuffer(h BufferHandle)

	CreateTexture(width, height int, pixels []byte) TextureHandle
	UpdateTexture(h TextureHandle, x, y, w, h2 int, pixels []byte)
	DestroyTexture(h TextureHandle)

	SetViewTransform(viewport Viewport)
	SetScissor(x, y, w, h int)
	SetStencil(mode StencilMode, ref uint8)
	SetBlend(mode BlendMode)
	SetGlobalAlpha(alpha float32)

	// Submit draws vertexBuf/indexBuf[firstIndex:firstIndex+numIndices]
	// using program and the given texture binding (InvalidHandle for
	// untextured draws).
	Submit(program ShaderHandle, vertexBuf, indexBuf BufferHandle, texture TextureHandle, firstIndex, numIndices uint32)

	// BeginFrame/EndFrame bracket one frame orchestrator pass (component 10).
	BeginFrame(viewport Viewport)
	EndFrame()
}

// registry mirrors the teacher's backend.Register/Get pattern (sync map of
// name -> constructor), adapted to this package's smaller surface.
var registry = map[string]func() Backend{}

// Register makes a named backend constructor available to Get.
func Register(name string, ctor func() Backend) {
	registry[name] = ctor
}

// Get constructs the named backend, or an error if it was never registered.
func Get(name string) (Backend, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("gpubackend: no backend registered as %q", name)
	}
	return ctor(), nil
}

func init() {
	Register("software", func() Backend { return NewSoftware() })
	Register("gogpu", func() Backend { return NewGoGPU() })
}
