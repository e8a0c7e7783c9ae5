package gpubackend

import "sync"

// Software is a CPU-visible backend used for tests and headless rendering.
// It keeps buffers and textures as plain byte slices and performs no
// rasterization of its own — Submit just records the draw for inspection,
// matching the teacher's SoftwareBackend's role as the always-available
// fallback (backend/software.go).
type Software struct {
	mu sync.Mutex

	nextBuf, nextTex, nextShader uint32
	buffers                      map[BufferHandle][]byte
	textures                     map[TextureHandle]softwareTexture

	viewport Viewport
	scissor  [4]int
	stencil  StencilMode
	stencilRef uint8
	blend    BlendMode
	alpha    float32

	// Draws accumulates every Submit call for the current frame, for test
	// assertions; cleared on BeginFrame.
	Draws []SubmittedDraw
}

type softwareTexture struct {
	width, height int
	pixels        []byte
}

// SubmittedDraw records one Submit call's parameters.
type SubmittedDraw struct {
	Program               ShaderHandle
	VertexBuf, IndexBuf    BufferHandle
	Texture               TextureHandle
	FirstIndex, NumIndices uint32
	Blend                  BlendMode
	Stencil                StencilMode
	StencilRef             uint8
}

// NewSoftware constructs an uninitialized Software backend.
func NewSoftware() *Software {
	return &Software{
		buffers:  make(map[BufferHandle][]byte),
		textures: make(map[TextureHandle]softwareTexture),
		alpha:    1,
	}
}

func (b *Software) Name() string { return "software" }
func (b *Software) Init() error  { return nil }
func (b *Software) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffers = make(map[BufferHandle][]byte)
	b.textures = make(map[TextureHandle]softwareTexture)
}

func (b *Software) CreateShader(vertSrc, fragSrc string) (ShaderHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextShader++
	return ShaderHandle(b.nextShader), nil
}

func (b *Software) CreateBuffer(data []byte, release ReleaseFunc) BufferHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextBuf++
	h := BufferHandle(b.nextBuf)
	b.buffers[h] = append([]byte(nil), data...)
	if release != nil {
		release()
	}
	return h
}

func (b *Software) UpdateBuffer(h BufferHandle, data []byte, release ReleaseFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffers[h] = append([]byte(nil), data...)
	if release != nil {
		release()
	}
}

func (b *Software) DestroyBuffer(h BufferHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, h)
}

func (b *Software) CreateTexture(width, height int, pixels []byte) TextureHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextTex++
	h := TextureHandle(b.nextTex)
	b.textures[h] = softwareTexture{width: width, height: height, pixels: append([]byte(nil), pixels...)}
	return h
}

func (b *Software) UpdateTexture(h TextureHandle, x, y, w, h2 int, pixels []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tex, ok := b.textures[h]
	if !ok {
		return
	}
	for row := 0; row < h2; row++ {
		srcOff := row * w
		dstOff := (y+row)*tex.width + x
		if dstOff+w > len(tex.pixels) || srcOff+w > len(pixels) {
			continue
		}
		copy(tex.pixels[dstOff:dstOff+w], pixels[srcOff:srcOff+w])
	}
	b.textures[h] = tex
}

func (b *Software) DestroyTexture(h TextureHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.textures, h)
}

func (b *Software) SetViewTransform(viewport Viewport) {
	b.mu.Lock()
	b.viewport = viewport
	b.mu.Unlock()
}

func (b *Software) SetScissor(x, y, w, h int) {
	b.mu.Lock()
	b.scissor = [4]int{x, y, w, h}
	b.mu.Unlock()
}

func (b *Software) SetStencil(mode StencilMode, ref uint8) {
	b.mu.Lock()
	b.stencil, b.stencilRef = mode, ref
	b.mu.Unlock()
}

func (b *Software) SetBlend(mode BlendMode) {
	b.mu.Lock()
	b.blend = mode
	b.mu.Unlock()
}

func (b *Software) SetGlobalAlpha(alpha float32) {
	b.mu.Lock()
	b.alpha = alpha
	b.mu.Unlock()
}

func (b *Software) Submit(program ShaderHandle, vertexBuf, indexBuf BufferHandle, texture TextureHandle, firstIndex, numIndices uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Draws = append(b.Draws, SubmittedDraw{
		Program:     program,
		VertexBuf:   vertexBuf,
		IndexBuf:    indexBuf,
		Texture:     texture,
		FirstIndex:  firstIndex,
		NumIndices:  numIndices,
		Blend:       b.blend,
		Stencil:     b.stencil,
		StencilRef:  b.stencilRef,
	})
}

func (b *Software) BeginFrame(viewport Viewport) {
	b.mu.Lock()
	b.viewport = viewport
	b.Draws = b.Draws[:0]
	b.mu.Unlock()
}

func (b *Software) EndFrame() {}

var _ Backend = (*Software)(nil)
