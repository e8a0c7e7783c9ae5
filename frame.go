package vg

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/vg/internal/arena"
	"github.com/gogpu/vg/internal/batch"
	"github.com/gogpu/vg/internal/gpubackend"
)

// vertexStride is the byte size of one packed GPU vertex: 2 position
// floats, 1 packed RGBA8 color, 2 UV floats (spec §4.1's "single interleaved
// vertex stream" GPU-facing layout).
const vertexStride = 20

// packVertices interleaves one arena's position/color/UV streams into the
// byte layout GpuBackend.CreateBuffer expects, grounded on the teacher's
// own little-endian binary.Write-based buffer packing (render/device.go).
func packVertices(a *arena.VertexArena) []byte {
	buf := make([]byte, int(a.Count)*vertexStride)
	for i := uint32(0); i < a.Count; i++ {
		off := int(i) * vertexStride
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(a.Pos[i*2]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(a.Pos[i*2+1]))
		binary.LittleEndian.PutUint32(buf[off+8:], a.Color[i])
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(a.UV[i].U))
		binary.LittleEndian.PutUint32(buf[off+16:], math.Float32bits(a.UV[i].V))
	}
	return buf
}

// packIndices serializes an index arena's active range into bytes.
func packIndices(idx []uint16) []byte {
	buf := make([]byte, len(idx)*2)
	for i, v := range idx {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

// End closes the frame opened by Begin: uploads every vertex/index arena
// filled this frame as GPU buffers, walks the batcher's clip and draw
// command lists issuing the matching backend calls (scissor, stencil,
// texture, submit), and tears the buffers back down once consumed — the
// frame orchestrator named in spec §10.
//
// Grounded on the teacher's render/frame.go Begin/End bracketing and
// backend/software.go's Submit-records-a-draw contract; the stencil-based
// clip replay is this renderer's own (spec §4.4), since the teacher has no
// nested-clip concept to generalize from.
func (c *Context) End() {
	if !c.inFrame {
		Logger().Warn("vg: End called without a matching Begin")
		return
	}
	c.inFrame = false

	arenas := append(c.arenas, c.vb)
	vertexBufs := make([]gpubackend.BufferHandle, len(arenas))
	for i, a := range arenas {
		vertexBufs[i] = c.backend.CreateBuffer(packVertices(a), a.Release)
	}
	indexBuf := c.backend.CreateBuffer(packIndices(c.ib.Indices[:c.ib.Count]), nil)

	c.ensureAtlasTexture()

	viewport := gpubackend.Viewport{X: 0, Y: 0, Width: c.canvasW, Height: c.canvasH}
	c.backend.BeginFrame(viewport)
	c.backend.SetViewTransform(viewport)
	c.backend.SetGlobalAlpha(1)

	var lastClipFirst, lastClipNum uint32
	clipRendered := false
	warnedOverflow := false
	var nextStencilValue uint8 = 1
	var currentStencilValue uint8

	for i := range c.batcher.DrawCommands {
		cmd := &c.batcher.DrawCommands[i]

		if cmd.Clip.Active {
			if !clipRendered || cmd.Clip.FirstClipCmd != lastClipFirst || cmd.Clip.NumClipCmds != lastClipNum {
				c.renderClipRange(vertexBufs, indexBuf, cmd.Clip.FirstClipCmd, cmd.Clip.NumClipCmds, nextStencilValue)
				currentStencilValue = nextStencilValue
				lastClipFirst, lastClipNum = cmd.Clip.FirstClipCmd, cmd.Clip.NumClipCmds
				clipRendered = true
				nextStencilValue++
				if nextStencilValue == 0 && !warnedOverflow {
					Logger().Warn("vg: more than 254 clip transitions in one frame, stencil reference wrapped")
					warnedOverflow = true
				}
			}
			mode := gpubackend.StencilEqual
			if cmd.Clip.Rule == batch.NotIn {
				mode = gpubackend.StencilNotEqual
			}
			c.backend.SetStencil(mode, currentStencilValue)
		} else {
			c.backend.SetStencil(gpubackend.StencilDisabled, 0)
			clipRendered = false
		}

		c.backend.SetScissor(scissorRect(cmd.Scissor))
		c.backend.Submit(0, vertexBufs[cmd.ArenaID], indexBuf, c.textureFor(cmd), cmd.FirstIndex, cmd.NumIndices)
	}

	c.backend.EndFrame()

	for _, vb := range vertexBufs {
		c.backend.DestroyBuffer(vb)
	}
	c.backend.DestroyBuffer(indexBuf)

	c.gatherStats()
}

// renderClipRange draws one contiguous range of recorded clip commands with
// STENCIL_ALWAYS writing ref, establishing the mask subsequent draws in the
// same clip range test against (spec §4.4). ref is a fresh value per clip
// transition (§4.1 steps 1-2): the caller stamps and tests with the same
// value, then increments it for the next transition, exactly as the
// original renderer's nextStencilValue does (original_source/src/vg.cpp).
func (c *Context) renderClipRange(vertexBufs []gpubackend.BufferHandle, indexBuf gpubackend.BufferHandle, first, num uint32, ref uint8) {
	c.backend.SetStencil(gpubackend.StencilAlways, ref)
	for i := first; i < first+num; i++ {
		cmd := c.batcher.ClipCmd(int(i))
		c.backend.SetScissor(scissorRect(cmd.Scissor))
		c.backend.Submit(0, vertexBufs[cmd.ArenaID], indexBuf, gpubackend.TextureHandle(gpubackend.InvalidHandle), cmd.FirstIndex, cmd.NumIndices)
	}
}

func scissorRect(s batch.Scissor) (x, y, w, h int) {
	return int(s[0]), int(s[1]), int(s[2]) - int(s[0]), int(s[3]) - int(s[1])
}

// textureFor resolves the texture binding a draw command samples: the font
// atlas for Textured (including solid-color draws, which sample its
// reserved white pixel), an image pattern's backing image, or no texture
// for a color gradient (whose ramp is a uniform the real gogpu backend
// receives out of band — unmodeled by the simplified Backend interface
// used here, see DESIGN.md).
func (c *Context) textureFor(cmd *batch.Command) gpubackend.TextureHandle {
	switch cmd.Type {
	case batch.ImagePattern:
		if int(cmd.HandleID) < len(c.patterns) {
			if img, ok := c.images.Get(c.patterns[cmd.HandleID].Image); ok {
				return img.Texture
			}
		}
		return gpubackend.TextureHandle(gpubackend.InvalidHandle)
	case batch.ColorGradient:
		return gpubackend.TextureHandle(gpubackend.InvalidHandle)
	default:
		return c.atlasTexture
	}
}

// ensureAtlasTexture creates the GPU-side font atlas texture on first use
// and re-uploads the whole bitmap on every later call, whether or not it
// changed.
func (c *Context) ensureAtlasTexture() {
	pixels, size := c.fonts.GetFontAtlasImage()
	if !c.atlasTextureValid {
		c.atlasTexture = c.backend.CreateTexture(size, size, pixels)
		c.atlasTextureValid = true
	} else {
		c.backend.UpdateTexture(c.atlasTexture, 0, 0, size, size, pixels)
	}
	c.fonts.FlushFontAtlasImage()
}

// gatherStats finalizes the per-frame counters GetStats reports. Vertices/
// Indices/DrawCommands/MergedDraws already accumulate incrementally as
// paint_api.go uploads meshes; the rest is a snapshot of long-lived state.
func (c *Context) gatherStats() {
	c.stats.ClipCommands = len(c.batcher.ClipCommands)
	c.stats.Gradients = len(c.gradients)
	c.stats.ImagePatterns = len(c.patterns)
	c.stats.ActiveImages = c.images.Len()
	c.stats.ActiveCommandLists = c.commandLists.Len()
}
