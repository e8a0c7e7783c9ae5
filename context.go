package vg

import (
	"github.com/gogpu/vg/internal/arena"
	"github.com/gogpu/vg/internal/batch"
	"github.com/gogpu/vg/internal/cmdlist"
	"github.com/gogpu/vg/internal/fontsys"
	"github.com/gogpu/vg/internal/gpubackend"
	"github.com/gogpu/vg/internal/handle"
	"github.com/gogpu/vg/internal/pathimpl"
	"github.com/gogpu/vg/internal/shapecache"
	"github.com/gogpu/vg/internal/strokerimpl"
)

// gpuBackendOf and fontSystemOf are unexported accessors for the backend
// and font system fields. Nothing else in the package calls them; the
// package's own code reads c.backend and c.fonts directly.
func (c *Context) gpuBackendOf() gpubackend.Backend { return c.backend }
func (c *Context) fontSystemOf() FontSystem         { return c.fonts }

// Stats reports per-frame counters (spec §10 supplemented feature:
// GetStats), gathered by the frame orchestrator as it walks the batcher's
// command lists.
type Stats struct {
	DrawCommands     int
	MergedDraws      int
	ClipCommands     int
	Vertices         int
	Indices          int
	Gradients        int
	ImagePatterns    int
	ActiveImages     int
	ActiveCommandLists int
}

// Context is the top-level entry point: it owns every collaborator named in
// spec §6 (Path, Stroker, FontSystem, GpuBackend, MathUtil) plus the
// frame-scoped arena pool, batcher, gradient/pattern issuance counters and
// state stack, and the long-lived image/command-list handle tables.
//
// Grounded on the teacher's Context struct (context.go): matrix/clip/mask
// stack fields there become DrawingState/stateStack here, generalized from
// three parallel stacks into one because this renderer's clip state lives
// in internal/batch rather than a CPU mask stack.
type Context struct {
	cfg     Config
	backend gpubackend.Backend
	fonts   FontSystem

	arenaPool *arena.Pool
	arenas    []*arena.VertexArena // arenas filled and rotated out this frame; vb is the current, not-yet-appended one
	vb        *arena.VertexArena
	ib        arena.IndexArena
	batcher   *batch.Batcher

	state DrawingState
	stack *stateStack

	path    Path
	stroker Stroker

	gradients      []Gradient
	gradCounter    *handle.Counter
	patterns       []ImagePattern
	patternCounter *handle.Counter

	images       *handle.Table[Image]
	commandLists *handle.Table[*cmdlist.List]
	textConfigs  *handle.Table[TextConfig]
	fontCount    uint32

	// recording is non-nil between BeginRecording/EndRecording: the list
	// currently being captured and its Recorder view. Only one recording can
	// be open at a time per Context (spec §4.6: recordings do not nest).
	recording       *cmdlist.List
	recorder        *cmdlist.Recorder
	recordingHandle uint32

	// playDepth tracks SubmitCommandList recursion against
	// cfg.MaxCommandListDepth (spec §4.7).
	playDepth int

	canvasW, canvasH float32
	fringeWidth      float32

	inFrame bool
	stats   Stats

	// atlasTexture mirrors the FontSystem's glyph atlas on the GPU side,
	// created lazily by frame.go's End and re-uploaded in full on every
	// later End.
	atlasTexture      gpubackend.TextureHandle
	atlasTextureValid bool

	// cacheRecord/cacheReplay implement spec §4.8's shape cache: at most one
	// is non-nil at a time, set by SubmitCommandList around a Play call. A
	// cacheable command list can itself submit another cacheable command
	// list (recursion up to cfg.MaxCommandListDepth), so the fields
	// describing the *current* list's cache state are saved onto cacheStack
	// and restored when the nested Play returns, rather than being nulled
	// unconditionally — the cache-stack discipline of spec §4.8.
	cacheRecord    *shapecache.Cache
	cacheRecordInv Matrix3
	cacheReplay    *shapecache.Cache
	cacheCursor    *shapecache.Cursor
	cacheStack     []cacheFrame
}

// cacheFrame is one saved cache-state entry on Context.cacheStack, pushed by
// SubmitCommandList before it starts a nested playback and popped once that
// playback returns (spec §4.8).
type cacheFrame struct {
	record    *shapecache.Cache
	recordInv Matrix3
	replay    *shapecache.Cache
	cursor    *shapecache.Cursor
}

// NewContext constructs a Context, resolving the configured (or default)
// GpuBackend and FontSystem collaborators and sizing every capacity-bound
// table from cfg.
func NewContext(canvasW, canvasH float32, opts ...Option) (*Context, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	backend := cfg.gpuBackend
	if backend == nil {
		b, err := gpubackend.Get(cfg.gpuBackendName)
		if err != nil {
			return nil, err
		}
		backend = b
	}
	if err := backend.Init(); err != nil {
		return nil, err
	}

	fs := cfg.fontSystem
	if fs == nil {
		fs = fontsys.New()
	}

	c := &Context{
		cfg:            cfg,
		backend:        backend,
		fonts:          fs,
		arenaPool:      arena.NewPool(cfg.MaxVBVertices),
		batcher:        batch.New(),
		stack:          newStateStack(int(cfg.MaxStateStackSize)),
		path:           pathimpl.New(),
		stroker:        strokerimpl.New(),
		gradCounter:    handle.NewCounter(cfg.MaxGradients),
		patternCounter: handle.NewCounter(cfg.MaxImagePatterns),
		images:         handle.NewTable[Image](cfg.MaxImages),
		commandLists:   handle.NewTable[*cmdlist.List](cfg.MaxCommandLists),
		textConfigs:    handle.NewTable[TextConfig](cfg.MaxTextConfigs),
		canvasW:        canvasW,
		canvasH:        canvasH,
		fringeWidth:    1.0,
	}
	c.state = defaultDrawingState(canvasW, canvasH)
	return c, nil
}

// Close releases the GPU backend and font system. Command lists and images
// still held by the caller are not implicitly freed; call DestroyImage /
// DestroyCommandList first if they own GPU resources.
func (c *Context) Close() {
	c.fonts.Destroy()
	c.backend.Close()
}

// Begin starts a new frame: rotates in a fresh vertex arena, resets the
// batcher and per-frame gradient/pattern counters, and resets the drawing
// state to identity/full-canvas/opaque.
//
// Grounded on frame.go's begin/end orchestration (spec §4.1); the GPU
// submission walk itself lives in frame.go's End.
func (c *Context) Begin(canvasW, canvasH float32) {
	if c.inFrame {
		Logger().Warn("vg: Begin called while a frame is already open")
		return
	}
	c.inFrame = true
	c.canvasW, c.canvasH = canvasW, canvasH
	// Prior frame's arenas are released via the ReleaseFunc callbacks handed
	// to the GPU backend in End, once it has consumed them; here we only
	// forget this Context's references.
	c.arenas = c.arenas[:0]
	c.vb = c.arenaPool.Acquire()
	c.ib.Reset()
	c.batcher.Reset()
	c.gradCounter.Reset()
	c.patternCounter.Reset()
	c.gradients = c.gradients[:0]
	c.patterns = c.patterns[:0]
	c.stack.reset()
	c.state = defaultDrawingState(canvasW, canvasH)
	c.fonts.Frame()
	c.stats = Stats{}
}

// GetStats returns the counters gathered by the most recently completed
// frame (spec §10 supplemented feature).
func (c *Context) GetStats() Stats { return c.stats }

// --- Transform / state stack ------------------------------------------------

// PushState saves the current DrawingState. Returns ErrStateStackOverflow if
// the configured maxStateStackSize would be exceeded; the state is left
// unchanged and the call is a no-op past logging.
func (c *Context) PushState() error {
	if !c.stack.push(c.state) {
		Logger().Warn("vg: PushState overflow")
		return ErrStateStackOverflow
	}
	return nil
}

// PopState restores the DrawingState saved by the matching PushState. A
// stack underflow is a protocol violation: logged and ignored.
func (c *Context) PopState() {
	st, ok := c.stack.pop()
	if !ok {
		Logger().Warn("vg: PopState with an empty stack")
		return
	}
	c.state = st
}

// SetGlobalAlpha sets the alpha multiplier applied to every subsequent draw.
func (c *Context) SetGlobalAlpha(alpha float32) { c.state.Alpha = alpha }

// SetLineCap selects how StrokePath* terminates open subpaths.
func (c *Context) SetLineCap(cap strokerimpl.CapStyle) { c.state.LineCap = cap }

// SetLineJoin selects how StrokePath* joins consecutive segments.
func (c *Context) SetLineJoin(join strokerimpl.JoinStyle) { c.state.LineJoin = join }

// GetTransform returns the current user-to-canvas transform.
func (c *Context) GetTransform() Matrix { return c.state.Transform }

// Translate prepends a translation to the current transform.
func (c *Context) Translate(x, y float32) {
	c.state.Transform = c.state.Transform.Multiply(Translate(x, y))
	c.state.deriveScale()
}

// Scale prepends a scale to the current transform.
func (c *Context) Scale(x, y float32) {
	c.state.Transform = c.state.Transform.Multiply(Scale(x, y))
	c.state.deriveScale()
}

// Rotate prepends a rotation (radians) to the current transform.
func (c *Context) Rotate(angle float32) {
	c.state.Transform = c.state.Transform.Multiply(Rotate(angle))
	c.state.deriveScale()
}

// ResetTransform restores the identity transform.
func (c *Context) ResetTransform() {
	c.state.Transform = Identity()
	c.state.deriveScale()
}

// --- Scissor -----------------------------------------------------------------

// SetScissor replaces the active scissor rect (canvas space).
func (c *Context) SetScissor(x, y, w, h float32) {
	c.state.Scissor = [4]float32{x, y, w, h}
	c.batcher.ForceNewDraw()
}

// IntersectScissor narrows the active scissor rect to its intersection with
// (x, y, w, h).
func (c *Context) IntersectScissor(x, y, w, h float32) {
	cur := c.state.Scissor
	x0, y0 := maxF(cur[0], x), maxF(cur[1], y)
	x1 := minF(cur[0]+cur[2], x+w)
	y1 := minF(cur[1]+cur[3], y+h)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	c.state.Scissor = [4]float32{x0, y0, x1 - x0, y1 - y0}
	c.batcher.ForceNewDraw()
}

// ResetScissor restores the full-canvas scissor.
func (c *Context) ResetScissor() {
	c.state.Scissor = [4]float32{0, 0, c.canvasW, c.canvasH}
	c.batcher.ForceNewDraw()
}

// GetScissor returns the active scissor rect.
func (c *Context) GetScissor() (x, y, w, h float32) {
	s := c.state.Scissor
	return s[0], s[1], s[2], s[3]
}

// SetViewBox changes the canvas dimensions the default scissor and initial
// state derive from, used when the render target is resized mid-session.
func (c *Context) SetViewBox(x, y, w, h float32) {
	c.canvasW, c.canvasH = w, h
	c.state.Scissor = [4]float32{x, y, w, h}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// --- Clip --------------------------------------------------------------------

// BeginClip opens a nested clip range under rule; nested draws until EndClip
// render only where the accumulated clip geometry allows (spec §4.4).
func (c *Context) BeginClip(rule batch.ClipRule) {
	if !c.batcher.BeginClip(rule) {
		Logger().Warn("vg: BeginClip called while a clip range is already open")
	}
}

// EndClip closes the range opened by BeginClip.
func (c *Context) EndClip() {
	if !c.batcher.EndClip() {
		Logger().Warn("vg: EndClip without a matching BeginClip")
	}
}

// ResetClip clears the active clip so subsequent draws are unclipped.
func (c *Context) ResetClip() { c.batcher.ResetClip() }

// currentScissor packs the active float scissor into the integer Scissor
// batch.Command carries, clamped to the canvas.
func (c *Context) currentScissor() batch.Scissor {
	x, y, w, h := c.GetScissor()
	x0 := clampU16(x)
	y0 := clampU16(y)
	x1 := clampU16(x + w)
	y1 := clampU16(y + h)
	return batch.Scissor{x0, y0, x1, y1}
}

func clampU16(v float32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
