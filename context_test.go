package vg

import (
	"testing"

	"github.com/gogpu/vg/internal/batch"
	"github.com/gogpu/vg/internal/cmdlist"
	"github.com/gogpu/vg/internal/gpubackend"
)

func newTestContext(t *testing.T) (*Context, *gpubackend.Software) {
	t.Helper()
	sw := gpubackend.NewSoftware()
	ctx, err := NewContext(800, 600, WithGpuBackend(sw))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx, sw
}

func fillRect(c *Context, x, y, w, h float32, color uint32) {
	c.BeginPath()
	c.Rect(x, y, w, h)
	c.FillPathColor(color, 0)
}

// TestSingleRectDraw covers spec §8's single red rectangle scenario: one
// fill inside one frame produces exactly one submitted draw.
func TestSingleRectDraw(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)
	fillRect(ctx, 10, 10, 50, 50, packColor(Red))
	ctx.End()

	if len(sw.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(sw.Draws))
	}
	stats := ctx.GetStats()
	if stats.DrawCommands != 1 {
		t.Fatalf("stats.DrawCommands = %d, want 1", stats.DrawCommands)
	}
}

// TestBatchingSameColorRects covers spec §8's batching scenario: two
// same-color fills under an unchanged scissor coalesce into one draw.
func TestBatchingSameColorRects(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)
	fillRect(ctx, 0, 0, 20, 20, packColor(Red))
	fillRect(ctx, 30, 30, 20, 20, packColor(Red))
	ctx.End()

	if len(sw.Draws) != 1 {
		t.Fatalf("got %d draws, want 1 (coalesced)", len(sw.Draws))
	}
	if ctx.GetStats().MergedDraws != 1 {
		t.Fatalf("stats.MergedDraws = %d, want 1", ctx.GetStats().MergedDraws)
	}
}

// TestScissorChangeBreaksBatch covers spec §8's batching-broken-by-scissor
// scenario: a scissor change between two otherwise-identical fills forces a
// new draw command.
func TestScissorChangeBreaksBatch(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)
	fillRect(ctx, 0, 0, 20, 20, packColor(Red))
	ctx.SetScissor(0, 0, 100, 100)
	fillRect(ctx, 30, 30, 20, 20, packColor(Red))
	ctx.End()

	if len(sw.Draws) != 2 {
		t.Fatalf("got %d draws, want 2 (scissor change breaks the batch)", len(sw.Draws))
	}
	if ctx.GetStats().MergedDraws != 0 {
		t.Fatalf("stats.MergedDraws = %d, want 0", ctx.GetStats().MergedDraws)
	}
}

// TestNestedClip covers spec §8's nested-clip scenario: a clip shape
// followed by a clipped fill renders the clip mask with STENCIL_ALWAYS and
// the clipped draw with STENCIL_EQUAL/NOT_EQUAL against it.
func TestNestedClip(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)

	ctx.BeginClip(batch.In)
	ctx.BeginPath()
	ctx.Circle(50, 50, 30)
	ctx.FillPathColor(packColor(White), 0)
	ctx.EndClip()

	fillRect(ctx, 0, 0, 100, 100, packColor(Red))
	ctx.End()

	if len(sw.Draws) != 2 {
		t.Fatalf("got %d draws, want 2 (1 clip mask + 1 clipped draw)", len(sw.Draws))
	}
	if sw.Draws[0].Stencil != gpubackend.StencilAlways {
		t.Fatalf("clip mask draw stencil = %v, want StencilAlways", sw.Draws[0].Stencil)
	}
	if sw.Draws[1].Stencil != gpubackend.StencilEqual {
		t.Fatalf("clipped draw stencil = %v, want StencilEqual", sw.Draws[1].Stencil)
	}
}

// TestSequentialClipRegionsUseDistinctStencilRefs covers spec §4.1's "stamp
// a fresh stencil reference value per clip transition" requirement: two
// clip regions in the same frame must not reuse the same ref, or the second
// region's draws would pass wherever the first region's mask happened to
// stamp.
func TestSequentialClipRegionsUseDistinctStencilRefs(t *testing.T) {
	ctx, sw := newTestContext(t)
	ctx.Begin(800, 600)

	ctx.BeginClip(batch.In)
	ctx.BeginPath()
	ctx.Circle(50, 50, 30)
	ctx.FillPathColor(packColor(White), 0)
	ctx.EndClip()
	fillRect(ctx, 0, 0, 100, 100, packColor(Red))

	ctx.BeginClip(batch.In)
	ctx.BeginPath()
	ctx.Circle(200, 200, 30)
	ctx.FillPathColor(packColor(White), 0)
	ctx.EndClip()
	fillRect(ctx, 150, 150, 100, 100, packColor(Blue))

	ctx.End()

	if len(sw.Draws) != 4 {
		t.Fatalf("got %d draws, want 4 (2 clip masks + 2 clipped draws)", len(sw.Draws))
	}
	firstMaskRef := sw.Draws[0].StencilRef
	firstDrawRef := sw.Draws[1].StencilRef
	secondMaskRef := sw.Draws[2].StencilRef
	secondDrawRef := sw.Draws[3].StencilRef

	if firstMaskRef != firstDrawRef {
		t.Fatalf("first region: mask ref %d != draw ref %d, want equal", firstMaskRef, firstDrawRef)
	}
	if secondMaskRef != secondDrawRef {
		t.Fatalf("second region: mask ref %d != draw ref %d, want equal", secondMaskRef, secondDrawRef)
	}
	if firstMaskRef == secondMaskRef {
		t.Fatalf("both clip regions stamped the same stencil ref %d, want distinct values", firstMaskRef)
	}
	if firstMaskRef != 1 || secondMaskRef != 2 {
		t.Fatalf("stencil refs = (%d, %d), want (1, 2)", firstMaskRef, secondMaskRef)
	}
}

// TestCommandListCachedReplay covers spec §8's cached-replay scenario: the
// second SubmitCommandList under an unchanged transform replays from the
// shape cache and produces the same draw output as the first pass.
func TestCommandListCachedReplay(t *testing.T) {
	ctx, sw := newTestContext(t)

	listHandle := ctx.CreateCommandList(cmdlist.Cacheable)
	ctx.BeginRecording(listHandle)
	ctx.ClBeginPath()
	ctx.ClRect(0, 0, 40, 40)
	ctx.ClFillPathColor(packColor(Red), 0)
	ctx.EndRecording()

	ctx.Begin(800, 600)
	ctx.SubmitCommandList(listHandle)
	ctx.End()
	firstDraws := len(sw.Draws)

	l, ok := ctx.commandLists.Get(listHandle)
	if !ok {
		t.Fatal("command list handle unexpectedly invalid")
	}
	cache, ok := l.Cache.(interface{ Valid(float32) bool })
	if !ok {
		t.Fatal("command list has no shape cache despite Cacheable")
	}
	if !cache.Valid(ctx.state.AvgScale) {
		t.Fatal("shape cache not populated after first SubmitCommandList")
	}

	ctx.Begin(800, 600)
	ctx.SubmitCommandList(listHandle)
	ctx.End()

	if len(sw.Draws) != firstDraws {
		t.Fatalf("second (cached) pass produced %d draws, want %d", len(sw.Draws), firstDraws)
	}
}

// TestCommandListLocalGradientRelocation covers spec §8's local
// gradient-handle relocation scenario: a gradient created inside a
// recording and referenced by a later fill in the same recording resolves
// to a real per-frame handle at playback, without tripping any "invalid
// gradient handle" warning.
func TestCommandListLocalGradientRelocation(t *testing.T) {
	ctx, sw := newTestContext(t)

	listHandle := ctx.CreateCommandList(0)
	ctx.BeginRecording(listHandle)
	grad := ctx.ClCreateLinearGradient(0, 0, 100, 0, packColor(Red), packColor(White))
	ctx.ClBeginPath()
	ctx.ClRect(0, 0, 40, 40)
	ctx.ClFillPathGradient(grad, 0)
	ctx.EndRecording()

	ctx.Begin(800, 600)
	ctx.SubmitCommandList(listHandle)
	ctx.End()

	if len(sw.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(sw.Draws))
	}
	if len(ctx.gradients) != 1 {
		t.Fatalf("got %d gradients registered, want 1 (the relocated local gradient)", len(ctx.gradients))
	}
}

// TestBeginEndProtocolViolations covers spec §7's "protocol violation,
// logged and ignored" policy for unbalanced frame/clip/recording calls: none
// of these panic, and state is left consistent for the next valid call.
func TestBeginEndProtocolViolations(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.End() // End without Begin: logged, ignored.

	ctx.Begin(800, 600)
	ctx.Begin(800, 600) // nested Begin: logged, ignored, first frame stays open.
	ctx.EndClip()       // EndClip without BeginClip: logged, ignored.
	ctx.End()

	if err := ctx.PushState(); err != nil {
		t.Fatalf("PushState after recovering from protocol violations: %v", err)
	}
	ctx.PopState()
	ctx.PopState() // unbalanced PopState: logged, ignored, must not panic.
}
