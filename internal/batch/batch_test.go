package batch

import "testing"

func TestAllocDrawCommandCoalescesMatching(t *testing.T) {
	b := New()
	idx1, base1, merged1 := b.AllocDrawCommand(0, 0, 0, 4, 6, Textured, 0, Scissor{0, 0, 100, 100})
	if merged1 {
		t.Fatalf("first command must not report merged")
	}
	idx2, base2, merged2 := b.AllocDrawCommand(0, 4, 6, 4, 6, Textured, 0, Scissor{0, 0, 100, 100})
	if !merged2 {
		t.Fatalf("matching second command should coalesce")
	}
	if idx1 != idx2 {
		t.Fatalf("coalesced command should reuse the same index")
	}
	if base1 != 0 {
		t.Fatalf("first baseVertex = %d, want 0", base1)
	}
	if base2 != 4 {
		t.Fatalf("second baseVertex = %d, want 4 (prior NumVertices)", base2)
	}
	cmd := b.Draw(idx1)
	if cmd.NumVertices != 8 || cmd.NumIndices != 12 {
		t.Fatalf("coalesced command = {%d verts, %d idx}, want {8, 12}", cmd.NumVertices, cmd.NumIndices)
	}
	if len(b.DrawCommands) != 1 {
		t.Fatalf("len(DrawCommands) = %d, want 1", len(b.DrawCommands))
	}
}

func TestAllocDrawCommandBreaksOnScissorChange(t *testing.T) {
	b := New()
	b.AllocDrawCommand(0, 0, 0, 4, 6, Textured, 0, Scissor{0, 0, 100, 100})
	b.ForceNewDraw() // setScissor always forces a new command
	b.AllocDrawCommand(0, 4, 6, 4, 6, Textured, 0, Scissor{0, 0, 50, 50})

	if len(b.DrawCommands) != 2 {
		t.Fatalf("len(DrawCommands) = %d, want 2", len(b.DrawCommands))
	}
	if b.DrawCommands[0].Scissor != (Scissor{0, 0, 100, 100}) {
		t.Fatalf("first command scissor changed unexpectedly")
	}
	if b.DrawCommands[1].Scissor != (Scissor{0, 0, 50, 50}) {
		t.Fatalf("second command scissor = %v, want (0,0,50,50)", b.DrawCommands[1].Scissor)
	}
}

func TestAllocDrawCommandBreaksOnHandleOrType(t *testing.T) {
	b := New()
	b.AllocDrawCommand(0, 0, 0, 4, 6, Textured, 1, Scissor{})
	_, _, merged := b.AllocDrawCommand(0, 4, 6, 4, 6, Textured, 2, Scissor{})
	if merged {
		t.Fatalf("differing handleId must not coalesce")
	}
	_, _, merged2 := b.AllocDrawCommand(0, 8, 12, 4, 6, ColorGradient, 2, Scissor{})
	if merged2 {
		t.Fatalf("differing type must not coalesce")
	}
	if len(b.DrawCommands) != 3 {
		t.Fatalf("len(DrawCommands) = %d, want 3", len(b.DrawCommands))
	}
}

func TestClipCommandsDoNotAppearInDrawCommands(t *testing.T) {
	b := New()
	if !b.BeginClip(In) {
		t.Fatalf("BeginClip should succeed when not already recording")
	}
	b.AllocDrawCommand(0, 0, 0, 3, 3, Textured, 0, Scissor{})
	if !b.EndClip() {
		t.Fatalf("EndClip should succeed when a clip range is open")
	}
	b.AllocDrawCommand(0, 3, 3, 3, 3, Textured, 0, Scissor{})

	if len(b.ClipCommands) != 1 {
		t.Fatalf("len(ClipCommands) = %d, want 1", len(b.ClipCommands))
	}
	if len(b.DrawCommands) != 1 {
		t.Fatalf("len(DrawCommands) = %d, want 1 (clip fill must not leak into draws)", len(b.DrawCommands))
	}
	if !b.DrawCommands[0].Clip.Active {
		t.Fatalf("draw command after endClip should carry the clip snapshot")
	}
	if b.DrawCommands[0].Clip.NumClipCmds != 1 {
		t.Fatalf("clip.NumClipCmds = %d, want 1", b.DrawCommands[0].Clip.NumClipCmds)
	}
}

func TestBeginClipRejectsNesting(t *testing.T) {
	b := New()
	b.BeginClip(In)
	if b.BeginClip(NotIn) {
		t.Fatalf("nested BeginClip must be rejected")
	}
}

func TestEndClipWithoutBeginIsNoOp(t *testing.T) {
	b := New()
	if b.EndClip() {
		t.Fatalf("EndClip without BeginClip must report failure")
	}
}

func TestResetClipForcesNewDrawCommand(t *testing.T) {
	b := New()
	b.BeginClip(In)
	b.AllocDrawCommand(0, 0, 0, 3, 3, Textured, 0, Scissor{})
	b.EndClip()
	b.AllocDrawCommand(0, 3, 3, 3, 3, Textured, 0, Scissor{})
	b.ResetClip()
	b.AllocDrawCommand(0, 6, 6, 3, 3, Textured, 0, Scissor{})

	if len(b.DrawCommands) != 2 {
		t.Fatalf("resetClip should force a new draw command, got %d commands", len(b.DrawCommands))
	}
	if b.DrawCommands[1].Clip.Active {
		t.Fatalf("draw command after resetClip should carry the sentinel clip state")
	}
}

func TestFirstClipCmdMonotonicNonDecreasing(t *testing.T) {
	b := New()
	b.BeginClip(In)
	b.AllocDrawCommand(0, 0, 0, 3, 3, Textured, 0, Scissor{})
	b.EndClip()
	b.AllocDrawCommand(0, 3, 3, 3, 3, Textured, 0, Scissor{})

	b.BeginClip(NotIn)
	b.AllocDrawCommand(0, 6, 6, 3, 3, Textured, 0, Scissor{})
	b.EndClip()
	b.AllocDrawCommand(0, 9, 9, 3, 3, Textured, 0, Scissor{})

	prev := uint32(0)
	for i, cmd := range b.DrawCommands {
		if cmd.Clip.FirstClipCmd < prev {
			t.Fatalf("draw command %d has FirstClipCmd %d < previous %d", i, cmd.Clip.FirstClipCmd, prev)
		}
		prev = cmd.Clip.FirstClipCmd
	}
}
