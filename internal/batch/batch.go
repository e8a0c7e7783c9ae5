// Package batch implements the draw-command batcher: two parallel ordered
// command lists (clip commands, draw commands) with a coalescing rule that
// merges contiguous compatible primitives, plus the stencil-based nested
// clip protocol layered on top (clip.go).
//
// Grounded on the teacher's tagged-variant scene/tag.go command style
// (type enum + per-type fields, no virtual dispatch) and
// internal/clip/stack.go's push/pop-with-saved-bounds shape, generalized
// here to stencil ranges instead of CPU clip-rect intersection.
package batch

// Type is the draw-command kind, a tagged variant rather than an interface
// (spec §9: "tagged-variant ... no virtual dispatch").
type Type uint8

const (
	Textured Type = iota
	ColorGradient
	ImagePattern
	Clip
)

// HandleSentinel is the handleId recorded on Clip-type commands, which
// carry no real handle.
const HandleSentinel uint16 = 0xFFFF

// Scissor is an axis-aligned scissor rect in canvas-space integer units.
// An array (not a slice) so two Scissor values compare with ==, which the
// coalescing rule depends on.
type Scissor [4]uint16

// ClipRule selects the stencil comparison a draw command runs under.
type ClipRule uint8

const (
	// In selects STENCIL_EQUAL against the clip's reference value.
	In ClipRule = iota
	// NotIn selects STENCIL_NOT_EQUAL against the clip's reference value.
	NotIn
)

// ClipState is attached to every draw command as a snapshot of the active
// clip at the time the command was created. Active == false is the
// sentinel "no clip in effect" state.
type ClipState struct {
	Rule         ClipRule
	FirstClipCmd uint32
	NumClipCmds  uint32
	Active       bool
}

// Command is a single batched draw or clip command.
type Command struct {
	Type        Type
	ArenaID     uint32
	FirstVertex uint32
	FirstIndex  uint32
	NumVertices uint32
	NumIndices  uint32
	Scissor     Scissor
	HandleID    uint16
	Clip        ClipState
}

// Batcher owns the clip-command and draw-command lists for one frame and
// the clip-protocol engine state layered over them (see clip.go).
type Batcher struct {
	ClipCommands []Command
	DrawCommands []Command

	recordClipCmds  bool
	forceNewClipCmd bool
	forceNewDrawCmd bool

	clip              ClipState
	clipFirstAtBeginn uint32
}

// New returns an empty Batcher ready for a frame.
func New() *Batcher {
	return &Batcher{}
}

// Reset clears both command lists and the clip-protocol state for a new
// frame. Arenas are rotated by the caller (vg/frame.go); Batcher only
// tracks command bookkeeping.
func (b *Batcher) Reset() {
	b.ClipCommands = b.ClipCommands[:0]
	b.DrawCommands = b.DrawCommands[:0]
	b.recordClipCmds = false
	b.forceNewClipCmd = false
	b.forceNewDrawCmd = false
	b.clip = ClipState{}
	b.clipFirstAtBeginn = 0
}

// ForceNewDraw marks that the next AllocDrawCommand must not coalesce with
// the prior command. Called by the Context whenever the scissor changes or
// a new vertex arena is opened (spec §4.2, §4.3).
func (b *Batcher) ForceNewDraw() { b.forceNewDrawCmd = true }

// ForceNewClip is the clip-command analogue of ForceNewDraw.
func (b *Batcher) ForceNewClip() { b.forceNewClipCmd = true }

// RecordingClip reports whether beginClip/endClip is currently open.
func (b *Batcher) RecordingClip() bool { return b.recordClipCmds }

// AllocDrawCommand records a draw of numVertices/numIndices starting at
// (firstVertex, firstIndex) within arenaID. If the trailing command in the
// active list (clip or draw, depending on RecordingClip) matches on
// {arenaId, type, handle, scissor} and no force-new flag is set, the
// existing command's counts are extended in place and baseVertex is its
// prior NumVertices (the base the caller must add to freshly authored
// index data, per spec §4.3's "authored already in the same index space as
// the arena"). Otherwise a new command is appended, merged==false and
// baseVertex==0.
func (b *Batcher) AllocDrawCommand(arenaID, firstVertex, firstIndex, numVertices, numIndices uint32, typ Type, handleID uint16, scissor Scissor) (index int, baseVertex uint32, merged bool) {
	if b.recordClipCmds {
		return b.allocInto(&b.ClipCommands, &b.forceNewClipCmd, arenaID, firstVertex, firstIndex, numVertices, numIndices, Clip, HandleSentinel, scissor, ClipState{})
	}
	return b.allocInto(&b.DrawCommands, &b.forceNewDrawCmd, arenaID, firstVertex, firstIndex, numVertices, numIndices, typ, handleID, scissor, b.clip)
}

func (b *Batcher) allocInto(list *[]Command, forceNew *bool, arenaID, firstVertex, firstIndex, numVertices, numIndices uint32, typ Type, handleID uint16, scissor Scissor, clip ClipState) (index int, baseVertex uint32, merged bool) {
	if !*forceNew && len(*list) > 0 {
		last := &(*list)[len(*list)-1]
		if last.ArenaID == arenaID && last.Type == typ && last.HandleID == handleID && last.Scissor == scissor {
			baseVertex = last.NumVertices
			last.NumVertices += numVertices
			last.NumIndices += numIndices
			return len(*list) - 1, baseVertex, true
		}
	}
	cmd := Command{
		Type:        typ,
		ArenaID:     arenaID,
		FirstVertex: firstVertex,
		FirstIndex:  firstIndex,
		NumVertices: numVertices,
		NumIndices:  numIndices,
		Scissor:     scissor,
		HandleID:    handleID,
		Clip:        clip,
	}
	*list = append(*list, cmd)
	*forceNew = false
	return len(*list) - 1, 0, false
}

// Draw returns the command at index i in DrawCommands.
func (b *Batcher) Draw(i int) *Command { return &b.DrawCommands[i] }

// ClipCmd returns the command at index i in ClipCommands.
func (b *Batcher) ClipCmd(i int) *Command { return &b.ClipCommands[i] }
