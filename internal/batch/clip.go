package batch

// BeginClip opens a clip-recording range. Returns false if a clip range is
// already open (protocol violation, per spec §7: debug-assert / no-op in
// release — the caller logs and ignores the call).
func (b *Batcher) BeginClip(rule ClipRule) bool {
	if b.recordClipCmds {
		return false
	}
	b.recordClipCmds = true
	b.forceNewClipCmd = true
	b.clipFirstAtBeginn = uint32(len(b.ClipCommands))
	b.clip = ClipState{
		Rule:         rule,
		FirstClipCmd: b.clipFirstAtBeginn,
		Active:       true,
	}
	return true
}

// EndClip closes the range opened by BeginClip and forces the next draw
// command to start a fresh batch. Returns false if no clip range is open.
func (b *Batcher) EndClip() bool {
	if !b.recordClipCmds {
		return false
	}
	b.clip.NumClipCmds = uint32(len(b.ClipCommands)) - b.clip.FirstClipCmd
	b.recordClipCmds = false
	b.forceNewDrawCmd = true
	return true
}

// ResetClip clears the active clip state to the sentinel. If a clip was
// active, the next draw command is forced into a new batch.
func (b *Batcher) ResetClip() {
	if b.clip.Active {
		b.forceNewDrawCmd = true
	}
	b.clip = ClipState{}
}

// CurrentClip returns the clip state that would be snapshotted onto the
// next draw command.
func (b *Batcher) CurrentClip() ClipState { return b.clip }
