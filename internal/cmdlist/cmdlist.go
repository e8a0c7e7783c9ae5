// Package cmdlist implements the command-list recorder and player: an
// aligned byte-buffer encoding with typed, self-describing command headers,
// a side buffer for strings, and local-handle relocation for
// gradients/image patterns created during recording.
//
// Grounded on the teacher's scene/tag.go + scene/encoding.go dual-stream
// tag+payload byte encoding, and recording/recorder.go's Playback
// cursor-walk-and-dispatch loop; local-handle indirection mirrors
// recording/pool.go's *Ref pattern, generalized from object pointers to
// small integer handles.
package cmdlist

import (
	"encoding/binary"
	"math"
)

// Alignment is the byte alignment every command payload is padded to,
// matching the original renderer's command-list alignment constant.
const Alignment = 16

// HeaderSize is the fixed size of a command header: a type tag and the
// aligned payload size that follows it.
const HeaderSize = 8

// Flag bits for CommandList.Flags.
const (
	Cacheable           uint32 = 1 << 0
	AllowCommandCulling uint32 = 1 << 1
)

// localBit marks a gradient/image-pattern handle recorded during capture as
// local to this command list; the player relocates it by adding its base
// index at replay (spec §4.6/§4.7, "local handle").
const localBit uint32 = 1 << 31

// LocalHandle packs a local-scope index with the relocation bit set.
func LocalHandle(idx uint16) uint32 { return localBit | uint32(idx) }

// IsLocal reports whether h carries the local-handle bit.
func IsLocal(h uint32) bool { return h&localBit != 0 }

// LocalIndex extracts the recorded local index from h.
func LocalIndex(h uint32) uint16 { return uint16(h &^ localBit) }

// List is a single recorded command list: an aligned command buffer, a
// side buffer for string payloads, and per-kind local handle counters.
type List struct {
	Cmds             []byte
	Strings          []byte
	Flags            uint32
	NumGradients     uint16
	NumImagePatterns uint16
	Cache            interface{} // *shapecache.Cache when Cacheable; kept as interface{} to avoid an import cycle with the vg package that owns cache lifetime
}

// NewList returns an empty list with the given flags.
func NewList(flags uint32) *List {
	return &List{Flags: flags}
}

// Reset truncates the list for reuse without releasing backing arrays.
func (l *List) Reset() {
	l.Cmds = l.Cmds[:0]
	l.Strings = l.Strings[:0]
	l.NumGradients = 0
	l.NumImagePatterns = 0
	l.Cache = nil
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// StoreString appends s to the string side buffer and returns its offset.
func (l *List) StoreString(s string) (offset, length uint32) {
	offset = uint32(len(l.Strings))
	l.Strings = append(l.Strings, s...)
	return offset, uint32(len(s))
}

// LoadString reads back a string previously stored with StoreString.
func (l *List) LoadString(offset, length uint32) string {
	return string(l.Strings[offset : offset+length])
}

// writer accumulates one command's aligned payload before it is appended to
// the list by Recorder.emit.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) f32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// reader decodes a single command's payload in the same field order it was
// written.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) u8() uint8 {
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *reader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}
