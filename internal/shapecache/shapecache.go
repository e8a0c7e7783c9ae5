// Package shapecache memoizes tessellated meshes in object space, keyed by
// a command list's average scale, so replaying a command list under an
// unchanged scale can skip Path/Stroker work entirely and re-emit draws by
// forward-transforming cached positions.
//
// Grounded on the teacher's scene/cache.go LayerCache, adapted from an
// LRU-evicted pixmap cache to the spec's coarse "hard reset on scale
// change" invalidation policy (spec §4.8, §9).
package shapecache

import "github.com/gogpu/vg/internal/mathutil"

// Mesh is one tessellated primitive stored in object space (i.e. already
// transformed by the inverse of the transform active when it was recorded).
type Mesh struct {
	Pos         []float32 // 2 floats per vertex, object space
	Colors      []uint32  // per-vertex color, nil means "uniform color supplied at replay"
	Indices     []uint16
	NumVertices uint32
	NumIndices  uint32
}

// Command groups the meshes produced by one stroker emission (one
// fillPath/strokePath call) together with the inverse transform used to
// bring its meshes into object space.
type Command struct {
	FirstMesh    uint32
	NumMeshes    uint32
	InvTransform mathutil.Matrix3
}

// Cache holds every Command/Mesh recorded for one command list, valid only
// while AvgScale matches the command list's current average scale.
type Cache struct {
	Commands  []Command
	Meshes    []Mesh
	AvgScale  float32
	populated bool
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// Valid reports whether the cache holds a complete recording at avgScale.
func (c *Cache) Valid(avgScale float32) bool {
	return c.populated && c.AvgScale == avgScale
}

// Reset discards all recorded commands/meshes and rebinds the cache to a
// new avgScale, per spec §4.8's "hard reset, no LOD" invalidation policy.
func (c *Cache) Reset(avgScale float32) {
	c.Commands = c.Commands[:0]
	c.Meshes = c.Meshes[:0]
	c.AvgScale = avgScale
	c.populated = false
}

// BeginCommand starts recording a new Command and returns its index for
// use with AddMesh/EndCommand.
func (c *Cache) BeginCommand(invTransform mathutil.Matrix3) int {
	c.Commands = append(c.Commands, Command{
		FirstMesh:    uint32(len(c.Meshes)),
		InvTransform: invTransform,
	})
	return len(c.Commands) - 1
}

// AddMesh appends a mesh to the command at cmdIndex. pos must already be in
// object space (the caller applies InvTransform before calling, mirroring
// spec §4.8's "positions are first transformed into object space").
func (c *Cache) AddMesh(cmdIndex int, pos []float32, colors []uint32, indices []uint16) {
	c.Meshes = append(c.Meshes, Mesh{
		Pos:         pos,
		Colors:      colors,
		Indices:     indices,
		NumVertices: uint32(len(pos) / 2),
		NumIndices:  uint32(len(indices)),
	})
	c.Commands[cmdIndex].NumMeshes++
}

// EndCommand is a no-op marker kept for symmetry with the record/end
// pairing used elsewhere in the package (mirrors clAlloc-style bracketing);
// NumMeshes is already maintained incrementally by AddMesh.
func (c *Cache) EndCommand(cmdIndex int) {}

// MarkPopulated flags the cache as holding a full recording, called once
// the owning command list has finished its first cached play.
func (c *Cache) MarkPopulated() { c.populated = true }

// Cursor walks Commands in order during a cached replay, advancing once per
// stroker command regardless of whether that command's draw was culled
// (spec §4.8: "if a stroker command is culled ... its cursor still
// advances").
type Cursor struct {
	next int
}

// NewCursor returns a cursor positioned at the first recorded Command.
func NewCursor() *Cursor { return &Cursor{} }

// Advance returns the next Command and advances the cursor, or ok==false
// once every recorded command has been consumed.
func (cur *Cursor) Advance(c *Cache) (cmd Command, ok bool) {
	if cur.next >= len(c.Commands) {
		return Command{}, false
	}
	cmd = c.Commands[cur.next]
	cur.next++
	return cmd, true
}

// MeshesFor returns the mesh slice belonging to cmd.
func (c *Cache) MeshesFor(cmd Command) []Mesh {
	return c.Meshes[cmd.FirstMesh : cmd.FirstMesh+cmd.NumMeshes]
}
