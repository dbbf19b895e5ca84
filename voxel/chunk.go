package voxel

import (
	"sort"

	"github.com/oriumgames/worldeditor/block"
)

// Chunk is a sparse map from section-Y to Section, plus a dictionary of
// passthrough NBT fields the chunk codec merges over the template on save.
// A section is materialised on first write to it; reads against an
// unmaterialised section behave as if it were all Air, without allocating
// one.
type Chunk struct {
	// X, Z are absolute chunk coordinates, stamped at materialisation time
	// and re-stamped authoritatively by the region codec at save.
	X, Z int32

	sections map[int32]*Section

	// Other carries passthrough NBT fields keyed by name, opaque to this
	// package except for "block_entities", which AppendBlockEntity appends
	// to. The region codec merges this dictionary over the template chunk
	// NBT on save, overwriting any keys present here.
	Other map[string]any
}

// NewChunk returns an empty Chunk for absolute chunk coordinates (x, z).
func NewChunk(x, z int32) *Chunk {
	return &Chunk{
		X:        x,
		Z:        z,
		sections: make(map[int32]*Section),
		Other:    make(map[string]any),
	}
}

// Get returns the block at chunk-local (x,y,z), where x,z in [0,16) and y is
// an absolute (signed) block height. Absent if the owning section was never
// materialised or the cell is Air.
func (c *Chunk) Get(x, y, z int) (block.Block, bool) {
	s, ok := c.sections[int32(y>>4)]
	if !ok {
		return block.Block{}, false
	}
	return s.Get(x, y&15, z)
}

// Set writes the block at chunk-local (x,y,z), materialising the owning
// section on demand.
func (c *Chunk) Set(x, y, z int, b block.Block) {
	secY := int32(y >> 4)
	s, ok := c.sections[secY]
	if !ok {
		s = NewSection()
		c.sections[secY] = s
	}
	s.Set(x, y&15, z, b)
}

// Sections returns the encoded form of every materialised section, in
// ascending Y order. Unmaterialised sections are never included: the
// region codec replaces an edited chunk's whole sections list with this
// one, so they simply do not appear in the rewritten sections list.
func (c *Chunk) Sections() []EncodedSection {
	ys := make([]int32, 0, len(c.sections))
	for y := range c.sections {
		ys = append(ys, y)
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })

	out := make([]EncodedSection, 0, len(ys))
	for _, y := range ys {
		out = append(out, EncodeSection(y, c.sections[y]))
	}
	return out
}

// AppendBlockEntity appends entry to Other["block_entities"], creating the
// list if absent. entry is expected to be a map[string]any shaped per the
// chunk NBT's block-entity schema (the sign schema being the only producer
// in this core).
func (c *Chunk) AppendBlockEntity(entry map[string]any) {
	list, _ := c.Other["block_entities"].([]any)
	list = append(list, entry)
	c.Other["block_entities"] = list
}
