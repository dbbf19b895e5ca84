package voxel

import (
	"math/bits"

	"github.com/oriumgames/worldeditor/block"
)

// EncodedSection is the serialised form of a Section: a deduplicated,
// sorted palette, the bit width used to pack indices into Data, and the
// packed indices themselves. This is the shape format.SectionNBT is built
// from; it has no NBT-specific concerns of its own.
type EncodedSection struct {
	Y            int32
	Palette      []block.Block
	BitsPerBlock int
	Data         []int64
}

// bitsPerBlock computes the minimum bit width for a palette of the given
// size, floored at 4 (the game format's minimum), matching
// bpb = max(4, ceil(log2(|palette|))). bits.Len(n-1) computes ceil(log2(n))
// for n >= 1 (and 0 for n == 1, which the floor then raises to 4).
func bitsPerBlock(paletteSize int) int {
	if paletteSize < 1 {
		paletteSize = 1
	}
	n := bits.Len(uint(paletteSize - 1))
	if n < 4 {
		n = 4
	}
	return n
}

// packIndices packs palette indices into 64-bit words, LSB-first, never
// splitting an index across a word boundary: each word holds exactly
// floor(64/bpb) indices, and a word is flushed (zero-padded at the top) as
// soon as it is full rather than when the next index would overflow it.
func packIndices(indices []int, bpb int) []int64 {
	valuesPerWord := 64 / bpb
	data := make([]int64, 0, (len(indices)+valuesPerWord-1)/valuesPerWord)

	var word uint64
	var count int
	for _, idx := range indices {
		word |= uint64(idx) << uint(count*bpb)
		count++
		if count == valuesPerWord {
			data = append(data, int64(word))
			word = 0
			count = 0
		}
	}
	if count > 0 {
		data = append(data, int64(word))
	}
	return data
}

// unpackIndices is the inverse of packIndices: it reads exactly
// floor(64/bpb) indices from each word, stopping at count entries total.
func unpackIndices(data []int64, bpb, count int) []int {
	valuesPerWord := 64 / bpb
	mask := uint64(1)<<uint(bpb) - 1

	out := make([]int, 0, count)
	for _, w := range data {
		uw := uint64(w)
		for c := 0; c < valuesPerWord && len(out) < count; c++ {
			out = append(out, int((uw>>uint(c*bpb))&mask))
		}
		if len(out) >= count {
			break
		}
	}
	return out
}

// EncodeSection builds the palette and packed index array for a section, in
// the index order Index(x,y,z) defines.
func EncodeSection(y int32, s *Section) EncodedSection {
	seen := make(map[string]int, 16)
	palette := make([]block.Block, 0, 16)
	for i := 0; i < SectionBlocks; i++ {
		b := s.blocks[i]
		if _, ok := seen[b.Key()]; !ok {
			seen[b.Key()] = len(palette)
			palette = append(palette, b)
		}
	}
	block.SortBlocks(palette)

	lookup := make(map[string]int, len(palette))
	for idx, b := range palette {
		lookup[b.Key()] = idx
	}

	indices := make([]int, SectionBlocks)
	for i := 0; i < SectionBlocks; i++ {
		indices[i] = lookup[s.blocks[i].Key()]
	}

	bpb := bitsPerBlock(len(palette))
	return EncodedSection{
		Y:            y,
		Palette:      palette,
		BitsPerBlock: bpb,
		Data:         packIndices(indices, bpb),
	}
}

// DecodeSection reconstructs a Section from a palette, bit width, and packed
// index array.
func DecodeSection(palette []block.Block, bpb int, data []int64) *Section {
	indices := unpackIndices(data, bpb, SectionBlocks)
	s := NewSection()
	for i, idx := range indices {
		if idx < 0 || idx >= len(palette) {
			continue
		}
		s.blocks[i] = palette[idx]
	}
	return s
}
