package voxel_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/worldeditor/block"
	"github.com/oriumgames/worldeditor/voxel"
)

func TestEncodeSingleBlockUsesMinimumBitsPerBlock(t *testing.T) {
	s := voxel.NewSection()
	s.Set(5, 0, 5, block.Stone)

	enc := voxel.EncodeSection(4, s)

	assert.Len(t, enc.Palette, 2) // air + stone
	assert.Equal(t, 4, enc.BitsPerBlock)
	assert.Equal(t, 256, len(enc.Data)) // ceil(4096*4/64)
}

func TestEncode17KindSectionUsesFiveBits(t *testing.T) {
	s := voxel.NewSection()
	for i := 0; i < 16; i++ {
		s.Set(i, 0, 0, block.WithProperties("minecraft:test_block", map[string]string{
			"variant": fmt.Sprintf("%d", i),
		}))
	}
	// 16 distinct non-air kinds + air itself = 17 palette entries.
	enc := voxel.EncodeSection(0, s)

	assert.Len(t, enc.Palette, 17)
	assert.Equal(t, 5, enc.BitsPerBlock)
}

func TestPaletteRoundTrip(t *testing.T) {
	s := voxel.NewSection()
	s.Set(0, 0, 0, block.Stone)
	s.Set(1, 0, 0, block.Dirt)
	s.Set(2, 3, 4, block.Water)
	s.Set(15, 15, 15, block.Glass)

	enc := voxel.EncodeSection(7, s)
	decoded := voxel.DecodeSection(enc.Palette, enc.BitsPerBlock, enc.Data)

	for y := 0; y < 16; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				want, wantOK := s.Get(x, y, z)
				got, gotOK := decoded.Get(x, y, z)
				require.Equal(t, wantOK, gotOK, "presence mismatch at (%d,%d,%d)", x, y, z)
				if wantOK {
					assert.True(t, want.Equal(got), "block mismatch at (%d,%d,%d): want %v got %v", x, y, z, want, got)
				}
			}
		}
	}
}

func TestPackIndicesNeverStraddlesWordBoundary(t *testing.T) {
	// bpb=5: 64/5 = 12 values per word, with 4 leftover bits padding the
	// top of each word. Verify those padding bits are always zero and that
	// decoding recovers the exact indices regardless of word boundaries.
	s := voxel.NewSection()
	for i := 0; i < 4096; i++ {
		s.Set(i&15, (i/256)%16, (i/16)%16, block.WithProperties("minecraft:test", map[string]string{
			"n": fmt.Sprintf("%d", i%20),
		}))
	}
	enc := voxel.EncodeSection(0, s)
	require.Equal(t, 5, enc.BitsPerBlock)

	valuesPerWord := 64 / enc.BitsPerBlock
	padBits := 64 - valuesPerWord*enc.BitsPerBlock
	if padBits > 0 {
		topMask := uint64(((1 << uint(padBits)) - 1)) << uint(64-padBits)
		for _, w := range enc.Data {
			assert.Zero(t, uint64(w)&topMask, "padding bits must be zero")
		}
	}

	decoded := voxel.DecodeSection(enc.Palette, enc.BitsPerBlock, enc.Data)
	for i := 0; i < 4096; i++ {
		x, y, z := i&15, (i/256)%16, (i/16)%16
		want, _ := s.Get(x, y, z)
		got, _ := decoded.Get(x, y, z)
		assert.True(t, want.Equal(got))
	}
}
