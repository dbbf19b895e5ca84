package voxel_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/worldeditor/voxel"
)

func TestDecomposeRecomposeRoundTrips(t *testing.T) {
	f := func(x int32) bool {
		r, c, b := voxel.DecomposeAxis(x)
		return voxel.RecomposeAxis(r, c, b) == x
	}
	assert.NoError(t, quick.Check(f, nil))
}

func TestDecomposeAxisRanges(t *testing.T) {
	_, chunkLocal, blockLocal := voxel.DecomposeAxis(-17)
	assert.GreaterOrEqual(t, int(chunkLocal), 0)
	assert.Less(t, int(chunkLocal), 32)
	assert.GreaterOrEqual(t, int(blockLocal), 0)
	assert.Less(t, int(blockLocal), 16)
}

func TestIndexIsBijection(t *testing.T) {
	seen := make(map[int]bool, 4096)
	for y := 0; y < 16; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				i := voxel.Index(x, y, z)
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, 4096)
				assert.False(t, seen[i], "index %d produced twice", i)
				seen[i] = true
			}
		}
	}
	assert.Len(t, seen, 4096)
}

func TestIndexFormula(t *testing.T) {
	assert.Equal(t, 5*256+5*16+5, voxel.Index(5, 5, 5))
}
