package voxel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/worldeditor/block"
	"github.com/oriumgames/worldeditor/voxel"
)

func TestChunkLazyMaterialisation(t *testing.T) {
	c := voxel.NewChunk(0, 0)
	assert.Empty(t, c.Sections())

	c.Set(0, 64, 0, block.Stone)
	assert.Len(t, c.Sections(), 1)

	got, ok := c.Get(0, 64, 0)
	require.True(t, ok)
	assert.True(t, got.Equal(block.Stone))
}

func TestChunkSectionsSortedByY(t *testing.T) {
	c := voxel.NewChunk(0, 0)
	c.Set(0, 64, 0, block.Stone) // section 4
	c.Set(0, 0, 0, block.Dirt)   // section 0
	c.Set(0, -16, 0, block.Water) // section -1

	sections := c.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, int32(-1), sections[0].Y)
	assert.Equal(t, int32(0), sections[1].Y)
	assert.Equal(t, int32(4), sections[2].Y)
}

func TestAppendBlockEntity(t *testing.T) {
	c := voxel.NewChunk(0, 0)
	c.AppendBlockEntity(map[string]any{"id": "minecraft:sign"})
	c.AppendBlockEntity(map[string]any{"id": "minecraft:chest"})

	list, ok := c.Other["block_entities"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}
