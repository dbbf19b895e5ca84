package voxel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/worldeditor/block"
	"github.com/oriumgames/worldeditor/voxel"
)

func TestNewSectionIsAllAir(t *testing.T) {
	s := voxel.NewSection()
	_, ok := s.Get(0, 0, 0)
	assert.False(t, ok)
	_, ok = s.Get(15, 15, 15)
	assert.False(t, ok)
}

func TestSectionSetGet(t *testing.T) {
	s := voxel.NewSection()
	s.Set(5, 0, 5, block.Stone)

	got, ok := s.Get(5, 0, 5)
	assert.True(t, ok)
	assert.True(t, got.Equal(block.Stone))

	_, ok = s.Get(5, 1, 5)
	assert.False(t, ok)
}

func TestSectionOverwrite(t *testing.T) {
	s := voxel.NewSection()
	s.Set(0, 0, 0, block.Stone)
	s.Set(0, 0, 0, block.Dirt)

	got, ok := s.Get(0, 0, 0)
	assert.True(t, ok)
	assert.True(t, got.Equal(block.Dirt))
}
