package config_test

import (
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/worldeditor/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.False(t, c.Debug)
	assert.Equal(t, 1000.0, c.ScaleX)
	assert.Equal(t, 1000.0, c.ScaleZ)
}

func TestCompressionLevels(t *testing.T) {
	assert.Equal(t, zlib.DefaultCompression, config.CompressionDefault.Level())
	assert.Equal(t, zlib.BestSpeed, config.CompressionFast.Level())
	assert.Equal(t, zlib.BestCompression, config.CompressionBest.Level())
}

func TestCLIOptionsToConfig(t *testing.T) {
	opts := &config.CLIOptions{Debug: true, ScaleX: 500, ScaleZ: 250, Compression: "best"}
	c := opts.Config()

	assert.True(t, c.Debug)
	assert.Equal(t, 500.0, c.ScaleX)
	assert.Equal(t, 250.0, c.ScaleZ)
	assert.Equal(t, config.CompressionBest, c.Compression)
}
