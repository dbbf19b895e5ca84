package format_test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/worldeditor/format"
)

const sectorSize = 4096

func TestCreateFromTemplateWritesAllSlots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	archive, err := format.CreateFromTemplate(path, -1)
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var locations [4096]byte
	_, err = io.ReadFull(f, locations[:])
	require.NoError(t, err)

	entry := binary.BigEndian.Uint32(locations[0:4])
	offset, count := entry>>8, entry&0xFF
	assert.Equal(t, uint32(2), offset)
	assert.NotZero(t, count)

	// last slot (31,31) must also be present.
	lastEntry := binary.BigEndian.Uint32(locations[4092:4096])
	assert.NotZero(t, lastEntry)
}

func TestWriteChunkThenReadChunkRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	archive, err := format.CreateFromTemplate(path, -1)
	require.NoError(t, err)
	defer archive.Close()

	payload := []byte("hello chunk payload")
	require.NoError(t, archive.WriteChunk(5, 7, payload, -1))

	got, err := archive.ReadChunk(5, 7)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadChunkOnTemplateSlotIsDecodeableNBT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.2.-1.mca")

	archive, err := format.CreateFromTemplate(path, -1)
	require.NoError(t, err)
	defer archive.Close()

	raw, err := archive.ReadChunk(0, 0)
	require.NoError(t, err)

	doc, err := format.DecodeChunkDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:full", doc["Status"])
}

func TestRegionFileHeaderAndChunkFraming(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	archive, err := format.CreateFromTemplate(path, -1)
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var locations [4096]byte
	_, err = io.ReadFull(f, locations[:])
	require.NoError(t, err)
	entry := binary.BigEndian.Uint32(locations[0:4])
	offset, count := int64(entry>>8), entry&0xFF
	require.NotZero(t, count)

	_, err = f.Seek(offset*sectorSize, io.SeekStart)
	require.NoError(t, err)

	var chunkHeader [5]byte
	_, err = io.ReadFull(f, chunkHeader[:])
	require.NoError(t, err)

	payloadLen := binary.BigEndian.Uint32(chunkHeader[0:4])
	compression := chunkHeader[4]
	assert.EqualValues(t, 2, compression)
	require.True(t, payloadLen >= 1)

	compressed := make([]byte, payloadLen-1)
	_, err = io.ReadFull(f, compressed)
	require.NoError(t, err)

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer zr.Close()

	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.NotEmpty(t, decompressed)
}

func TestReadChunkAbsentSlotReturnsErrChunkNotPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	f, err := os.Create(path)
	require.NoError(t, err)
	// An empty freshly-created (not template-populated) file has a zeroed
	// header: every slot reports absent.
	require.NoError(t, f.Truncate(2*sectorSize))
	require.NoError(t, f.Close())

	archive, err := format.Open(path)
	require.NoError(t, err)
	defer archive.Close()

	_, err = archive.ReadChunk(0, 0)
	assert.ErrorIs(t, err, format.ErrChunkNotPresent)
}

func TestWriteChunkOutOfBoundsCoordinates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")

	archive, err := format.CreateFromTemplate(path, -1)
	require.NoError(t, err)
	defer archive.Close()

	err = archive.WriteChunk(32, 0, []byte("x"), -1)
	assert.Error(t, err)
}
