// Package format implements the region codec (C7) and the NBT/region
// format adapter (C8): a generic NBT document model with passthrough
// support, and a random-access reader/writer for the game's region archive
// container.
package format

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// sectorSize is the region archive's allocation granularity.
	sectorSize = 4096
	// headerSectors is the number of sectors occupied by the location and
	// timestamp tables.
	headerSectors = 2
	// compressionZlib is the payload compression-type byte for zlib
	// (RFC 1950 deflate), the scheme this adapter always uses.
	compressionZlib = 2
	// regionChunks is the number of chunk slots in a region (32x32).
	regionChunks = 32 * 32
)

// Archive is a random-access reader/writer for a single region (.mca) file:
// a 2-sector header (a 1024-entry location table followed by a 1024-entry
// timestamp table) followed by sector-aligned, zlib-compressed chunk
// payloads.
//
// WriteChunk always appends new sectors at the end of the file rather than
// reusing the sectors an overwritten chunk previously occupied. This is
// deliberately simple: a Save pass (format/save.go) reads and rewrites every
// one of the 1024 slots in a region exactly once, so the only cost of never
// reclaiming freed sectors is that the file is up to roughly twice its
// template size by the time a save finishes, not unbounded growth across
// repeated saves.
type Archive struct {
	f          *os.File
	locations  [regionChunks]uint32 // (sectorOffset<<8)|sectorCount, 0 = absent
	timestamps [regionChunks]uint32
	nextSector uint32
}

// ErrChunkNotPresent is returned by ReadChunk when the requested slot has
// never been written.
var ErrChunkNotPresent = fmt.Errorf("region: chunk slot not present")

func slotIndex(cxLocal, czLocal int) (int, error) {
	if cxLocal < 0 || cxLocal >= 32 || czLocal < 0 || czLocal >= 32 {
		return 0, fmt.Errorf("region: chunk-local coordinates (%d,%d) out of [0,32)", cxLocal, czLocal)
	}
	return czLocal*32 + cxLocal, nil
}

// Open opens an existing region file for random-access read/write.
func Open(path string) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, err)
	}
	a := &Archive{f: f}
	if err := a.readHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return a, nil
}

// CreateFromTemplate creates a brand-new region file at path, populated
// with regionChunks default (empty, air) chunks compressed at the given
// zlib level, and returns it open for patching. It truncates any existing
// file at path.
func CreateFromTemplate(path string, level int) (*Archive, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("region: create %s: %w", path, err)
	}
	a := &Archive{f: f, nextSector: headerSectors}
	if err := a.writeHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	payload, err := defaultChunkPayload()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			if err := a.WriteChunk(x, z, payload, level); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("region: write template chunk (%d,%d): %w", x, z, err)
			}
		}
	}
	return a, nil
}

// readHeader loads the location and timestamp tables and reconstructs
// nextSector from the highest occupied sector.
func (a *Archive) readHeader() error {
	header := make([]byte, headerSectors*sectorSize)
	if _, err := io.ReadFull(a.f, header); err != nil {
		return fmt.Errorf("region: read header: %w", err)
	}
	for i := 0; i < regionChunks; i++ {
		a.locations[i] = binary.BigEndian.Uint32(header[i*4:])
		a.timestamps[i] = binary.BigEndian.Uint32(header[regionChunks*4+i*4:])
	}
	a.nextSector = headerSectors
	for _, loc := range a.locations {
		if loc == 0 {
			continue
		}
		offset, count := loc>>8, loc&0xFF
		if end := offset + count; end > a.nextSector {
			a.nextSector = end
		}
	}
	return nil
}

// writeHeader flushes the location and timestamp tables to disk.
func (a *Archive) writeHeader() error {
	header := make([]byte, headerSectors*sectorSize)
	for i := 0; i < regionChunks; i++ {
		binary.BigEndian.PutUint32(header[i*4:], a.locations[i])
		binary.BigEndian.PutUint32(header[regionChunks*4+i*4:], a.timestamps[i])
	}
	if _, err := a.f.WriteAt(header, 0); err != nil {
		return fmt.Errorf("region: write header: %w", err)
	}
	return nil
}

// ReadChunk returns the decompressed NBT bytes stored at chunk-local
// (cxLocal, czLocal), or ErrChunkNotPresent if that slot was never written.
func (a *Archive) ReadChunk(cxLocal, czLocal int) ([]byte, error) {
	idx, err := slotIndex(cxLocal, czLocal)
	if err != nil {
		return nil, err
	}
	loc := a.locations[idx]
	if loc == 0 {
		return nil, ErrChunkNotPresent
	}
	offset, count := int64(loc>>8), int64(loc&0xFF)

	buf := make([]byte, count*sectorSize)
	if _, err := a.f.ReadAt(buf, offset*sectorSize); err != nil {
		return nil, fmt.Errorf("region: read chunk (%d,%d): %w", cxLocal, czLocal, err)
	}
	length := binary.BigEndian.Uint32(buf[0:4])
	if length == 0 || int(length) > len(buf)-4 {
		return nil, fmt.Errorf("region: chunk (%d,%d) has corrupt length header", cxLocal, czLocal)
	}
	compressionType := buf[4]
	if compressionType != compressionZlib {
		return nil, fmt.Errorf("region: chunk (%d,%d) uses unsupported compression type %d", cxLocal, czLocal, compressionType)
	}
	compressed := buf[5 : 4+length]

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("region: zlib header for chunk (%d,%d): %w", cxLocal, czLocal, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("region: inflate chunk (%d,%d): %w", cxLocal, czLocal, err)
	}
	return data, nil
}

// WriteChunk zlib-compresses payload at the given level, appends it as new
// sectors at the end of the file, and updates the location/timestamp tables
// for slot (cxLocal, czLocal).
func (a *Archive) WriteChunk(cxLocal, czLocal int, payload []byte, level int) error {
	idx, err := slotIndex(cxLocal, czLocal)
	if err != nil {
		return err
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, level)
	if err != nil {
		return fmt.Errorf("region: zlib writer: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		_ = zw.Close()
		return fmt.Errorf("region: compress chunk (%d,%d): %w", cxLocal, czLocal, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("region: finish compressing chunk (%d,%d): %w", cxLocal, czLocal, err)
	}

	framed := make([]byte, 5+compressed.Len())
	binary.BigEndian.PutUint32(framed[0:4], uint32(1+compressed.Len()))
	framed[4] = compressionZlib
	copy(framed[5:], compressed.Bytes())

	sectorsNeeded := uint32((len(framed) + sectorSize - 1) / sectorSize)
	if sectorsNeeded > 0xFF {
		return fmt.Errorf("region: chunk (%d,%d) needs %d sectors, exceeding the 255-sector limit", cxLocal, czLocal, sectorsNeeded)
	}
	padded := make([]byte, sectorsNeeded*sectorSize)
	copy(padded, framed)

	offset := a.nextSector
	if _, err := a.f.WriteAt(padded, int64(offset)*sectorSize); err != nil {
		return fmt.Errorf("region: write chunk (%d,%d): %w", cxLocal, czLocal, err)
	}
	a.nextSector += sectorsNeeded

	a.locations[idx] = (offset << 8) | sectorsNeeded
	// The timestamp table is left at 0 rather than stamped with the wall
	// clock: SPEC_FULL.md requires two back-to-back saves of an unchanged
	// world to produce byte-identical region files, which a real timestamp
	// would break.
	a.timestamps[idx] = 0
	return a.writeHeader()
}

// Close flushes the header and closes the underlying file.
func (a *Archive) Close() error {
	if err := a.writeHeader(); err != nil {
		_ = a.f.Close()
		return err
	}
	return a.f.Close()
}
