package debugdump

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/oriumgames/worldeditor/config"
	"github.com/oriumgames/worldeditor/voxel"
)

const (
	// magicNumber identifies a snapshot dump file ("WeDb").
	magicNumber = 0x57654462
	// currentVersion is the latest supported snapshot format version.
	currentVersion = 1

	compressionNone = 0
	compressionZstd = 1
)

// SectionSummary counts blocks in one chunk section without carrying the
// blocks themselves.
type SectionSummary struct {
	Y            int32
	PaletteSize  int
	NonAirBlocks int
}

// ChunkSummary is one chunk's section summaries.
type ChunkSummary struct {
	X, Z     int32
	Sections []SectionSummary
}

// RegionSummary is one region's chunk summaries.
type RegionSummary struct {
	X, Z   int32
	Chunks []ChunkSummary
}

// Snapshot is a point-in-time summary of a world buffer, tagged with a
// session identifier so successive dumps from the same run can be
// correlated.
type Snapshot struct {
	SessionID uuid.UUID
	Regions   []RegionSummary
}

// Summarize builds a Snapshot of w. Region, chunk, and section order are
// sorted for reproducible output.
func Summarize(w *voxel.World) Snapshot {
	regions := w.Regions()
	regionPositions := make([]voxel.RegionPos, 0, len(regions))
	for pos := range regions {
		regionPositions = append(regionPositions, pos)
	}
	sort.Slice(regionPositions, func(i, j int) bool {
		if regionPositions[i].X != regionPositions[j].X {
			return regionPositions[i].X < regionPositions[j].X
		}
		return regionPositions[i].Z < regionPositions[j].Z
	})

	snap := Snapshot{SessionID: uuid.New()}
	for _, rpos := range regionPositions {
		region := regions[rpos]
		chunks := region.Chunks()
		chunkPositions := make([]voxel.ChunkPos, 0, len(chunks))
		for pos := range chunks {
			chunkPositions = append(chunkPositions, pos)
		}
		sort.Slice(chunkPositions, func(i, j int) bool {
			if chunkPositions[i].X != chunkPositions[j].X {
				return chunkPositions[i].X < chunkPositions[j].X
			}
			return chunkPositions[i].Z < chunkPositions[j].Z
		})

		rs := RegionSummary{X: rpos.X, Z: rpos.Z}
		for _, cpos := range chunkPositions {
			c := chunks[cpos]
			cs := ChunkSummary{X: c.X, Z: c.Z}
			for _, enc := range c.Sections() {
				cs.Sections = append(cs.Sections, summarizeSection(enc))
			}
			rs.Chunks = append(rs.Chunks, cs)
		}
		snap.Regions = append(snap.Regions, rs)
	}
	return snap
}

func summarizeSection(enc voxel.EncodedSection) SectionSummary {
	section := voxel.DecodeSection(enc.Palette, enc.BitsPerBlock, enc.Data)
	nonAir := 0
	for x := 0; x < voxel.SectionSize; x++ {
		for y := 0; y < voxel.SectionSize; y++ {
			for z := 0; z < voxel.SectionSize; z++ {
				if _, ok := section.Get(x, y, z); ok {
					nonAir++
				}
			}
		}
	}
	return SectionSummary{Y: enc.Y, PaletteSize: len(enc.Palette), NonAirBlocks: nonAir}
}

// Encode serializes a snapshot, zstd-compressing the body.
func Encode(snap Snapshot) ([]byte, error) {
	body := newBuffer()
	body.WriteBytes(snap.SessionID[:])
	body.WriteVarInt(int64(len(snap.Regions)))
	for _, r := range snap.Regions {
		body.WriteInt32(r.X)
		body.WriteInt32(r.Z)
		body.WriteVarInt(int64(len(r.Chunks)))
		for _, c := range r.Chunks {
			body.WriteInt32(c.X)
			body.WriteInt32(c.Z)
			body.WriteVarInt(int64(len(c.Sections)))
			for _, s := range c.Sections {
				body.WriteInt32(s.Y)
				body.WriteVarInt(int64(s.PaletteSize))
				body.WriteVarInt(int64(s.NonAirBlocks))
			}
		}
	}

	data := body.Bytes()
	compression := compressionNone
	payload := data
	if encoder, err := zstd.NewWriter(nil); err == nil {
		compressed := encoder.EncodeAll(data, make([]byte, 0, len(data)))
		_ = encoder.Close()
		if len(compressed) < len(data) {
			compression = compressionZstd
			payload = compressed
		}
	}

	out := newBuffer()
	out.WriteInt32(int32(magicNumber))
	out.WriteVarInt(int64(currentVersion))
	out.WriteVarInt(int64(compression))
	out.WriteBytes(payload)
	return out.Bytes(), nil
}

// Decode parses bytes previously produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	r := newReader(bytes.NewReader(data))

	magic, err := r.ReadInt32()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read magic: %w", err)
	}
	if uint32(magic) != magicNumber {
		return Snapshot{}, fmt.Errorf("debugdump: invalid magic number 0x%08X", uint32(magic))
	}
	version, err := r.ReadVarInt()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read version: %w", err)
	}
	if version > currentVersion {
		return Snapshot{}, fmt.Errorf("debugdump: unsupported version %d", version)
	}
	compression, err := r.ReadVarInt()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read compression: %w", err)
	}
	payload, err := r.ReadBytes()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read payload: %w", err)
	}

	if compression == compressionZstd {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return Snapshot{}, fmt.Errorf("debugdump: create zstd decoder: %w", err)
		}
		defer decoder.Close()
		payload, err = decoder.DecodeAll(payload, nil)
		if err != nil {
			return Snapshot{}, fmt.Errorf("debugdump: inflate payload: %w", err)
		}
	}

	br := newReader(bytes.NewReader(payload))
	sidBytes, err := br.ReadBytes()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read session id: %w", err)
	}
	sid, err := uuid.FromBytes(sidBytes)
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: parse session id: %w", err)
	}

	snap := Snapshot{SessionID: sid}
	regionCount, err := br.ReadVarInt()
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: read region count: %w", err)
	}
	for i := int64(0); i < regionCount; i++ {
		rx, err := br.ReadInt32()
		if err != nil {
			return Snapshot{}, fmt.Errorf("debugdump: read region %d x: %w", i, err)
		}
		rz, err := br.ReadInt32()
		if err != nil {
			return Snapshot{}, fmt.Errorf("debugdump: read region %d z: %w", i, err)
		}
		rs := RegionSummary{X: rx, Z: rz}

		chunkCount, err := br.ReadVarInt()
		if err != nil {
			return Snapshot{}, fmt.Errorf("debugdump: read region %d chunk count: %w", i, err)
		}
		for j := int64(0); j < chunkCount; j++ {
			cx, err := br.ReadInt32()
			if err != nil {
				return Snapshot{}, fmt.Errorf("debugdump: read chunk %d x: %w", j, err)
			}
			cz, err := br.ReadInt32()
			if err != nil {
				return Snapshot{}, fmt.Errorf("debugdump: read chunk %d z: %w", j, err)
			}
			cs := ChunkSummary{X: cx, Z: cz}

			sectionCount, err := br.ReadVarInt()
			if err != nil {
				return Snapshot{}, fmt.Errorf("debugdump: read chunk %d section count: %w", j, err)
			}
			for k := int64(0); k < sectionCount; k++ {
				y, err := br.ReadInt32()
				if err != nil {
					return Snapshot{}, fmt.Errorf("debugdump: read section %d y: %w", k, err)
				}
				paletteSize, err := br.ReadVarInt()
				if err != nil {
					return Snapshot{}, fmt.Errorf("debugdump: read section %d palette size: %w", k, err)
				}
				nonAir, err := br.ReadVarInt()
				if err != nil {
					return Snapshot{}, fmt.Errorf("debugdump: read section %d non-air count: %w", k, err)
				}
				cs.Sections = append(cs.Sections, SectionSummary{Y: y, PaletteSize: int(paletteSize), NonAirBlocks: int(nonAir)})
			}
			rs.Chunks = append(rs.Chunks, cs)
		}
		snap.Regions = append(snap.Regions, rs)
	}
	return snap, nil
}

// Dump writes a snapshot of w to outDir as "<session-id>.snapshot", gated
// behind cfg.Debug. When cfg.Debug is false, Dump is a no-op and returns an
// empty path.
func Dump(w *voxel.World, outDir string, cfg config.Config) (string, error) {
	if !cfg.Debug {
		return "", nil
	}
	snap := Summarize(w)
	data, err := Encode(snap)
	if err != nil {
		return "", fmt.Errorf("debugdump: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("debugdump: create output directory: %w", err)
	}
	path := filepath.Join(outDir, fmt.Sprintf("%s.snapshot", snap.SessionID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("debugdump: write %s: %w", path, err)
	}
	return path, nil
}
