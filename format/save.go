package format

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oriumgames/worldeditor/config"
	"github.com/oriumgames/worldeditor/log"
	"github.com/oriumgames/worldeditor/progress"
	"github.com/oriumgames/worldeditor/voxel"
)

// Progress span (0-100 scale) the region codec reports over, fixed
// regardless of how many regions a save touches.
const (
	progressStart = 90.0
	progressEnd   = 99.0
)

// SaveWorld writes every region in w to outDir as r.<rx>.<rz>.mca files. For
// each region it creates a fresh template, then reads, patches, and writes
// back every one of the 1024 chunk slots. Progress is reported on sink,
// rate-limited per progress.Limiter, scaled from progressStart to
// progressEnd regardless of region count; the final region's report is
// always forwarded.
//
// An empty world (no writes received) writes no files at all.
func SaveWorld(w *voxel.World, outDir string, cfg config.Config, sink progress.Sink) error {
	regions := w.Regions()
	limiter := progress.NewLimiter(sink)

	total := len(regions)
	if total == 0 {
		limiter.Final(progressEnd, "no regions to save")
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create region directory %s: %w", outDir, err)
	}

	i := 0
	for pos, region := range regions {
		if err := saveRegion(pos, region, outDir, cfg); err != nil {
			return err
		}
		i++
		msg := fmt.Sprintf("saved region (%d,%d)", pos.X, pos.Z)
		percent := progressStart + (progressEnd-progressStart)*float64(i)/float64(total)
		if i == total {
			limiter.Final(progressEnd, msg)
		} else {
			limiter.Report(percent, msg)
		}
		log.Info("region saved", log.F("rx", pos.X), log.F("rz", pos.Z))
	}
	return nil
}

func saveRegion(pos voxel.RegionPos, region *voxel.Region, outDir string, cfg config.Config) error {
	path := filepath.Join(outDir, fmt.Sprintf("r.%d.%d.mca", pos.X, pos.Z))
	archive, err := CreateFromTemplate(path, cfg.Compression.Level())
	if err != nil {
		return fmt.Errorf("create region template %s: %w", path, err)
	}
	defer archive.Close()

	chunks := region.Chunks()
	for cz := 0; cz < 32; cz++ {
		for cx := 0; cx < 32; cx++ {
			if err := patchChunkSlot(archive, chunks, cx, cz, pos, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func patchChunkSlot(archive *Archive, chunks map[voxel.ChunkPos]*voxel.Chunk, cx, cz int, pos voxel.RegionPos, cfg config.Config) error {
	raw, err := archive.ReadChunk(cx, cz)
	if err != nil {
		return fmt.Errorf("read template chunk (%d,%d) in region (%d,%d): %w", cx, cz, pos.X, pos.Z, err)
	}
	doc, err := DecodeChunkDocument(raw)
	if err != nil {
		return fmt.Errorf("decode template chunk (%d,%d) in region (%d,%d): %w", cx, cz, pos.X, pos.Z, err)
	}

	absX := pos.X*32 + int32(cx)
	absZ := pos.Z*32 + int32(cz)
	StampChunk(doc, absX, absZ)

	if c, ok := chunks[voxel.ChunkPos{X: cx, Z: cz}]; ok {
		if err := OverlayChunk(doc, c); err != nil {
			return fmt.Errorf("overlay chunk (%d,%d) in region (%d,%d): %w", cx, cz, pos.X, pos.Z, err)
		}
		log.Debug("patched chunk", log.F("cx", cx), log.F("cz", cz))
	}

	encoded, err := EncodeChunkDocument(doc)
	if err != nil {
		return fmt.Errorf("encode chunk (%d,%d) in region (%d,%d): %w", cx, cz, pos.X, pos.Z, err)
	}
	if err := archive.WriteChunk(cx, cz, encoded, cfg.Compression.Level()); err != nil {
		return fmt.Errorf("write chunk (%d,%d) in region (%d,%d): %w", cx, cz, pos.X, pos.Z, err)
	}
	return nil
}
