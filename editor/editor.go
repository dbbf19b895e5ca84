// Package editor implements the in-memory world editing facade (C6): the
// single entry point callers use to stage block writes and signs before
// flushing them into region files via format.SaveWorld.
package editor

import (
	"fmt"

	"github.com/oriumgames/worldeditor/block"
	"github.com/oriumgames/worldeditor/config"
	"github.com/oriumgames/worldeditor/debugdump"
	"github.com/oriumgames/worldeditor/format"
	"github.com/oriumgames/worldeditor/log"
	"github.com/oriumgames/worldeditor/progress"
	"github.com/oriumgames/worldeditor/voxel"
)

// Editor stages block and sign writes against an in-memory World and
// flushes them to region files under OutDir on Save.
type Editor struct {
	OutDir string
	Config config.Config

	world *voxel.World
	sink  progress.Sink
}

// New returns an Editor that writes region files to outDir using cfg's
// coordinate bounds and compression level, reporting save progress on sink
// (progress.Nop if sink is nil).
func New(outDir string, cfg config.Config, sink progress.Sink) *Editor {
	return &Editor{
		OutDir: outDir,
		Config: cfg,
		world:  voxel.NewWorld(),
		sink:   sink,
	}
}

// GetMaxCoords returns the editor's coordinate bounds. Both components
// derive from ScaleX; this mirrors the reference editor exactly, including
// its apparent oversight of never deriving a bound from ScaleZ.
func (e *Editor) GetMaxCoords() (int, int) {
	sx := int(e.Config.ScaleX)
	return sx, sx
}

func matchesAny(list []block.Block, b block.Block) bool {
	for _, candidate := range list {
		if candidate.ID() == b.ID() {
			return true
		}
	}
	return false
}

// SetBlock writes b at (x, y, z), subject to the override policy:
//   - an empty cell (no block ever written there) always accepts the write
//   - otherwise, if whitelist is non-nil, the write proceeds only when the
//     existing block's ID appears in whitelist
//   - otherwise, if blacklist is non-nil, the write proceeds only when the
//     existing block's ID does NOT appear in blacklist
//   - otherwise (both nil) an existing non-air block is left untouched
//
// Writes outside [0, ScaleX] x [0, ScaleZ] are silently dropped; there is no
// bound on y.
func (e *Editor) SetBlock(b block.Block, x, y, z int, whitelist, blacklist []block.Block) {
	maxX, maxZ := int(e.Config.ScaleX), int(e.Config.ScaleZ)
	if x < 0 || x > maxX || z < 0 || z > maxZ {
		return
	}

	shouldInsert := true
	if existing, ok := e.world.Get(x, y, z); ok {
		switch {
		case whitelist != nil:
			shouldInsert = matchesAny(whitelist, existing)
		case blacklist != nil:
			shouldInsert = !matchesAny(blacklist, existing)
		default:
			shouldInsert = false
		}
	}

	if shouldInsert {
		e.world.Set(x, y, z, b)
	}
}

// FillBlocks writes b at every point in the axis-aligned cuboid spanning
// (x1,y1,z1) and (x2,y2,z2) inclusive, in either corner order, subject to
// SetBlock's override policy at each point.
func (e *Editor) FillBlocks(b block.Block, x1, y1, z1, x2, y2, z2 int, whitelist, blacklist []block.Block) {
	minX, maxX := minMax(x1, x2)
	minY, maxY := minMax(y1, y2)
	minZ, maxZ := minMax(z1, z2)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				e.SetBlock(b, x, y, z, whitelist, blacklist)
			}
		}
	}
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// CheckForBlock reports whether a block exists at (x, y, z) whose ID appears
// in whitelist OR in blacklist. This is deliberately not a pure "is this
// block forbidden" check: either list matching returns true, matching the
// reference editor's check_for_block exactly.
func (e *Editor) CheckForBlock(x, y, z int, whitelist, blacklist []block.Block) bool {
	existing, ok := e.world.Get(x, y, z)
	if !ok {
		return false
	}
	if whitelist != nil && matchesAny(whitelist, existing) {
		return true
	}
	if blacklist != nil && matchesAny(blacklist, existing) {
		return true
	}
	return false
}

// SetSign places a sign block at (x, y, z) and attaches its block-entity NBT
// (four message lines, each wrapped in literal double quotes, matching the
// reference editor's text rendering) to the owning chunk. rotation is
// accepted but unused, matching the reference editor.
func (e *Editor) SetSign(line1, line2, line3, line4 string, x, y, z, rotation int) {
	entry := map[string]any{
		"id":           "minecraft:sign",
		"x":            int32(x),
		"y":            int32(y),
		"z":            int32(z),
		"is_waxed":     int8(0),
		"keepPacked":   int8(0),
		"front_text": map[string]any{
			"messages": []any{
				fmt.Sprintf("\"%s\"", line1),
				fmt.Sprintf("\"%s\"", line2),
				fmt.Sprintf("\"%s\"", line3),
				fmt.Sprintf("\"%s\"", line4),
			},
			"color":            "black",
			"has_glowing_text": int8(0),
		},
	}

	chunk := e.world.MaterializeChunk(int32(x), int32(z))
	chunk.AppendBlockEntity(entry)

	e.SetBlock(block.Sign, x, y, z, nil, nil)
}

// Save flushes every staged write to region files under OutDir, then (when
// Config.Debug is set) writes a diagnostic snapshot dump alongside them.
func (e *Editor) Save() error {
	log.Info("saving world", log.F("regions", len(e.world.Regions())))
	if err := format.SaveWorld(e.world, e.OutDir, e.Config, e.sink); err != nil {
		return fmt.Errorf("editor: save world: %w", err)
	}
	if path, err := debugdump.Dump(e.world, e.OutDir, e.Config); err != nil {
		return fmt.Errorf("editor: write diagnostic snapshot: %w", err)
	} else if path != "" {
		log.Debug("wrote diagnostic snapshot", log.F("path", path))
	}
	return nil
}
