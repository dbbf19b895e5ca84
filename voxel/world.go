package voxel

import "github.com/oriumgames/worldeditor/block"

// RegionPos identifies a region by its (arbitrary, signed) coordinates.
type RegionPos struct {
	X, Z int32
}

// World is a sparse map of region buffers keyed by (rx, rz), and owns the
// global coordinate decomposition described in the editor facade. It never
// materialises a region on read.
type World struct {
	regions map[RegionPos]*Region
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{regions: make(map[RegionPos]*Region)}
}

// decompose splits a global (x,z) pair into region position, chunk-local
// position, and absolute chunk coordinates.
func decompose(x, z int32) (region RegionPos, chunkLocal ChunkPos, absCX, absCZ int32) {
	rx, cxLocal, _ := DecomposeAxis(x)
	rz, czLocal, _ := DecomposeAxis(z)
	region = RegionPos{rx, rz}
	chunkLocal = ChunkPos{int(cxLocal), int(czLocal)}
	absCX = x >> 4
	absCZ = z >> 4
	return
}

// Get returns the block at global (x,y,z), or false if nothing has been
// written there (no region, chunk, or section need exist for this to
// return false).
func (w *World) Get(x, y, z int) (block.Block, bool) {
	regionPos, chunkPos, _, _ := decompose(int32(x), int32(z))
	r, ok := w.regions[regionPos]
	if !ok {
		return block.Block{}, false
	}
	c, ok := r.Get(chunkPos.X, chunkPos.Z)
	if !ok {
		return block.Block{}, false
	}
	return c.Get(x&15, y, z&15)
}

// Set writes the block at global (x,y,z), materialising the region, chunk,
// and section on demand.
func (w *World) Set(x, y, z int, b block.Block) {
	regionPos, chunkPos, absCX, absCZ := decompose(int32(x), int32(z))
	r, ok := w.regions[regionPos]
	if !ok {
		r = NewRegion()
		w.regions[regionPos] = r
	}
	c := r.materialize(chunkPos.X, chunkPos.Z, absCX, absCZ)
	c.Set(x&15, y, z&15, b)
}

// MaterializeChunk returns the chunk owning global block column (x, z),
// creating the region and chunk on demand. Used by callers that need to
// attach passthrough data (e.g. a block entity) rather than set a block.
func (w *World) MaterializeChunk(x, z int32) *Chunk {
	regionPos, chunkPos, absCX, absCZ := decompose(x, z)
	r, ok := w.regions[regionPos]
	if !ok {
		r = NewRegion()
		w.regions[regionPos] = r
	}
	return r.materialize(chunkPos.X, chunkPos.Z, absCX, absCZ)
}

// Regions returns every materialised region keyed by its region position.
// The returned map must not be mutated.
func (w *World) Regions() map[RegionPos]*Region { return w.regions }

// IsEmpty reports whether the world has received no writes at all.
func (w *World) IsEmpty() bool { return len(w.regions) == 0 }
