package voxel

// DecomposeAxis splits one axis of a global block coordinate into the
// region index, the chunk-local index within that region ([0,32)), and the
// block-local index within that chunk ([0,16)). Shifts are arithmetic, so
// negative coordinates decompose consistently (floor division, not
// truncation).
func DecomposeAxis(v int32) (region, chunkLocal, blockLocal int32) {
	c := v >> 4
	region = c >> 5
	chunkLocal = c & 31
	blockLocal = v & 15
	return
}

// RecomposeAxis is the exact inverse of DecomposeAxis.
func RecomposeAxis(region, chunkLocal, blockLocal int32) int32 {
	c := region<<5 | chunkLocal
	return c<<4 | blockLocal
}

// Index maps section-local coordinates (each in [0,16)) onto [0,4096): a
// bijection used both to address a Section's dense block array and to
// iterate it in the fixed order the palette encoder requires.
func Index(x, y, z int) int {
	return ((y%16+16)%16)*256 + z*16 + x
}
