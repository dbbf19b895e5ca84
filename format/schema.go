package format

import (
	"bytes"
	"fmt"

	gonbt "github.com/Tnze/go-mc/nbt"

	"github.com/oriumgames/worldeditor/voxel"
)

// PaletteItemNBT is one entry of a section's block_states.palette list.
type PaletteItemNBT struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

// BlockStatesNBT is a section's block_states compound: a palette plus the
// packed index array described in voxel.EncodeSection. Data is omitted
// entirely for a single-entry palette, matching the host format's
// convention that a uniform section carries no index array.
type BlockStatesNBT struct {
	Palette []PaletteItemNBT `nbt:"palette"`
	Data    []int64          `nbt:"data,omitempty"`
}

// SectionNBT is one entry of a chunk's sections list.
type SectionNBT struct {
	Y           int8           `nbt:"Y"`
	BlockStates BlockStatesNBT `nbt:"block_states"`
}

// toSectionNBT converts an encoded voxel section into its NBT schema form.
// Section Y must fit in a signed byte; this is invariant 5 of the error
// taxonomy (coordinate overflow is fatal).
func toSectionNBT(enc voxel.EncodedSection) (SectionNBT, error) {
	if enc.Y < -128 || enc.Y > 127 {
		return SectionNBT{}, fmt.Errorf("section Y %d does not fit in a signed byte", enc.Y)
	}
	items := make([]PaletteItemNBT, len(enc.Palette))
	for i, b := range enc.Palette {
		items[i] = PaletteItemNBT{Name: b.ID(), Properties: b.Properties()}
	}
	data := enc.Data
	if len(enc.Palette) <= 1 {
		data = nil
	}
	return SectionNBT{
		Y: int8(enc.Y),
		BlockStates: BlockStatesNBT{
			Palette: items,
			Data:    data,
		},
	}, nil
}

// ChunkDocument is a generic NBT compound decoded from a region chunk slot.
// Fields this core does not interpret are preserved as decoded (strings,
// numeric tag types, nested maps/slices); OverlayChunk and StampChunk
// overwrite only the keys the core is responsible for.
type ChunkDocument map[string]any

// DecodeChunkDocument decodes raw NBT bytes (already decompressed by the
// region archive) into a generic document.
func DecodeChunkDocument(data []byte) (ChunkDocument, error) {
	var m map[string]any
	if _, err := gonbt.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode chunk nbt: %w", err)
	}
	return ChunkDocument(m), nil
}

// EncodeChunkDocument encodes a generic document back to NBT bytes.
func EncodeChunkDocument(doc ChunkDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := gonbt.NewEncoder(&buf).Encode(map[string]any(doc), ""); err != nil {
		return nil, fmt.Errorf("encode chunk nbt: %w", err)
	}
	return buf.Bytes(), nil
}

// StampChunk overwrites the coordinate and lighting fields the codec always
// rewrites, for every one of the 1024 slots in a region regardless of
// whether a voxel chunk buffer exists for it.
func StampChunk(doc ChunkDocument, absX, absZ int32) {
	doc["xPos"] = absX
	doc["zPos"] = absZ
	doc["isLightOn"] = int8(0)
}

// OverlayChunk replaces doc's sections list with c's encoded sections and
// merges c.Other over doc, overwriting any matching keys (e.g. installing
// block_entities). Call only when a voxel chunk buffer exists for this
// slot; StampChunk's unconditional fields are applied separately.
func OverlayChunk(doc ChunkDocument, c *voxel.Chunk) error {
	sections := c.Sections()
	encoded := make([]SectionNBT, len(sections))
	for i, s := range sections {
		sn, err := toSectionNBT(s)
		if err != nil {
			return fmt.Errorf("chunk (%d,%d): %w", c.X, c.Z, err)
		}
		encoded[i] = sn
	}
	doc["sections"] = encoded
	for k, v := range c.Other {
		doc[k] = v
	}
	return nil
}

// defaultChunkDocument is the minimal valid chunk compound used to populate
// a freshly generated region template: no sections (all air), default
// coordinates (overwritten by StampChunk on every patch pass regardless),
// and a couple of realistic passthrough fields to exercise property 7
// (unknown fields survive untouched).
func defaultChunkDocument() ChunkDocument {
	return ChunkDocument{
		"DataVersion":    int32(3953),
		"Status":         "minecraft:full",
		"sections":       []SectionNBT{},
		"xPos":           int32(0),
		"zPos":           int32(0),
		"yPos":           int32(-4),
		"isLightOn":      int8(0),
		"block_entities": []any{},
	}
}

// defaultChunkPayload is defaultChunkDocument, pre-encoded once for reuse
// across all 1024 identical template slots.
func defaultChunkPayload() ([]byte, error) {
	return EncodeChunkDocument(defaultChunkDocument())
}
