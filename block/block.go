// Package block defines the block catalog: the value type rasterisation
// code and the section encoder use to refer to a kind of voxel, plus the
// total order the palette encoder sorts by.
package block

import (
	"sort"
	"strings"
)

// Block is an opaque, totally-ordered, value-semantics handle to one kind of
// voxel: a stable string identifier plus an optional set of NBT-serialisable
// properties (e.g. facing, waterlogged). Two Blocks are equal iff their id
// and properties are equal.
type Block struct {
	id         string
	properties map[string]string
}

// New returns a Block with no properties.
func New(id string) Block {
	return Block{id: id}
}

// WithProperties returns a Block carrying the given property map. The map is
// copied; callers may mutate the argument afterward.
func WithProperties(id string, properties map[string]string) Block {
	if len(properties) == 0 {
		return New(id)
	}
	cp := make(map[string]string, len(properties))
	for k, v := range properties {
		cp[k] = v
	}
	return Block{id: id, properties: cp}
}

// Air is the sentinel marking "no modification made here yet". It compares
// equal only to itself (any other block, including one sharing its id with
// different properties, is distinct).
var Air = New("minecraft:air")

// ID returns the block's canonical identifier, e.g. "minecraft:stone".
func (b Block) ID() string { return b.id }

// Name is an alias for ID: the catalog does not distinguish a display name
// from the canonical identifier.
func (b Block) Name() string { return b.id }

// Properties returns the block's property map. The returned map must not be
// mutated by the caller.
func (b Block) Properties() map[string]string { return b.properties }

// IsAir reports whether b is the Air sentinel value.
func (b Block) IsAir() bool { return b.id == Air.id && len(b.properties) == 0 }

// Equal reports whether b and other have the same identifier and properties.
func (b Block) Equal(other Block) bool {
	if b.id != other.id || len(b.properties) != len(other.properties) {
		return false
	}
	for k, v := range b.properties {
		if ov, ok := other.properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// key returns a value suitable for use as a map key or sort key: properties
// are serialised in sorted-key order so that equal Blocks always produce
// identical keys regardless of map iteration order.
func (b Block) key() string {
	if len(b.properties) == 0 {
		return b.id
	}
	keys := make([]string, 0, len(b.properties))
	for k := range b.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(b.id)
	for _, k := range keys {
		sb.WriteByte('\x00')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(b.properties[k])
	}
	return sb.String()
}

// Key exposes the stable, order-independent key used for equality and
// sorting, for callers (e.g. the palette encoder) that need a map key or
// comparable value without importing reflection-based deep-equal.
func (b Block) Key() string { return b.key() }

// Less defines the total order used by the palette encoder: blocks compare
// by their stable key (id, then sorted properties). Air usually sorts
// early because "minecraft:air" is lexicographically small, but ids such as
// "minecraft:acacia_log" sort before it; the encoder does not depend on Air landing
// at any particular palette index, only on the order being total and
// deterministic.
func Less(a, b Block) bool {
	return a.key() < b.key()
}

// SortBlocks sorts a slice of Blocks in place using Less.
func SortBlocks(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool {
		return Less(blocks[i], blocks[j])
	})
}
