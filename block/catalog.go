package block

// Built-in catalog entries. This is not an exhaustive block list (the real
// game ships thousands); it covers the kinds referenced by the demo CLI,
// the editor's sign handling, and the test suite.
var (
	Stone  = New("minecraft:stone")
	Dirt   = New("minecraft:dirt")
	Grass  = New("minecraft:grass_block")
	Water  = New("minecraft:water")
	Glass  = New("minecraft:glass")
	Planks = New("minecraft:oak_planks")
	Sign   = New("minecraft:oak_sign")
)
