// Package config carries the handful of knobs collaborators thread into the
// editor and region codec: bounds, a debug flag, and compression selection.
package config

import "compress/zlib"

// Compression selects the zlib compression level used for region chunk
// payloads.
type Compression int

const (
	// CompressionDefault uses zlib's default trade-off between speed and
	// ratio.
	CompressionDefault Compression = iota
	// CompressionFast favours write speed.
	CompressionFast
	// CompressionBest favours output size.
	CompressionBest
)

// Level returns the compress/zlib level constant for c.
func (c Compression) Level() int {
	switch c {
	case CompressionFast:
		return zlib.BestSpeed
	case CompressionBest:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// Config is the input contract collaborators hand to the editor and region
// codec: coordinate upper bounds, a diagnostic debug flag, and a
// compression selector.
type Config struct {
	// Debug enables verbose logging and the diagnostic snapshot dump.
	Debug bool

	// ScaleX, ScaleZ are positive scale factors used only as integer upper
	// bounds on block coordinates (see editor.Editor.SetBlock).
	ScaleX float64
	ScaleZ float64

	// Compression selects the region chunk payload compression level.
	Compression Compression
}

// Default returns a Config with conservative defaults: a generous bound,
// debug logging off, and default compression.
func Default() Config {
	return Config{
		Debug:       false,
		ScaleX:      1000.0,
		ScaleZ:      1000.0,
		Compression: CompressionDefault,
	}
}
