package config

import "github.com/jessevdk/go-flags"

// CLIOptions mirrors Config's fields as go-flags-tagged struct fields for
// the demo CLI (cmd/worldeditor). It is not a replacement for the full
// game-generation argument surface, which is out of scope for this module.
type CLIOptions struct {
	Debug       bool    `long:"debug" description:"enable verbose logging and the diagnostic snapshot dump"`
	ScaleX      float64 `long:"scale-x" default:"1000" description:"positive upper bound on the x coordinate"`
	ScaleZ      float64 `long:"scale-z" default:"1000" description:"positive upper bound on the z coordinate"`
	Compression string  `long:"compression" choice:"default" choice:"fast" choice:"best" default:"default" description:"region chunk compression level"`
	OutDir      string  `long:"out" default:"./world" description:"output directory for region files"`
}

// ParseCLIOptions parses args (excluding the program name) into CLIOptions.
func ParseCLIOptions(args []string) (*CLIOptions, error) {
	opts := &CLIOptions{}
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// Config converts the parsed CLI options into a Config.
func (o *CLIOptions) Config() Config {
	c := Config{
		Debug:  o.Debug,
		ScaleX: o.ScaleX,
		ScaleZ: o.ScaleZ,
	}
	switch o.Compression {
	case "fast":
		c.Compression = CompressionFast
	case "best":
		c.Compression = CompressionBest
	default:
		c.Compression = CompressionDefault
	}
	return c
}
