// Command worldeditor is a small demo driver for the editor and region
// codec: it stages a handful of illustrative writes and saves them to a
// region directory.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/oriumgames/worldeditor/block"
	"github.com/oriumgames/worldeditor/config"
	"github.com/oriumgames/worldeditor/editor"
	"github.com/oriumgames/worldeditor/log"
	"github.com/oriumgames/worldeditor/progress"
)

func main() {
	opts, err := config.ParseCLIOptions(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	cfg := opts.Config()

	zl := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	if cfg.Debug {
		zl = zl.Level(zerolog.DebugLevel)
	} else {
		zl = zl.Level(zerolog.InfoLevel)
	}
	log.SetLogger(log.NewZerologAdapter(zl))

	sink := progress.SinkFunc(func(percent float64, message string) {
		fmt.Fprintf(os.Stderr, "[%5.1f%%] %s\n", percent, message)
	})

	e := editor.New(opts.OutDir, cfg, sink)

	maxX, maxZ := e.GetMaxCoords()
	log.Info("editing demo world", log.F("maxX", maxX), log.F("maxZ", maxZ))

	e.FillBlocks(block.Stone, 0, 0, 0, 31, 3, 31, nil, nil)
	e.FillBlocks(block.Grass, 0, 4, 0, 31, 4, 31, nil, []block.Block{block.Water})
	e.SetBlock(block.Water, 10, 4, 10, nil, nil)
	e.SetSign("Welcome", "to the", "demo", "world", 5, 5, 5, 0)

	if err := e.Save(); err != nil {
		log.Error("save failed", log.F("error", err))
		os.Exit(1)
	}
	log.Info("save complete", log.F("outDir", opts.OutDir))
}
