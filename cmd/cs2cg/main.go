package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cs2cg/internal/config"
	"cs2cg/pkg/pipeline"
	"cs2cg/pkg/render"
	"cs2cg/pkg/touchstone"
)

func main() {
	inductance := flag.Float64("l", 0, "source-degeneration inductance (nH)")
	output := flag.String("o", "", "output file path (default <input>_cg.s2p)")
	plotPath := flag.String("plot", "", "write a PNG of input vs output magnitudes")
	workers := flag.Int("workers", 0, "parallel workers (default from CS2CG_WORKERS)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if level, perr := zerolog.ParseLevel(cfg.LogLevel); perr == nil {
		zerolog.SetGlobalLevel(level)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	input := flag.Arg(0)
	outPath := *output
	if outPath == "" {
		outPath = pipeline.DefaultOutputPath(input, cfg.OutputDir)
	}

	result, err := pipeline.Convert(input, *inductance, outPath, pipeline.Options{
		Workers: cfg.Workers,
		Logger:  log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}

	if *plotPath != "" {
		in, err := touchstone.ParseFile(input)
		if err != nil {
			log.Fatal().Err(err).Msg("re-reading input for plot")
		}
		if err := render.Magnitudes(in, result, *plotPath); err != nil {
			log.Fatal().Err(err).Msg("plot failed")
		}
		log.Info().Str("plot", *plotPath).Msg("plot written")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cs2cg [options] <input.s2p>

Converts common-source 2-port S-parameters to the common-gate
configuration, accounting for a source-degeneration inductor.

Options:
`)
	flag.PrintDefaults()
}
