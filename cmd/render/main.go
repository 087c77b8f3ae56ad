package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/poimap/internal/config"
	"github.com/woozymasta/poimap/internal/env"
	"github.com/woozymasta/poimap/internal/location"
	"github.com/woozymasta/poimap/internal/logger"
	"github.com/woozymasta/poimap/internal/pipeline"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"   env:"CONFIG_FILE"  description:"Path to configuration file, built-in single dataset if empty"`
	Limit      []string `short:"l" long:"limit"    env:"LIMIT_NAMES"  description:"Limit processing to specific dataset names"`
	Input      string   `short:"i" long:"in"       env:"INPUT_FILE"   description:"Override input CSV of the selected dataset"`
	Output     string   `short:"o" long:"out"      env:"OUTPUT_FILE"  description:"Override output HTML of the selected dataset"`
	GeoJSON    string   `short:"g" long:"geojson"  env:"GEOJSON_FILE" description:"Also export placed markers as GeoJSON"`
	Journal    string   `short:"j" long:"journal"  env:"JOURNAL_FILE" description:"Journal file path, overrides configuration"`
	NoJournal  bool     `long:"no-journal"         description:"Disable the journal file"`
	List       bool     `short:"L" long:"list"     description:"Print classified locations"`
	Progress   bool     `short:"P" long:"progress" description:"Show progress bar while placing markers"`
	Minify     bool     `short:"m" long:"minify"   description:"Minify the rendered page"`
}

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	switch {
	case opts.NoJournal:
		cfg.Journal = ""
	case opts.Journal != "":
		cfg.Journal = opts.Journal
	}
	if opts.Minify {
		cfg.Map.Minify = true
	}

	datasets, err := selectDatasets(cfg, opts)
	if err != nil {
		log.Fatal().Err(err).Strs("limit", opts.Limit).Msg("Failed to select datasets")
	}

	log.Info().
		Int("datasets_total", len(cfg.Datasets)).
		Int("datasets_queued", len(datasets)).
		Str("journal", cfg.Journal).
		Msg("Starting render")

	p := pipeline.New(cfg)
	p.Progress = opts.Progress

	failed := 0
	for _, ds := range datasets {
		report, err := p.Run(ds)
		if err != nil {
			failed++
			log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to render dataset")
		}

		if opts.List {
			printLocations(report)
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Msg("Render finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Render finished successfully")
}

// selectDatasets applies --limit and the path overrides.
// Selecting nothing is an error.
func selectDatasets(cfg *config.Config, opts Options) ([]config.Dataset, error) {
	selected, unknown := cfg.Filter(opts.Limit)
	for _, name := range unknown {
		log.Error().
			Str("name", name).
			Msg("Dataset specified in --limit not found in configuration")
	}

	if len(selected) == 0 {
		return nil, errors.New("no datasets selected")
	}

	datasets := make([]config.Dataset, len(selected))
	copy(datasets, selected)

	if opts.Input != "" || opts.Output != "" || opts.GeoJSON != "" {
		if len(datasets) != 1 {
			return nil, fmt.Errorf("--in, --out and --geojson need exactly one selected dataset, got %d, use --limit", len(datasets))
		}
		datasets[0] = override(datasets[0], opts)
	}

	return datasets, nil
}

func override(ds config.Dataset, opts Options) config.Dataset {
	if opts.Input != "" {
		ds.Input = opts.Input
	}
	if opts.Output != "" {
		ds.Output = opts.Output
	}
	if opts.GeoJSON != "" {
		ds.GeoJSON = opts.GeoJSON
	}

	return ds
}

func printLocations(report pipeline.Report) {
	fmt.Printf("# %s (%d locations, %d placed)\n", report.Dataset, len(report.Locations), report.Placed)

	for _, loc := range report.Locations {
		mark := ""
		if loc.Coordinates().IsSentinel() {
			mark = " (skipped)"
		}
		fmt.Printf("%s %s%s\n", location.Label(loc), loc.Coordinates(), mark)
	}
}
