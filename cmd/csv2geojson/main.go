package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/poimap/internal/classify"
	"github.com/woozymasta/poimap/internal/logger"
	"github.com/woozymasta/poimap/internal/pipeline"
	"github.com/woozymasta/poimap/internal/source"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input        string `short:"i" long:"in"     description:"Input CSV file path. Reads from stdin if empty"`
	Output       string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format       string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	H3Resolution int    `long:"h3"               description:"H3 cell resolution added to features, negative disables" default:"9"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	// Read Input
	var rows []source.Row
	var err error

	if opts.Input != "" {
		rows, err = source.Load(opts.Input)
	} else {
		rows, err = source.Read(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	records, stats := classify.New().ClassifyAll(rows)
	fc, skipped := pipeline.Features(records, opts.H3Resolution)

	for _, name := range skipped {
		fmt.Fprintf(os.Stderr, "Skipping %s due to invalid coords\n", name)
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Converted %d of %d rows to %s (format: %s)\n",
			len(fc.Features), stats.Rows, opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}
