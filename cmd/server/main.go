package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/poimap/internal/config"
	"github.com/woozymasta/poimap/internal/env"
	"github.com/woozymasta/poimap/internal/logger"
	"github.com/woozymasta/poimap/internal/pipeline"
	"github.com/woozymasta/poimap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to configuration file, built-in single dataset if empty"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
	Render     bool   `short:"r" long:"render" env:"RENDER_ON_START" description:"Render all datasets before serving"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	if opts.Render {
		p := pipeline.New(cfg)
		for _, ds := range cfg.Datasets {
			if _, err := p.Run(ds); err != nil {
				log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to render dataset")
			}
		}
	}

	srvCtx := server.NewServerContext(cfg)
	if len(srvCtx.MapsList) == 0 {
		log.Warn().Msg("No rendered maps found, run render first or pass --render")
	}

	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("maps_loaded", len(srvCtx.MapsList)).
		Str("default_map", srvCtx.Default).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
