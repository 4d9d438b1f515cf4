package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/handhistory/internal/service"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"handhistory.hcl" help:"Path to HCL config file"`
	Debug   bool             `help:"Enable debug logging"`

	Parse  ParseCmd  `cmd:"" help:"Parse and validate hand history files"`
	Scan   ScanCmd   `cmd:"" help:"Discover hand history files on disk"`
	Stats  StatsCmd  `cmd:"" help:"Show supported platforms and parser details"`
	Export ExportCmd `cmd:"" help:"Export parsed hands to PHH files"`
}

// Context carries the shared service into subcommand Run methods
type Context struct {
	Service *service.Service
	Config  *service.Config
	Logger  *log.Logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handhistory"),
		kong.Description("Multi-platform poker hand history parser and validator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := setupLogger(cli.Debug)

	config, err := service.LoadConfig(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Debug {
		config.Parser.LogLevel = "debug"
	}
	ctx.FatalIfErrorf(config.Validate())

	appCtx := &Context{
		Service: service.New(config, logger),
		Config:  config,
		Logger:  logger,
	}

	err = ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
