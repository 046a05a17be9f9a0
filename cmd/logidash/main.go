package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/goliatone/go-logistics-dashboard/pkg/config"
	"github.com/goliatone/go-logistics-dashboard/pkg/logging"
)

type cli struct {
	Config  string `short:"c" type:"path" env:"LOGIDASH_CONFIG" help:"YAML configuration file."`
	EnvFile string `name:"env-file" default:".env" help:"Optional dotenv file loaded before the environment."`

	Serve    serveCmd    `cmd:"" default:"1" help:"Run the dashboard server."`
	Query    queryCmd    `cmd:"" help:"Run one metric against the configured provider and print JSON."`
	Sections sectionsCmd `cmd:"" help:"List the dashboard sections and their cards."`
}

// runtime is bound into every command's Run method.
type runtime struct {
	ctx    context.Context
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("logidash"),
		kong.Description("Logistics analytics dashboard."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(config.LoadOptions{File: args.Config, EnvFile: args.EnvFile})
	kctx.FatalIfErrorf(err)

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = kctx.Run(&runtime{ctx: ctx, cfg: cfg, logger: logger, out: os.Stdout})
	stop()
	_ = logger.Sync()
	kctx.FatalIfErrorf(err)
}
