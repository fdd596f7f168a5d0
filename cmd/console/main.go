package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/config"
	"github.com/catalogops/console/internal/console"
	"github.com/catalogops/console/internal/format"
	"github.com/catalogops/console/internal/log"
	"github.com/catalogops/console/internal/querycache"
	"github.com/catalogops/console/internal/telemetry"
	"github.com/catalogops/console/internal/toast"
	"golang.org/x/text/currency"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "console",
		Usage:   "interactive admin console for the product catalog",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-base-url",
				Usage:   "catalog backend base URL",
				EnvVars: []string{"API_BASE_URL"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error running console: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	type Config struct {
		Log  config.Log
		API  config.API
		Otel config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if baseURL := c.String("api-base-url"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	client := api.New(cfg.API, logger)
	cache := querycache.New(logger)
	toasts := toast.NewChannel()
	formatter := format.New(language.English, currency.KRW)
	renderer := console.NewRenderer(os.Stdout, formatter)

	app, err := console.NewApp(logger, client, cache, toasts, renderer, os.Stdout,
		console.NewAboutPage(version, cfg.API.BaseURL))
	if err != nil {
		return fmt.Errorf("error creating app: %w", err)
	}
	defer app.Close()

	logger.InfoContext(ctx, "console started", slog.String("base_url", cfg.API.BaseURL))

	return app.Run(ctx, os.Stdin)
}
