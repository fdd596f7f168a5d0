package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/catalogops/console/internal/config"
	"github.com/catalogops/console/internal/log"
	"github.com/catalogops/console/internal/mockapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running mock api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type Config struct {
		Log  config.Log
		HTTP config.HTTP
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	store := mockapi.NewStore()
	seed(store)

	svc, err := mockapi.New(cfg.HTTP, logger, store)
	if err != nil {
		return fmt.Errorf("error creating mock api service: %w", err)
	}

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running mock api service: %w", err)
	}

	logger.InfoContext(ctx, "mock api started", slog.Uint64("port", uint64(cfg.HTTP.Port)))

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt, syscall.SIGTERM)
	<-interruptChan

	logger.InfoContext(ctx, "mock api is shutting down")
	if err := cleanup(ctx); err != nil {
		return fmt.Errorf("error shutting down mock api service: %w", err)
	}
	logger.InfoContext(ctx, "mock api is stopped")

	return nil
}
