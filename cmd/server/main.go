package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/wabridge/internal/app"
	"github.com/nfrund/wabridge/internal/config"
	"github.com/nfrund/wabridge/internal/logging"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting relay", "service", cfg.GetServiceName(), "addr", cfg.Addr())
	if err := app.New(cfg).Run(ctx); err != nil {
		logger.Error("Relay stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("Relay stopped")
}
