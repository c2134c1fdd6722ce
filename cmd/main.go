package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/proxy-dashboard/config"
	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
	"github.com/angeloszaimis/proxy-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	env := environment.Resolve(cfg.Mode)
	log := logger.New(cfg.Logging.Level, true, env)

	if env == environment.Other {
		log.Warn("Unrecognised mode, using production-like settings", slog.String("mode", cfg.Mode))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := newApplication(cfg, log, time.Now())
	if err != nil {
		log.Error("Failed to initialize dashboard", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("Dashboard stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}
