// Package main subtrack — интерактивный учёт подписок в CSV-файле.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/subtrack/internal/app/subtrack"
	"github.com/magabrotheeeer/subtrack/internal/config"
	"github.com/magabrotheeeer/subtrack/internal/lib/logger"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	// stdout занят меню, поэтому диагностика идёт в stderr
	log := logger.Setup(cfg.Env, os.Stderr)

	log.Debug("starting subtrack", slog.String("env", cfg.Env))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := subtrack.New(cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("subtrack stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
