// Package subtrack собирает зависимости приложения и запускает интерактивную оболочку.
package subtrack

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/magabrotheeeer/subtrack/internal/config"
	"github.com/magabrotheeeer/subtrack/internal/lib/logger"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	"github.com/magabrotheeeer/subtrack/internal/metrics"
	services "github.com/magabrotheeeer/subtrack/internal/services/subscription"
	"github.com/magabrotheeeer/subtrack/internal/shell"
	"github.com/magabrotheeeer/subtrack/internal/storage"
)

// App связывает хранилище, сервис подписок и интерактивную оболочку.
type App struct {
	shell   *shell.Shell
	logger  *slog.Logger
	audit   *logger.Audit
	metrics *metrics.Collector
	cfg     *config.Config
}

// New открывает журнал аудита и связывает хранилище, сервис и оболочку.
func New(cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	audit, err := logger.OpenAudit(cfg.AuditLogPath)
	if err != nil {
		return nil, err
	}

	store := storage.New(cfg.StoragePath)
	collector := metrics.New()
	subscriptionService := services.NewSubscriptionService(store, collector, audit.Logger, log, cfg.ExpiringWindow)

	return &App{
		shell:   shell.New(subscriptionService, in, out, log, !cfg.NoBanner),
		logger:  log,
		audit:   audit,
		metrics: collector,
		cfg:     cfg,
	}, nil
}

// Run запускает меню и по его завершении закрывает журнал и выгружает метрики.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("shell starting", slog.String("storage", a.cfg.StoragePath))

	err := a.shell.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Info("interrupted, shutting down")
		err = nil
	}

	if a.cfg.MetricsTextfile != "" {
		if mErr := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); mErr != nil {
			a.logger.Warn("failed to write metrics textfile", sl.Err(mErr))
		}
	}
	if cErr := a.audit.Close(); cErr != nil {
		a.logger.Warn("failed to close audit log", sl.Err(cErr))
	}
	return err
}
