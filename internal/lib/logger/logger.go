// Package logger создаёт логгеры приложения: диагностический и журнал аудита.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Setup возвращает диагностический логгер в зависимости от окружения.
func Setup(env string, w io.Writer) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Audit журнал действий над подписками, дописываемый в конец файла.
type Audit struct {
	*slog.Logger
	file *os.File
}

// OpenAudit открывает (или создаёт) файл журнала аудита на дозапись.
func OpenAudit(path string) (*Audit, error) {
	const op = "logger.OpenAudit"

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Audit{
		Logger: NewAudit(f),
		file:   f,
	}, nil
}

// NewAudit строит логгер аудита поверх произвольного writer.
func NewAudit(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Close закрывает файл журнала.
func (a *Audit) Close() error {
	return a.file.Close()
}

// Discard логгер, который ничего не пишет.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
