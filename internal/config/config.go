// Package config предоставляет структуру настроек subtrack и функцию для её загрузки
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env     string `yaml:"env" env:"SUBTRACK_ENV" env-default:"local"`
	Storage `yaml:"storage"`
	Tracker `yaml:"tracker"`
}

// Storage пути к файлам, в которых хранятся подписки и журнал аудита
type Storage struct {
	StoragePath     string `yaml:"storage_path" env:"SUBTRACK_STORAGE_PATH" env-default:"subscriptions.csv"`
	AuditLogPath    string `yaml:"audit_log_path" env:"SUBTRACK_AUDIT_LOG" env-default:"subscriptions_log.log"`
	MetricsTextfile string `yaml:"metrics_textfile" env:"SUBTRACK_METRICS_TEXTFILE"`
}

// Tracker настройки интерактивной оболочки
type Tracker struct {
	ExpiringWindow time.Duration `yaml:"expiring_window" env:"SUBTRACK_EXPIRING_WINDOW" env-default:"336h"`
	NoBanner       bool          `yaml:"no_banner" env:"SUBTRACK_NO_BANNER"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH, а если переменная не задана —
// из переменных окружения со значениями по умолчанию.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг по указанному пути. Пустой путь означает чтение только из окружения.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.ExpiringWindow <= 0 {
		return nil, fmt.Errorf("expiring_window must be positive, got %s", cfg.ExpiringWindow)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  StoragePath: %s\n"+
			"  AuditLogPath: %s\n"+
			"  MetricsTextfile: %s\n"+
			"Tracker:\n"+
			"  ExpiringWindow: %s\n"+
			"  NoBanner: %t\n",
		c.Env,
		c.StoragePath,
		c.AuditLogPath,
		c.MetricsTextfile,
		c.ExpiringWindow,
		c.NoBanner,
	)
}
