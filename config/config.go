package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Alpha      float64 `env:"UNDISTORT_ALPHA" envDefault:"0.5"`
	DefaultFPS int     `env:"DEFAULT_FPS"     envDefault:"30"`
	Pacing     string  `env:"PLAYBACK_PACING" envDefault:"realtime"`
	QuitKey    string  `env:"QUIT_KEY"        envDefault:"q"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	MetricsAddr string `env:"METRICS_ADDR"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить сам
func (c *Config) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("UNDISTORT_ALPHA must be within [0, 1], got %v", c.Alpha)
	}
	if c.DefaultFPS <= 0 {
		return fmt.Errorf("DEFAULT_FPS must be positive, got %d", c.DefaultFPS)
	}
	if c.Pacing != "realtime" && c.Pacing != "fixed" {
		return fmt.Errorf("PLAYBACK_PACING must be realtime or fixed, got %q", c.Pacing)
	}
	if len(c.QuitKey) != 1 {
		return fmt.Errorf("QUIT_KEY must be a single ASCII character, got %q", c.QuitKey)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

// QuitKeyByte код клавиши выхода
func (c *Config) QuitKeyByte() byte {
	return c.QuitKey[0]
}
