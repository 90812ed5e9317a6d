package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config хранит основные настройки приложения.
type Config struct {
	TelegramToken string
	DatabaseURL   string
}

// Load читает настройки из окружения (и из .env, если он есть).
// Без токена бота работать не с чем, поэтому его отсутствие — ошибка,
// а не значение по умолчанию. DATABASE_URL опционален: без него
// карточки живут в памяти процесса.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN не задан в окружении")
	}
	return cfg, nil
}
