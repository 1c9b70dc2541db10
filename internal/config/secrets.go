package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Secrets are never kept in the config file.
type Secrets struct {
	SentryDSN        string `env:"SENTRY_DSN"`
	RedisPassword    string `env:"GYMLOG_REDIS_PASS"`
	PostgresPassword string `env:"GYMLOG_POSTGRES_PASSWORD"`
	AppSecret        string `env:"GYMLOG_APP_SECRET"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
}

func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("read secrets from env: %w", err)
	}
	return &s, nil
}
