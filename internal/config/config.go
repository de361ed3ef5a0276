package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	BaseURL       string // внешний адрес, из него собираются ссылки в QR
	SessionSecret string
	Location      *time.Location
	LogLevel      string
	Env           string // dev|prod
	SentryDSN     string
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	cfg := &Config{
		DatabaseURL:   mustEnv("DATABASE_URL"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
		SessionSecret: mustEnv("SESSION_SECRET"),
		Location:      loc,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Env:           getenv("ENV", "dev"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
