package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the service configuration, loaded from the environment.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string
}

// Load reads the configuration from environment variables, applying
// development defaults where unset.
func Load() Config {
	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3030"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "changeme-super-secret"),
	}

	if cfg.JWTSecret == "changeme-super-secret" {
		zap.L().Warn("JWT_SECRET is unset or uses the default value, do not use in production")
	}

	return cfg
}

func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

// LoadEnvIfExists loads a local .env file when present.
func LoadEnvIfExists() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
