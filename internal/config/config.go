// Package config содержит логику чтения конфигурации сервиса fitpro.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса fitpro.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseURI   string `env:"DATABASE_URI"`
	AuthSecret    string `env:"AUTH_SECRET"`
	UploadDir     string `env:"UPLOAD_DIR"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envAuthSecret := cfg.AuthSecret
	envUploadDir := cfg.UploadDir
	envUploadBaseURL := cfg.UploadBaseURL

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret key for auth cookie signing")
	flag.StringVar(&cfg.UploadDir, "u", "uploads", "directory for uploaded payment proofs")
	flag.StringVar(&cfg.UploadBaseURL, "b", "/uploads", "public base URL for uploaded files")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envUploadDir != "" {
		cfg.UploadDir = envUploadDir
	}
	if envUploadBaseURL != "" {
		cfg.UploadBaseURL = envUploadBaseURL
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
