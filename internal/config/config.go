package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr      string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath        string     `env:"DB_PATH" envDefault:"data/geoguess.db"`
	LogLevel      slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	PublicBaseURL string     `env:"PUBLIC_BASE_URL"`
	ImagesDir     string     `env:"IMAGES_DIR" envDefault:"static/images"`
	SPADir        string     `env:"SPA_DIR" envDefault:"../web/dist"`
	SeedFile      string     `env:"SEED_FILE" envDefault:"images.json"`
	RoundLimit    int        `env:"ROUND_LIMIT" envDefault:"5"`
	AdminEmail    string     `env:"ADMIN_EMAIL"`
	AdminPassword string     `env:"ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
