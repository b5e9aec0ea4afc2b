package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Rekber"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"rekber"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
		// AdminID is the intermediary account the admin console acts as.
		AdminID string `envconfig:"ADMIN_ID"`
	}

	Escrow struct {
		SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
		AutoCompleteAfter time.Duration `envconfig:"AUTO_COMPLETE_AFTER" default:"48h"`
		AdminFeeFallback  int64         `envconfig:"ADMIN_FEE_FALLBACK" default:"5000"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
