package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Driver Control"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"America/Sao_Paulo"`
	}

	DB struct {
		Host         string        `envconfig:"DB_HOST" default:"localhost"`
		Port         int           `envconfig:"DB_PORT" default:"5432"`
		User         string        `envconfig:"DB_USER" default:"postgres"`
		Password     string        `envconfig:"DB_PASSWORD" default:""`
		Name         string        `envconfig:"DB_NAME" default:"drivercontrol"`
		SSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		Migrate      bool          `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_JWT_ISSUER"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	TUI struct {
		UserID string `envconfig:"TUI_USER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Location resolves the timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
