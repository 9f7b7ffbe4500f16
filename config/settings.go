package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings is the environment of the storefront server.
type Settings struct {
	Port     string `envconfig:"PORT" default:"8081"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	CatalogDBURL string `envconfig:"CMS_DB_URL"`
	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       string `envconfig:"DB_PORT" default:"5432"`
	DBUser       string `envconfig:"DB_USER" default:"postgres"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME" default:"modeva_cms_backend"`

	RedisURL     string        `envconfig:"REDIS_URL"`
	PageCacheTTL time.Duration `envconfig:"PAGE_CACHE_TTL" default:"5m"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`

	// Defaults handed to filter widgets at mount time.
	WidgetApplyMode      string `envconfig:"WIDGET_APPLY_MODE" default:"immediate"`
	CatalogRenderContext string `envconfig:"CATALOG_RENDER_CONTEXT" default:"server"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &s, nil
}

func (s *Settings) IsProduction() bool {
	return s.AppEnv == "production"
}

// DSN returns the catalog database DSN, preferring CMS_DB_URL.
func (s *Settings) DSN() string {
	if s.CatalogDBURL != "" {
		return s.CatalogDBURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort,
	)
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
