// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	DSN    string
}

type BootstrapConfig struct {
	// SeedDemoClient creates a demo client on startup outside production.
	SeedDemoClient bool
}

type Config struct {
	Environment string
	HTTPAddr    string
	Database    DatabaseConfig
	Bootstrap   BootstrapConfig
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load reads configuration from the environment, honoring an optional .env
// file for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getenv("INVOICE_API_ENV", "development"),
		HTTPAddr:    getenv("INVOICE_API_HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			Driver: getenv("INVOICE_API_DB_DRIVER", "sqlite"),
			DSN:    getenv("INVOICE_API_DB_DSN", "file:invoice-api.db?_fk=1"),
		},
		Bootstrap: BootstrapConfig{
			SeedDemoClient: getbool("INVOICE_API_SEED_DEMO_CLIENT", false),
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
