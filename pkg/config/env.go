package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ParseEnv parses environment variables into target using env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named) without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr        string        `env:"BRACKETMAKER_ADDR" envDefault:":8080"`
	RedisURL    string        `env:"BRACKETMAKER_REDIS_URL"`
	CORSOrigins []string      `env:"BRACKETMAKER_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	CacheTTL    time.Duration `env:"BRACKETMAKER_CACHE_TTL"`

	ShutdownTimeout time.Duration `env:"BRACKETMAKER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServerConfig reads [ServerConfig] from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.CacheTTL < 0 {
		return ServerConfig{}, fmt.Errorf("BRACKETMAKER_CACHE_TTL must not be negative, got %s", cfg.CacheTTL)
	}
	return cfg, nil
}
