package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	CORSOrigins    []string
	DBMaxOpenConns int
}

// Load reads configuration from environment variables with sensible
// defaults. JWT_SECRET has no default; a signing key must be supplied.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://campuspulse.db"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
	}

	maxConns, err := getEnvInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxOpenConns = maxConns

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return intVal, nil
}

// String masks the signing secret.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, Origins: %v, JWT: *** (masked)}",
		c.Port, c.DatabaseURL, c.CORSOrigins)
}
