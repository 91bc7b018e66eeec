// Package config reads settings for the server and the desk CLI from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting either binary reads.
type Config struct {
	// Server
	Port   int
	DBPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Desk client
	ServerURL   string
	Locale      string
	HTTPTimeout time.Duration
}

// Load reads the given .env files (default ".env") if they exist and then
// the environment. Variables already set in the environment win over the
// file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "./data/library.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServerURL:   getEnv("LIBRARIAN_URL", "http://localhost:8080"),
		Locale:      getEnv("LIBRARIAN_LOCALE", "en"),
		HTTPTimeout: timeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
