// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all engine configuration.
type Config struct {
	// CanvasSize is the default canvas edge length in pixels.
	CanvasSize int
	// OutputSize resamples rendered images when positive; 0 keeps the
	// canvas size.
	OutputSize int
	// MaxSteps caps drawing calls per execution; 0 disables the cap.
	MaxSteps int
	// ExecTimeout bounds one sandboxed execution's wall-clock time.
	ExecTimeout time.Duration
	// DBPath locates the SQLite lineage store; empty selects the
	// in-memory store.
	DBPath string
}

// Load reads configuration from the environment, honoring a .env file
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		CanvasSize:  getEnvInt("CANVAS_SIZE", 512),
		OutputSize:  getEnvInt("OUTPUT_SIZE", 0),
		MaxSteps:    getEnvInt("MAX_STEPS", 10000),
		ExecTimeout: getEnvDuration("EXEC_TIMEOUT", 10*time.Second),
		DBPath:      getEnv("DB_PATH", "./data/sketch.db"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration fields are usable.
func (c *Config) Validate() error {
	if c.CanvasSize <= 0 {
		return fmt.Errorf("CANVAS_SIZE must be > 0")
	}
	if c.OutputSize < 0 {
		return fmt.Errorf("OUTPUT_SIZE cannot be negative")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("MAX_STEPS cannot be negative")
	}
	if c.ExecTimeout <= 0 {
		return fmt.Errorf("EXEC_TIMEOUT must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
