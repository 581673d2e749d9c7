// Package config loads the telematik service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Log    LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr        string
	MaxUploadMB int
}

// PathConfig holds file system paths
type PathConfig struct {
	ArchiveDir string
	InboxDir   string
	OutputDir  string
	LayoutFile string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load reads a .env file when present, then the environment, and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Addr:        getEnvOrDefault("TELEMATIK_ADDR", ":5003"),
			MaxUploadMB: getEnvIntOrDefault("TELEMATIK_MAX_UPLOAD_MB", 50),
		},
		Paths: PathConfig{
			ArchiveDir: getEnvOrDefault("TELEMATIK_ARCHIVE_DIR", ""),
			InboxDir:   getEnvOrDefault("TELEMATIK_INBOX_DIR", ""),
			OutputDir:  getEnvOrDefault("TELEMATIK_OUTPUT_DIR", ""),
			LayoutFile: getEnvOrDefault("TELEMATIK_LAYOUT_FILE", ""),
		},
		Log: LogConfig{
			Level:       getEnvOrDefault("LOG_LEVEL", "info"),
			Development: getEnvBoolOrDefault("LOG_DEVELOPMENT", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func validateConfig(config *Config) error {
	var errs []error
	if config.Server.Addr == "" {
		errs = append(errs, errors.New("TELEMATIK_ADDR must not be empty"))
	}
	if config.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("TELEMATIK_MAX_UPLOAD_MB must be positive, got %d", config.Server.MaxUploadMB))
	}
	if config.Paths.LayoutFile != "" {
		if _, err := os.Stat(config.Paths.LayoutFile); err != nil {
			errs = append(errs, fmt.Errorf("TELEMATIK_LAYOUT_FILE: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
