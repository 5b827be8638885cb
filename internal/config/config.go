// Package config loads the demo's settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the demo.
type Config struct {
	// LibraryName is shown in front of every printed change.
	LibraryName string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// ExportPath, when set, receives a snapshot at the end of the run.
	// .db/.sqlite paths get SQLite, anything else JSON.
	ExportPath string

	// Metrics prints the change counters at the end of the run.
	Metrics bool
}

const defaultLibraryName = "Ma Bibliothèque"

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LibraryName: getEnv("LIBRARY_NAME", defaultLibraryName),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ExportPath:  os.Getenv("EXPORT_PATH"),
		Metrics:     getBool("METRICS", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
