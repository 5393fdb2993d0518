// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source names a backend the dashboard can read usage data from.
type Source string

// Supported data sources.
const (
	SourceSupabase Source = "supabase"
	SourcePostgres Source = "postgres"
	SourceSQLite   Source = "sqlite"
	SourceDemo     Source = "demo"
)

// Config holds the application configuration.
type Config struct {
	Source          Source
	SupabaseURL     string
	SupabaseAnonKey string
	PostgresDSN     string
	DatabasePath    string
	ExportDir       string
	LogFile         string
	LogLevel        string
	LogFormat       string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	Notifications   bool
}

// Default values
const (
	defaultRefreshInterval = 5 * time.Minute
	defaultFetchTimeout    = 15 * time.Second
	appDirName             = "zuba"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	web := LoadWebCredentials(os.Getenv("ZUBA_WEB_DIR"))

	cfg := &Config{
		SupabaseURL: firstEnv([]string{"SUPABASE_URL", webURLKey}, web.URL),
		SupabaseAnonKey: firstEnv(
			[]string{"SUPABASE_ANON_KEY", webAnonKeyKey}, web.AnonKey),
		PostgresDSN:     getEnvString("DATABASE_URL", ""),
		DatabasePath:    getEnvString("ZUBA_DB_PATH", getDefaultDatabasePath()),
		ExportDir:       getEnvString("ZUBA_EXPORT_DIR", getDefaultExportDir()),
		LogFile:         getEnvString("ZUBA_LOG_FILE", getDefaultLogPath()),
		LogLevel:        getEnvString("ZUBA_LOG_LEVEL", "info"),
		LogFormat:       getEnvString("ZUBA_LOG_FORMAT", "text"),
		RefreshInterval: getEnvDuration("ZUBA_REFRESH_INTERVAL", defaultRefreshInterval),
		FetchTimeout:    getEnvDuration("ZUBA_FETCH_TIMEOUT", defaultFetchTimeout),
		Notifications:   getEnvBool("ZUBA_NOTIFICATIONS", true),
	}
	cfg.Source = cfg.resolveSource(Source(strings.ToLower(os.Getenv("ZUBA_SOURCE"))))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Source == SourceSQLite {
		if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// resolveSource returns explicit when set, otherwise picks the richest
// backend the credentials allow.
func (c *Config) resolveSource(explicit Source) Source {
	if explicit != "" {
		return explicit
	}
	switch {
	case c.SupabaseURL != "" && c.SupabaseAnonKey != "":
		return SourceSupabase
	case c.PostgresDSN != "":
		return SourcePostgres
	default:
		return SourceSQLite
	}
}

// Validate checks that the selected source has what it needs.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase source")
		}
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres source")
		}
	case SourceSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("ZUBA_DB_PATH must not be empty for the sqlite source")
		}
	case SourceDemo:
	default:
		return fmt.Errorf("unknown data source %q (want supabase, postgres, sqlite or demo)", c.Source)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("ZUBA_FETCH_TIMEOUT must be positive")
	}
	return nil
}

// IsDemo reports whether the in-memory demo dataset is in use.
func (c *Config) IsDemo() bool {
	return c.Source == SourceDemo
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if dir := configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	// Parent directory, for running from inside cmd/
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// configDir returns ~/.config/zuba, or "" when there is no home directory.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	dir := configDir()
	if dir == "" {
		return "usage.db"
	}
	return filepath.Join(dir, "usage.db")
}

func getDefaultLogPath() string {
	dir := configDir()
	if dir == "" {
		return "zuba.log"
	}
	return filepath.Join(dir, "zuba.log")
}

func getDefaultExportDir() string {
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// firstEnv returns the first non-empty variable among keys.
func firstEnv(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "5m", or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
