// Package config loads environment driven configuration. Secrets never
// have defaults inside code and must be provided via the environment or
// an .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is built once at process entry and passed down explicitly.
type Config struct {
	Backend  BackendConfig
	Database DatabaseConfig
	Log      LogConfig
}

// DatabaseConfig holds postgres connection values. All of them are
// required.
type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// BackendConfig holds HTTP listener and application values.
type BackendConfig struct {
	Host      string
	Port      string
	SecretKey string
	WebDomain string
	SeedData  bool
}

// Addr returns the listen address.
func (b BackendConfig) Addr() string {
	return b.Host + ":" + b.Port
}

// LogConfig holds logging level and file rotation settings.
type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads configuration from the environment, after loading a local
// .env file when present. A missing required variable fails startup
// with an error naming it.
func Load() (Config, error) {
	_ = godotenv.Load()

	l := loader{}
	cfg := Config{
		Database: DatabaseConfig{
			User:     l.required("DB_USER"),
			Password: l.required("DB_PASSWORD"),
			Host:     l.required("DB_HOST"),
			Port:     l.required("DB_PORT"),
			Name:     l.required("DB_NAME"),
		},
		Backend: BackendConfig{
			Host:      l.optional("HOST", "0.0.0.0"),
			Port:      l.optional("PORT", "8080"),
			SecretKey: l.required("SECRET_KEY"),
			WebDomain: l.required("WEB_DOMAIN"),
			SeedData:  l.optional("SEED_DATA", "false") == "true",
		},
		Log: LogConfig{
			Level:      l.optional("LOGGING_LEVEL", "info"),
			Path:       os.Getenv("LOG_PATH"),
			MaxSizeMB:  l.optionalInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: l.optionalInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: l.optionalInt("LOG_MAX_AGE_DAYS", 7),
			Compress:   l.optional("LOG_COMPRESS", "false") == "true",
		},
	}
	if l.err != nil {
		return Config{}, l.err
	}
	return cfg, nil
}

// loader accumulates the first lookup error while reading variables.
type loader struct {
	err error
}

func (l *loader) required(key string) string {
	v := os.Getenv(key)
	if v == "" && l.err == nil {
		l.err = fmt.Errorf("environment variable %s not found", key)
	}
	return v
}

func (l *loader) optional(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (l *loader) optionalInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		if l.err == nil {
			l.err = fmt.Errorf("environment variable %s: invalid integer %q", key, v)
		}
		return fallback
	}
	return i
}
