package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "craft")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "craftmarket")
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("WEB_DOMAIN", "example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Backend.Host)
	assert.Equal(t, "8080", cfg.Backend.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Backend.Addr())
	assert.False(t, cfg.Backend.SeedData)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 7, cfg.Log.MaxAgeDays)
	assert.False(t, cfg.Log.Compress)
}

func TestLoadMissingRequiredNamesVariable(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("LOG_MAX_BACKUPS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Backend.Addr())
	assert.True(t, cfg.Backend.SeedData)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxBackups)
}

func TestLoadInvalidInteger(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_MAX_SIZE_MB", "plenty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_MAX_SIZE_MB")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "5432", Name: "n"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
