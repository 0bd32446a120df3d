package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_DRIVER", "API_PORT", "SHUTDOWN_TIMEOUT", "MEDIA_ROOT",
		"LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL", "ALLOWED_ORIGINS", "APP_ENV",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_RequiredDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "./media", cfg.MediaRoot)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10.0, cfg.RateLimitRequests)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "recipes.db")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("API_PORT", "9000")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("RATE_LIMIT_REQUESTS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRequests)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
	t.Setenv("API_PORT", "eighty")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API_PORT must be a valid integer")
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
	t.Setenv("TOKEN_TTL", "tomorrow")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestLoadDotEnv_ExistingEnvWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=from-file\nAPI_PORT=7000\n"), 0o600))
	t.Setenv("API_PORT", "7100")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("DATABASE_URL") })

	assert.Equal(t, "from-file", os.Getenv("DATABASE_URL"))
	assert.Equal(t, "7100", os.Getenv("API_PORT"))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		DatabaseURL:    "mysql://localhost",
		DatabaseDriver: "mysql",
		APIPort:        8080,
		MediaRoot:      "./media",
		TokenTTL:       time.Hour,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseDriver")
}

func TestValidateProduction(t *testing.T) {
	base := Config{
		DatabaseURL:    "postgres://db/recipes?sslmode=require",
		DatabaseDriver: DriverPostgres,
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		AllowedOrigins: "https://recipes.example.com",
		AppEnv:         "production",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "at least 32"},
		{"missing origins", func(c *Config) { c.AllowedOrigins = "" }, "ALLOWED_ORIGINS is required"},
		{"wildcard origin", func(c *Config) { c.AllowedOrigins = "*" }, "wildcard"},
		{"sqlite", func(c *Config) { c.DatabaseDriver = DriverSQLite }, "sqlite"},
		{"ssl disabled", func(c *Config) { c.DatabaseURL = "postgres://db/recipes?sslmode=disable" }, "sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.ValidateProduction()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOrigins_TrimsAndSkipsEmpty(t *testing.T) {
	cfg := &Config{AllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())

	cfg.AllowedOrigins = ""
	assert.Nil(t, cfg.Origins())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "verbose"}).SlogLevel())
}
