package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "output/clinics_merged.csv", cfg.Dataset.Path)
	assert.Equal(t, 2.0, cfg.Search.DefaultRadiusKm)
	assert.Equal(t, 30, cfg.Search.SoonCloseThresholdMin)
	assert.Equal(t, 15, cfg.Search.SoonStartThresholdMin)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLINIC_DATASET_PATH", "/data/clinics.csv")
	t.Setenv("SEARCH_DEFAULT_RADIUS_KM", "3.5")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/data/clinics.csv", cfg.Dataset.Path)
	assert.Equal(t, 3.5, cfg.Search.DefaultRadiusKm)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoad_InvalidNumericFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", c.RedisAddr())
}
